package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/castlegate/pairing-engine/models"
	"github.com/google/uuid"
)

// In-memory implementations backing service tests and small single-process
// deployments that run without Postgres.

type MemoryTournamentRepository struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]*models.Tournament
}

func NewMemoryTournamentRepository() *MemoryTournamentRepository {
	return &MemoryTournamentRepository{nextID: 1, items: make(map[int]*models.Tournament)}
}

func (r *MemoryTournamentRepository) Create(_ context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Name == t.Name {
			return ErrTournamentNameConflict
		}
	}
	t.ID = r.nextID
	r.nextID++
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	clone := *t
	r.items[t.ID] = &clone
	return nil
}

func (r *MemoryTournamentRepository) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.items[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *MemoryTournamentRepository) List(_ context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Tournament, 0, len(r.items))
	for _, t := range r.items {
		if status != nil && t.Status != *status {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryTournamentRepository) UpdateStatus(_ context.Context, id int, status models.TournamentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

type MemoryPlayerRepository struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]*models.Player
}

func NewMemoryPlayerRepository() *MemoryPlayerRepository {
	return &MemoryPlayerRepository{nextID: 1, items: make(map[int]*models.Player)}
}

func (r *MemoryPlayerRepository) Create(_ context.Context, p *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
	}
	if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	clone := *p
	r.items[p.ID] = &clone
	return nil
}

func (r *MemoryPlayerRepository) GetByID(_ context.Context, id int) (*models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *MemoryPlayerRepository) ListByTournament(_ context.Context, tournamentID int) ([]*models.Player, error) {
	return r.listWhere(func(p *models.Player) bool { return p.TournamentID == tournamentID })
}

func (r *MemoryPlayerRepository) ListBySection(_ context.Context, tournamentID int, section string) ([]*models.Player, error) {
	return r.listWhere(func(p *models.Player) bool {
		return p.TournamentID == tournamentID && p.Section == section
	})
}

func (r *MemoryPlayerRepository) listWhere(keep func(*models.Player) bool) ([]*models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Player, 0)
	for _, p := range r.items {
		if keep(p) {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].RatingValue(), out[j].RatingValue()
		if ri != rj {
			return ri > rj
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryPlayerRepository) Update(_ context.Context, p *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return ErrPlayerNotFound
	}
	clone := *p
	r.items[p.ID] = &clone
	return nil
}

func (r *MemoryPlayerRepository) UpdateStatus(_ context.Context, id int, status models.PlayerStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return ErrPlayerNotFound
	}
	p.Status = status
	return nil
}

type MemoryTeamRepository struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]*models.Team
}

func NewMemoryTeamRepository() *MemoryTeamRepository {
	return &MemoryTeamRepository{nextID: 1, items: make(map[int]*models.Team)}
}

func (r *MemoryTeamRepository) Create(_ context.Context, t *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.TournamentID == t.TournamentID && existing.Name == t.Name {
			return ErrTeamNameConflict
		}
	}
	t.ID = r.nextID
	r.nextID++
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	clone := *t
	r.items[t.ID] = &clone
	return nil
}

func (r *MemoryTeamRepository) GetByID(_ context.Context, id int) (*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.items[id]
	if !ok {
		return nil, ErrTeamNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *MemoryTeamRepository) ListByTournament(_ context.Context, tournamentID int) ([]*models.Team, error) {
	return r.listWhere(func(t *models.Team) bool { return t.TournamentID == tournamentID })
}

func (r *MemoryTeamRepository) ListBySection(_ context.Context, tournamentID int, section string) ([]*models.Team, error) {
	return r.listWhere(func(t *models.Team) bool {
		return t.TournamentID == tournamentID && t.Section == section
	})
}

func (r *MemoryTeamRepository) listWhere(keep func(*models.Team) bool) ([]*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Team, 0)
	for _, t := range r.items {
		if keep(t) {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryTeamRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrTeamNotFound
	}
	delete(r.items, id)
	return nil
}

type MemoryPairingRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*models.Pairing
}

func NewMemoryPairingRepository() *MemoryPairingRepository {
	return &MemoryPairingRepository{items: make(map[uuid.UUID]*models.Pairing)}
}

func (r *MemoryPairingRepository) ReplaceRound(_ context.Context, tournamentID int, section string, round int, pairings []*models.Pairing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.items {
		if p.TournamentID == tournamentID && p.Section == section && p.Round == round {
			delete(r.items, id)
		}
	}
	for _, p := range pairings {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now()
		}
		clone := *p
		r.items[p.ID] = &clone
	}
	return nil
}

func (r *MemoryPairingRepository) DeleteRound(_ context.Context, tournamentID int, section string, round int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.items {
		if p.TournamentID == tournamentID && p.Section == section && p.Round == round {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *MemoryPairingRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Pairing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, ErrPairingNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *MemoryPairingRepository) ListByRound(_ context.Context, tournamentID int, section string, round int) ([]*models.Pairing, error) {
	return r.listWhere(func(p *models.Pairing) bool {
		return p.TournamentID == tournamentID && p.Section == section && p.Round == round
	})
}

func (r *MemoryPairingRepository) ListBySection(_ context.Context, tournamentID int, section string) ([]*models.Pairing, error) {
	return r.listWhere(func(p *models.Pairing) bool {
		return p.TournamentID == tournamentID && p.Section == section
	})
}

func (r *MemoryPairingRepository) ListByTournament(_ context.Context, tournamentID int) ([]*models.Pairing, error) {
	return r.listWhere(func(p *models.Pairing) bool { return p.TournamentID == tournamentID })
}

func (r *MemoryPairingRepository) listWhere(keep func(*models.Pairing) bool) ([]*models.Pairing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Pairing, 0)
	for _, p := range r.items {
		if keep(p) {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Section != out[j].Section {
			return out[i].Section < out[j].Section
		}
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].Board < out[j].Board
	})
	return out, nil
}

func (r *MemoryPairingRepository) Create(_ context.Context, p *models.Pairing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	clone := *p
	r.items[p.ID] = &clone
	return nil
}

func (r *MemoryPairingRepository) UpdatePlayers(_ context.Context, id uuid.UUID, whiteID, blackID *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return ErrPairingNotFound
	}
	p.WhiteID = whiteID
	p.BlackID = blackID
	return nil
}

func (r *MemoryPairingRepository) UpdateResult(_ context.Context, id uuid.UUID, result *models.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return ErrPairingNotFound
	}
	p.Result = result
	return nil
}

func (r *MemoryPairingRepository) UpdateBoard(_ context.Context, id uuid.UUID, board int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return ErrPairingNotFound
	}
	p.Board = board
	return nil
}

func (r *MemoryPairingRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrPairingNotFound
	}
	delete(r.items, id)
	return nil
}
