package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/castlegate/pairing-engine/models"
	"github.com/lib/pq"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error)
	ListBySection(ctx context.Context, tournamentID int, section string) ([]*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdateStatus(ctx context.Context, id int, status models.PlayerStatus) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, tournament_id, name, uscf_id, fide_id, rating, section, status, bye_rounds, team_id, created_at`

func scanPlayer(rowScanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	var byeRounds pq.Int64Array
	err := rowScanner.Scan(
		&p.ID, &p.TournamentID, &p.Name, &p.UscfID, &p.FideID, &p.Rating,
		&p.Section, &p.Status, &byeRounds, &p.TeamID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	p.ByeRounds = make([]int, 0, len(byeRounds))
	for _, r := range byeRounds {
		p.ByeRounds = append(p.ByeRounds, int(r))
	}
	return &p, nil
}

func byeRoundsArray(rounds []int) pq.Int64Array {
	arr := make(pq.Int64Array, 0, len(rounds))
	for _, r := range rounds {
		arr = append(arr, int64(r))
	}
	return arr
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (tournament_id, name, uscf_id, fide_id, rating, section, status, bye_rounds, team_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	err := r.db.QueryRowContext(ctx, query,
		p.TournamentID, p.Name, p.UscfID, p.FideID, p.Rating, p.Section,
		p.Status, byeRoundsArray(p.ByeRounds), p.TeamID, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE tournament_id = $1 ORDER BY rating DESC NULLS LAST, name ASC, id ASC`
	return r.list(ctx, query, tournamentID)
}

func (r *postgresPlayerRepository) ListBySection(ctx context.Context, tournamentID int, section string) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE tournament_id = $1 AND section = $2 ORDER BY rating DESC NULLS LAST, name ASC, id ASC`
	return r.list(ctx, query, tournamentID, section)
}

func (r *postgresPlayerRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	query := `
		UPDATE players SET
			name = $1, uscf_id = $2, fide_id = $3, rating = $4, section = $5,
			status = $6, bye_rounds = $7, team_id = $8
		WHERE id = $9`
	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.UscfID, p.FideID, p.Rating, p.Section,
		p.Status, byeRoundsArray(p.ByeRounds), p.TeamID, p.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateStatus(ctx context.Context, id int, status models.PlayerStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
