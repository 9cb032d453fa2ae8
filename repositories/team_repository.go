package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/castlegate/pairing-engine/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name conflict")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error)
	ListBySection(ctx context.Context, tournamentID int, section string) ([]*models.Team, error)
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, t *models.Team) error {
	query := `
		INSERT INTO teams (tournament_id, name, section, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	err := r.db.QueryRowContext(ctx, query, t.TournamentID, t.Name, t.Section, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrTeamNameConflict
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, tournament_id, name, section, created_at FROM teams WHERE id = $1`
	var t models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.TournamentID, &t.Name, &t.Section, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	query := `SELECT id, tournament_id, name, section, created_at FROM teams
		WHERE tournament_id = $1 ORDER BY name ASC, id ASC`
	return r.list(ctx, query, tournamentID)
}

func (r *postgresTeamRepository) ListBySection(ctx context.Context, tournamentID int, section string) ([]*models.Team, error) {
	query := `SELECT id, tournament_id, name, section, created_at FROM teams
		WHERE tournament_id = $1 AND section = $2 ORDER BY name ASC, id ASC`
	return r.list(ctx, query, tournamentID, section)
}

func (r *postgresTeamRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.TournamentID, &t.Name, &t.Section, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
