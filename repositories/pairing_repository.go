package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/castlegate/pairing-engine/models"
	"github.com/google/uuid"
)

var ErrPairingNotFound = errors.New("pairing not found")

type PairingRepository interface {
	// ReplaceRound atomically discards any existing pairing set for the
	// section+round and commits the new one. Either the full set commits
	// or nothing does.
	ReplaceRound(ctx context.Context, tournamentID int, section string, round int, pairings []*models.Pairing) error
	DeleteRound(ctx context.Context, tournamentID int, section string, round int) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Pairing, error)
	ListByRound(ctx context.Context, tournamentID int, section string, round int) ([]*models.Pairing, error)
	ListBySection(ctx context.Context, tournamentID int, section string) ([]*models.Pairing, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Pairing, error)
	Create(ctx context.Context, pairing *models.Pairing) error
	UpdatePlayers(ctx context.Context, id uuid.UUID, whiteID, blackID *int) error
	UpdateResult(ctx context.Context, id uuid.UUID, result *models.Result) error
	UpdateBoard(ctx context.Context, id uuid.UUID, board int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresPairingRepository struct {
	db *sql.DB
}

func NewPostgresPairingRepository(db *sql.DB) PairingRepository {
	return &postgresPairingRepository{db: db}
}

const pairingColumns = `id, tournament_id, section, round, board, white_id, black_id, result,
	rating_diff, prev_meetings, white_balance, black_balance, quality, created_at`

const insertPairingQuery = `
	INSERT INTO pairings (id, tournament_id, section, round, board, white_id, black_id, result,
		rating_diff, prev_meetings, white_balance, black_balance, quality, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

func scanPairing(rowScanner interface{ Scan(...interface{}) error }) (*models.Pairing, error) {
	var p models.Pairing
	var result sql.NullString
	err := rowScanner.Scan(
		&p.ID, &p.TournamentID, &p.Section, &p.Round, &p.Board,
		&p.WhiteID, &p.BlackID, &result,
		&p.RatingDiff, &p.PrevMeetings, &p.WhiteBalance, &p.BlackBalance,
		&p.Quality, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPairingNotFound
		}
		return nil, err
	}
	if result.Valid {
		res := models.Result(result.String)
		p.Result = &res
	}
	return &p, nil
}

func pairingArgs(p *models.Pairing) []interface{} {
	var result *string
	if p.Result != nil {
		s := string(*p.Result)
		result = &s
	}
	return []interface{}{
		p.ID, p.TournamentID, p.Section, p.Round, p.Board,
		p.WhiteID, p.BlackID, result,
		p.RatingDiff, p.PrevMeetings, p.WhiteBalance, p.BlackBalance,
		p.Quality, p.CreatedAt,
	}
}

func (r *postgresPairingRepository) ReplaceRound(ctx context.Context, tournamentID int, section string, round int, pairings []*models.Pairing) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM pairings WHERE tournament_id = $1 AND section = $2 AND round = $3`,
		tournamentID, section, round,
	)
	if err != nil {
		return fmt.Errorf("failed to clear round: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertPairingQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pairings {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now()
		}
		if _, err := stmt.ExecContext(ctx, pairingArgs(p)...); err != nil {
			return fmt.Errorf("failed to insert pairing board %d: %w", p.Board, err)
		}
	}
	return tx.Commit()
}

func (r *postgresPairingRepository) DeleteRound(ctx context.Context, tournamentID int, section string, round int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM pairings WHERE tournament_id = $1 AND section = $2 AND round = $3`,
		tournamentID, section, round,
	)
	return err
}

func (r *postgresPairingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Pairing, error) {
	query := `SELECT ` + pairingColumns + ` FROM pairings WHERE id = $1`
	return scanPairing(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPairingRepository) ListByRound(ctx context.Context, tournamentID int, section string, round int) ([]*models.Pairing, error) {
	query := `SELECT ` + pairingColumns + ` FROM pairings
		WHERE tournament_id = $1 AND section = $2 AND round = $3 ORDER BY board ASC`
	return r.list(ctx, query, tournamentID, section, round)
}

func (r *postgresPairingRepository) ListBySection(ctx context.Context, tournamentID int, section string) ([]*models.Pairing, error) {
	query := `SELECT ` + pairingColumns + ` FROM pairings
		WHERE tournament_id = $1 AND section = $2 ORDER BY round ASC, board ASC`
	return r.list(ctx, query, tournamentID, section)
}

func (r *postgresPairingRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Pairing, error) {
	query := `SELECT ` + pairingColumns + ` FROM pairings
		WHERE tournament_id = $1 ORDER BY section ASC, round ASC, board ASC`
	return r.list(ctx, query, tournamentID)
}

func (r *postgresPairingRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Pairing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairings := make([]*models.Pairing, 0)
	for rows.Next() {
		p, err := scanPairing(rows)
		if err != nil {
			return nil, err
		}
		pairings = append(pairings, p)
	}
	return pairings, rows.Err()
}

func (r *postgresPairingRepository) Create(ctx context.Context, p *models.Pairing) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, insertPairingQuery, pairingArgs(p)...)
	if err != nil {
		return fmt.Errorf("failed to create pairing: %w", err)
	}
	return nil
}

func (r *postgresPairingRepository) UpdatePlayers(ctx context.Context, id uuid.UUID, whiteID, blackID *int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE pairings SET white_id = $1, black_id = $2 WHERE id = $3`,
		whiteID, blackID, id,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPairingNotFound)
}

func (r *postgresPairingRepository) UpdateResult(ctx context.Context, id uuid.UUID, res *models.Result) error {
	var value *string
	if res != nil {
		s := string(*res)
		value = &s
	}
	result, err := r.db.ExecContext(ctx, `UPDATE pairings SET result = $1 WHERE id = $2`, value, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPairingNotFound)
}

func (r *postgresPairingRepository) UpdateBoard(ctx context.Context, id uuid.UUID, board int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE pairings SET board = $1 WHERE id = $2`, board, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPairingNotFound)
}

func (r *postgresPairingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pairings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPairingNotFound)
}
