package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/spiresim/internal/interaction"
)

// ErrRecordNotFound is returned when a combat record lookup yields no results.
var ErrRecordNotFound = errors.New("combat record not found")

// ErrRecordExists is returned when saving a record whose ID is already stored.
var ErrRecordExists = errors.New("combat record already exists")

// Record is one finished combat.
type Record struct {
	ID        uuid.UUID
	Seed      string
	Floor     int
	Encounter string
	Character string
	// Strategy names the Lua script that played, or is empty for the console.
	Strategy string
	Outcome  string
	Turns    int
	HP       int
	HPMax    int
	// Log is every notification the player received, in order.
	Log       []interaction.Notification
	CreatedAt time.Time
}

// CombatRepository provides combat record persistence operations.
type CombatRepository struct {
	db *pgxpool.Pool
}

// NewCombatRepository creates a CombatRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCombatRepository(db *pgxpool.Pool) *CombatRepository {
	return &CombatRepository{db: db}
}

const recordColumns = `id, seed, floor, encounter, character_id, strategy,
	outcome, turns, hp, hp_max, log, created_at`

// Save inserts rec and returns it with CreatedAt set.
//
// Precondition: rec.ID must not be uuid.Nil.
// Postcondition: Returns the stored record, or ErrRecordExists on a duplicate ID.
func (r *CombatRepository) Save(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == uuid.Nil {
		return Record{}, errors.New("saving combat record: id must be set")
	}
	log := rec.Log
	if log == nil {
		log = []interaction.Notification{}
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO combat_records
			(id, seed, floor, encounter, character_id, strategy,
			 outcome, turns, hp, hp_max, log)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING `+recordColumns,
		rec.ID, rec.Seed, rec.Floor, rec.Encounter, rec.Character, rec.Strategy,
		rec.Outcome, rec.Turns, rec.HP, rec.HPMax, log,
	)
	out, err := scanRecord(row)
	if err != nil {
		if isDuplicateKeyError(err) {
			return Record{}, ErrRecordExists
		}
		return Record{}, fmt.Errorf("inserting combat record: %w", err)
	}
	return out, nil
}

// Get retrieves a combat record by ID.
//
// Postcondition: Returns the Record or ErrRecordNotFound.
func (r *CombatRepository) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	row := r.db.QueryRow(ctx, `SELECT `+recordColumns+` FROM combat_records WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, fmt.Errorf("querying combat record: %w", err)
	}
	return rec, nil
}

// ListBySeed returns every combat played from seed, oldest first.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *CombatRepository) ListBySeed(ctx context.Context, seed string) ([]Record, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+recordColumns+`
		FROM combat_records WHERE seed = $1 ORDER BY created_at ASC, id ASC`,
		seed,
	)
	if err != nil {
		return nil, fmt.Errorf("listing combat records: %w", err)
	}
	defer rows.Close()

	recs := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning combat record row: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.Seed, &rec.Floor, &rec.Encounter, &rec.Character, &rec.Strategy,
		&rec.Outcome, &rec.Turns, &rec.HP, &rec.HPMax, &rec.Log, &rec.CreatedAt,
	)
	return rec, err
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
