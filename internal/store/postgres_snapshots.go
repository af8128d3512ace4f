package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rpgo/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

var snapshotSchema = []string{`
	CREATE TABLE IF NOT EXISTS net_worth_snapshots (
		id                TEXT PRIMARY KEY,
		label             TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMPTZ NOT NULL,
		net_worth         NUMERIC(18,2) NOT NULL,
		total_assets      NUMERIC(18,2) NOT NULL,
		total_liabilities NUMERIC(18,2) NOT NULL,
		input_json        JSONB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS net_worth_snapshots_created_at_idx
		ON net_worth_snapshots (created_at DESC)`,
}

// PostgresSnapshots stores snapshots in PostgreSQL with the input as JSONB.
type PostgresSnapshots struct {
	pool *pgxpool.Pool
}

// NewPostgresSnapshots opens a pool for databaseURL and ensures the schema.
func NewPostgresSnapshots(ctx context.Context, databaseURL string) (*PostgresSnapshots, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	repo := &PostgresSnapshots{pool: pool}
	if err := repo.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return repo, nil
}

func (r *PostgresSnapshots) ensureSchema(ctx context.Context) error {
	for _, stmt := range snapshotSchema {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create snapshot schema: %w", err)
		}
	}
	return nil
}

// Close closes the connection pool.
func (r *PostgresSnapshots) Close() {
	r.pool.Close()
}

func (r *PostgresSnapshots) Save(ctx context.Context, s domain.NetWorthSnapshot) error {
	input, err := json.Marshal(s.Input)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot input: %w", err)
	}

	query := `
		INSERT INTO net_worth_snapshots
			(id, label, created_at, net_worth, total_assets, total_liabilities, input_json)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			label = EXCLUDED.label,
			net_worth = EXCLUDED.net_worth,
			total_assets = EXCLUDED.total_assets,
			total_liabilities = EXCLUDED.total_liabilities,
			input_json = EXCLUDED.input_json;
	`
	_, err = r.pool.Exec(ctx, query, s.ID, s.Label, s.CreatedAt,
		s.NetWorth.String(), s.TotalAssets.String(), s.TotalLiabilities.String(), input)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

const snapshotColumns = `id, label, created_at, net_worth::text, total_assets::text, total_liabilities::text, input_json`

func scanSnapshot(row pgx.Row) (*domain.NetWorthSnapshot, error) {
	var (
		s                             domain.NetWorthSnapshot
		netWorth, assets, liabilities string
		createdAt                     time.Time
		input                         []byte
	)
	if err := row.Scan(&s.ID, &s.Label, &createdAt, &netWorth, &assets, &liabilities, &input); err != nil {
		return nil, err
	}
	s.CreatedAt = createdAt.UTC()

	var err error
	if s.NetWorth, err = decimal.NewFromString(netWorth); err != nil {
		return nil, fmt.Errorf("bad net_worth %q: %w", netWorth, err)
	}
	if s.TotalAssets, err = decimal.NewFromString(assets); err != nil {
		return nil, fmt.Errorf("bad total_assets %q: %w", assets, err)
	}
	if s.TotalLiabilities, err = decimal.NewFromString(liabilities); err != nil {
		return nil, fmt.Errorf("bad total_liabilities %q: %w", liabilities, err)
	}
	if err := json.Unmarshal(input, &s.Input); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot input: %w", err)
	}
	return &s, nil
}

func (r *PostgresSnapshots) Get(ctx context.Context, id string) (*domain.NetWorthSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM net_worth_snapshots WHERE id = $1`
	s, err := scanSnapshot(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return s, nil
}

func (r *PostgresSnapshots) List(ctx context.Context, limit int) ([]domain.NetWorthSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + snapshotColumns + ` FROM net_worth_snapshots ORDER BY created_at DESC, id DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	out := make([]domain.NetWorthSnapshot, 0)
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return out, nil
}
