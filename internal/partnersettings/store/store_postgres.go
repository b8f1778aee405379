package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"checkout/internal/pidl/feature"
)

// Schema creates the partner feature table.
const Schema = `
CREATE TABLE IF NOT EXISTS partner_feature_settings (
	partner    TEXT        NOT NULL,
	feature    TEXT        NOT NULL,
	markets    TEXT[]      NOT NULL DEFAULT '{}',
	params     JSONB       NOT NULL DEFAULT '{}',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (partner, feature)
)`

// PostgresStore keeps one row per partner feature.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure partner settings schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, partner string) (feature.PartnerConfig, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT feature, markets, params FROM partner_feature_settings WHERE partner = $1 ORDER BY feature`,
		normalizePartner(partner))
	if err != nil {
		return nil, fmt.Errorf("find partner settings: %w", err)
	}
	defer rows.Close()

	cfg := feature.PartnerConfig{}
	for rows.Next() {
		var (
			name    string
			markets []string
			params  []byte
		)
		if err := rows.Scan(&name, pq.Array(&markets), &params); err != nil {
			return nil, fmt.Errorf("scan partner settings: %w", err)
		}
		setting := feature.Setting{Markets: markets}
		if err := json.Unmarshal(params, &setting.Params); err != nil {
			return nil, fmt.Errorf("decode partner settings params: %w", err)
		}
		if len(setting.Params) == 0 {
			setting.Params = nil
		}
		if len(setting.Markets) == 0 {
			setting.Markets = nil
		}
		cfg[feature.Name(name)] = setting
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate partner settings: %w", err)
	}
	if len(cfg) == 0 {
		return nil, ErrNotFound
	}
	return cfg, nil
}

// Save replaces the partner's table in one transaction. An empty table
// cannot be represented by rows and is rejected.
func (s *PostgresStore) Save(ctx context.Context, partner string, cfg feature.PartnerConfig) error {
	partner = normalizePartner(partner)
	if err := validate(partner, cfg); err != nil {
		return err
	}
	if len(cfg) == 0 {
		return fmt.Errorf("feature table must name at least one feature")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin partner settings tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM partner_feature_settings WHERE partner = $1`, partner); err != nil {
		return fmt.Errorf("clear partner settings: %w", err)
	}
	for name, setting := range cfg {
		params, err := json.Marshal(setting.Params)
		if err != nil {
			return fmt.Errorf("encode partner settings params: %w", err)
		}
		if setting.Params == nil {
			params = []byte("{}")
		}
		markets := setting.Markets
		if markets == nil {
			markets = []string{}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO partner_feature_settings (partner, feature, markets, params) VALUES ($1, $2, $3, $4)`,
			partner, string(name), pq.Array(markets), params)
		if err != nil {
			return fmt.Errorf("save partner settings: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit partner settings: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, partner string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM partner_feature_settings WHERE partner = $1`, normalizePartner(partner)); err != nil {
		return fmt.Errorf("delete partner settings: %w", err)
	}
	return nil
}
