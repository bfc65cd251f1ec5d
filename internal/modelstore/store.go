// Package modelstore persists fitted model parameters in a local SQLite
// database so a restarted process can reload its models instead of
// retraining them.
package modelstore

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ndewijer/Investment-Advisor-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/ml"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Vector names used in the model_params table.
const (
	vectorScalerMean = "scaler_mean"
	vectorScalerStd  = "scaler_std"
	vectorRiskCoef   = "risk_coef"
	vectorReturnCoef = "return_coef"
)

// Store is a SQLite-backed parameter store for the fitted predictor.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at path and applies pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping model store: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate model store: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveParams replaces any stored parameters with the given fitted set. The
// write is transactional so a reader never observes a half-written model.
func (s *Store) SaveParams(params ml.Params) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM model_params"); err != nil {
		return fmt.Errorf("failed to clear model params: %w", err)
	}

	vectors := map[string][]float64{
		vectorScalerMean: params.ScalerMean,
		vectorScalerStd:  params.ScalerStd,
		vectorRiskCoef:   params.RiskCoef,
		vectorReturnCoef: params.ReturnCoef,
	}

	stmt, err := tx.Prepare("INSERT INTO model_params (vector, idx, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for name, values := range vectors {
		for i, v := range values {
			if _, err := stmt.Exec(name, i, v); err != nil {
				return fmt.Errorf("failed to insert %s[%d]: %w", name, i, err)
			}
		}
	}

	return tx.Commit()
}

// LoadParams reads the stored parameter set. Returns ErrModelNotFound when
// no fitted parameters have been saved yet.
func (s *Store) LoadParams() (ml.Params, error) {
	rows, err := s.db.Query("SELECT vector, idx, value FROM model_params ORDER BY vector, idx")
	if err != nil {
		return ml.Params{}, fmt.Errorf("failed to query model params: %w", err)
	}
	defer rows.Close()

	vectors := map[string][]float64{}
	for rows.Next() {
		var name string
		var idx int
		var value float64
		if err := rows.Scan(&name, &idx, &value); err != nil {
			return ml.Params{}, fmt.Errorf("failed to scan model param: %w", err)
		}
		if idx != len(vectors[name]) {
			return ml.Params{}, fmt.Errorf("gap in stored %s vector at index %d", name, idx)
		}
		vectors[name] = append(vectors[name], value)
	}
	if err := rows.Err(); err != nil {
		return ml.Params{}, fmt.Errorf("failed to read model params: %w", err)
	}

	if len(vectors) == 0 {
		return ml.Params{}, apperrors.ErrModelNotFound
	}

	return ml.Params{
		ScalerMean: vectors[vectorScalerMean],
		ScalerStd:  vectors[vectorScalerStd],
		RiskCoef:   vectors[vectorRiskCoef],
		ReturnCoef: vectors[vectorReturnCoef],
	}, nil
}
