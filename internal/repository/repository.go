// Package repository is the Postgres persistence layer. Every mutable row
// carries a version column; updates are version-checked and the loser of a
// concurrent write gets an invalid_state error. sql.ErrNoRows never leaves
// this package: reads translate it to a not_found domain error.
package repository

import (
	"database/sql"

	"github.com/rsud-harapan/roster-manager/backend/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}
