package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

// GetWorkload returns the (staff, period) row, or a zero-valued one when the
// period has no row yet. Temporary exceptions thereby reset on period
// rollover without any sweeping.
func (r *Repository) GetWorkload(staffID int64, period domain.Period) (*domain.Workload, error) {
	query := `
		SELECT committed, temporary_exception, version
		FROM workloads WHERE staff_id = $1 AND period = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	workload := &domain.Workload{
		StaffID: staffID,
		Period:  period,
	}

	dst := []any{&workload.Committed, &workload.TemporaryException, &workload.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, staffID, string(period)).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return workload, nil
		}
		return nil, err
	}

	return workload, nil
}

// AdjustCommitted applies delta under the store-side guard: the count stays
// within [0, maxAllowed] for increments and never drops below zero. The guard
// lives in the UPDATE itself, so concurrent adjustments for the same
// (staff, period) serialize on the row.
func (r *Repository) AdjustCommitted(staffID int64, period domain.Period, delta int32, maxAllowed int32) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	ensure := `
		INSERT INTO workloads (staff_id, period)
		VALUES ($1, $2)
		ON CONFLICT (staff_id, period) DO NOTHING
	`
	if _, err := r.dbpool.ExecContext(ctx, ensure, staffID, string(period)); err != nil {
		return err
	}

	query := `
		UPDATE workloads
		SET committed = committed + $3, version = version + 1
		WHERE staff_id = $1 AND period = $2
			AND committed + $3 >= 0
			AND ($3 <= 0 OR committed + $3 <= $4)
		RETURNING committed
	`

	var committed int32
	if err := r.dbpool.QueryRowContext(ctx, query, staffID, string(period), delta, maxAllowed).Scan(&committed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if delta > 0 {
				return domain.QuotaExceededError("staff member %d has reached their shift limit for %s", staffID, period)
			}
			return domain.InvalidStateError("staff member %d has no committed shifts to release in %s", staffID, period)
		}
		return err
	}

	return nil
}

func (r *Repository) AddTemporaryException(staffID int64, period domain.Period, amount int32) error {
	query := `
		INSERT INTO workloads (staff_id, period, temporary_exception)
		VALUES ($1, $2, $3)
		ON CONFLICT (staff_id, period) DO UPDATE
		SET temporary_exception = workloads.temporary_exception + $3, version = workloads.version + 1
		RETURNING temporary_exception
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var exception int32
	if err := r.dbpool.QueryRowContext(ctx, query, staffID, string(period), amount).Scan(&exception); err != nil {
		return err
	}

	return nil
}
