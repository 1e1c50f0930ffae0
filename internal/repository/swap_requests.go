package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

const swapRequestColumns = `
	id, from_id, to_id, shift_id, reason, critical, status,
	target_responded_at,
	unit_head_id, unit_head_notes, unit_head_responded_at,
	supervisor_id, supervisor_notes, supervisor_responded_at,
	rejection_reason, needs_reconciliation, created_at, version
`

func scanSwapRequest(row interface{ Scan(...any) error }) (*domain.ShiftSwapRequest, error) {
	req := &domain.ShiftSwapRequest{}
	dst := []any{
		&req.ID, &req.FromID, &req.ToID, &req.ShiftID, &req.Reason, &req.Critical, &req.Status,
		&req.TargetRespondedAt,
		&req.UnitHeadID, &req.UnitHeadNotes, &req.UnitHeadRespondedAt,
		&req.SupervisorID, &req.SupervisorNotes, &req.SupervisorRespondedAt,
		&req.RejectionReason, &req.NeedsReconciliation, &req.CreatedAt, &req.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *Repository) CreateSwapRequest(req *domain.ShiftSwapRequest) error {
	query := `
		INSERT INTO swap_requests (from_id, to_id, shift_id, reason, critical, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{req.FromID, req.ToID, req.ShiftID, req.Reason, req.Critical, req.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSwapRequest(id int64) (*domain.ShiftSwapRequest, error) {
	query := `SELECT ` + swapRequestColumns + ` FROM swap_requests WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	req, err := scanSwapRequest(r.dbpool.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError("swap request %d does not exist", id)
		}
		return nil, err
	}

	return req, nil
}

// UpdateSwapRequest persists one transition. Two actors racing on the same
// state serialize on the version column; the loser gets invalid_state.
func (r *Repository) UpdateSwapRequest(req *domain.ShiftSwapRequest) error {
	query := `
		UPDATE swap_requests
		SET
			status = $1,
			target_responded_at = $2,
			unit_head_id = $3,
			unit_head_notes = $4,
			unit_head_responded_at = $5,
			supervisor_id = $6,
			supervisor_notes = $7,
			supervisor_responded_at = $8,
			rejection_reason = $9,
			needs_reconciliation = $10,
			version = version + 1
		WHERE id = $11 AND version = $12
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		req.Status,
		req.TargetRespondedAt,
		req.UnitHeadID, req.UnitHeadNotes, req.UnitHeadRespondedAt,
		req.SupervisorID, req.SupervisorNotes, req.SupervisorRespondedAt,
		req.RejectionReason, req.NeedsReconciliation,
		req.ID, req.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.InvalidStateError("swap request %d was modified concurrently", req.ID)
		}
		return err
	}

	return nil
}

func (r *Repository) ListSwapRequestsForStaff(staffID int64) ([]*domain.ShiftSwapRequest, error) {
	query := `
		SELECT ` + swapRequestColumns + `
		FROM swap_requests
		WHERE from_id = $1 OR to_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.ShiftSwapRequest, 0)
	for rows.Next() {
		req, err := scanSwapRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
