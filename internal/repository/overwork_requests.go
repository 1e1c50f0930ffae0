package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

func (r *Repository) CreateOverworkRequest(req *domain.OverworkRequest) error {
	query := `
		INSERT INTO overwork_requests (staff_id, additional_shifts, reason, urgency, request_type, period, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{req.StaffID, req.AdditionalShifts, req.Reason, req.Urgency, req.Type, string(req.Period), req.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetOverworkRequest(id int64) (*domain.OverworkRequest, error) {
	query := `
		SELECT staff_id, additional_shifts, reason, urgency, request_type, period, status, decided_by, decision_notes, created_at, decided_at, version
		FROM overwork_requests WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	req := &domain.OverworkRequest{
		ID: id,
	}

	dst := []any{&req.StaffID, &req.AdditionalShifts, &req.Reason, &req.Urgency, &req.Type, &req.Period, &req.Status, &req.DecidedBy, &req.DecisionNotes, &req.CreatedAt, &req.DecidedAt, &req.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError("overwork request %d does not exist", id)
		}
		return nil, err
	}

	return req, nil
}

// UpdateOverworkRequest persists a decision. The version check makes the
// second of two concurrent decisions fail instead of silently winning.
func (r *Repository) UpdateOverworkRequest(req *domain.OverworkRequest) error {
	query := `
		UPDATE overwork_requests
		SET
			status = $1,
			decided_by = $2,
			decision_notes = $3,
			decided_at = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{req.Status, req.DecidedBy, req.DecisionNotes, req.DecidedAt, req.ID, req.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.InvalidStateError("overwork request %d was modified concurrently", req.ID)
		}
		return err
	}

	return nil
}

func (r *Repository) HasPendingOverworkRequest(staffID int64) (bool, error) {
	hasPending := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM overwork_requests WHERE staff_id = $1 AND status = $2)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, staffID, domain.OverworkPending).Scan(&hasPending); err != nil {
		return false, err
	}

	return hasPending, nil
}

func (r *Repository) ListOverworkRequestsByStaff(staffID int64) ([]*domain.OverworkRequest, error) {
	query := `
		SELECT id, staff_id, additional_shifts, reason, urgency, request_type, period, status, decided_by, decision_notes, created_at, decided_at, version
		FROM overwork_requests
		WHERE staff_id = $1
		ORDER BY created_at DESC
	`

	return r.listOverworkRequests(query, staffID)
}

func (r *Repository) ListPendingOverworkRequests() ([]*domain.OverworkRequest, error) {
	query := `
		SELECT id, staff_id, additional_shifts, reason, urgency, request_type, period, status, decided_by, decision_notes, created_at, decided_at, version
		FROM overwork_requests
		WHERE status = $1
		ORDER BY created_at
	`

	return r.listOverworkRequests(query, domain.OverworkPending)
}

func (r *Repository) listOverworkRequests(query string, args ...any) ([]*domain.OverworkRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.OverworkRequest, 0)
	for rows.Next() {
		req := &domain.OverworkRequest{}
		dst := []any{&req.ID, &req.StaffID, &req.AdditionalShifts, &req.Reason, &req.Urgency, &req.Type, &req.Period, &req.Status, &req.DecidedBy, &req.DecisionNotes, &req.CreatedAt, &req.DecidedAt, &req.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
