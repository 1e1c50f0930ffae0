package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

func (r *Repository) GetShift(id int64) (*domain.ShiftAssignment, error) {
	query := `
		SELECT staff_id, shift_date, start_time, end_time, unit, category, created_at, version
		FROM shift_assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift := &domain.ShiftAssignment{
		ID: id,
	}

	dst := []any{&shift.StaffID, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.Unit, &shift.Category, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError("shift %d does not exist", id)
		}
		return nil, err
	}

	return shift, nil
}

func (r *Repository) ListShiftsForStaff(staffID int64, period domain.Period) ([]*domain.ShiftAssignment, error) {
	query := `
		SELECT id, staff_id, shift_date, start_time, end_time, unit, category, created_at, version
		FROM shift_assignments
		WHERE staff_id = $1 AND to_char(shift_date, 'YYYY-MM') = $2
		ORDER BY shift_date, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID, string(period))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.ShiftAssignment, 0)
	for rows.Next() {
		shift := &domain.ShiftAssignment{}
		dst := []any{&shift.ID, &shift.StaffID, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.Unit, &shift.Category, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) CreateShift(shift *domain.ShiftAssignment) error {
	query := `
		INSERT INTO shift_assignments (staff_id, shift_date, start_time, end_time, unit, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.StaffID, shift.Date, shift.StartTime, shift.EndTime, shift.Unit, shift.Category}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

// ReassignShift moves a shift to a new owner in one statement; the roster is
// never left half-swapped.
func (r *Repository) ReassignShift(shiftID int64, newOwnerID int64) error {
	query := `
		UPDATE shift_assignments
		SET staff_id = $1, version = version + 1
		WHERE id = $2
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var version int32
	if err := r.dbpool.QueryRowContext(ctx, query, newOwnerID, shiftID).Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError("shift %d does not exist", shiftID)
		}
		return err
	}

	return nil
}
