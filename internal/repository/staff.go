package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

func (r *Repository) GetStaff(id int64) (*domain.StaffMember, error) {
	query := `
		SELECT username, password_hash, full_name, email, role, unit, is_unit_head, max_shifts_per_period, is_active, created_at, version
		FROM staff_members WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	member := &domain.StaffMember{
		ID: id,
	}

	dst := []any{&member.Username, &member.PasswordHash, &member.FullName, &member.Email, &member.Role, &member.Unit, &member.IsUnitHead, &member.MaxShiftsPerPeriod, &member.IsActive, &member.CreatedAt, &member.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError("staff member %d does not exist", id)
		}
		return nil, err
	}

	return member, nil
}

func (r *Repository) GetStaffByUsername(username string) (*domain.StaffMember, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, unit, is_unit_head, max_shifts_per_period, is_active, created_at, version
		FROM staff_members WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	member := &domain.StaffMember{
		Username: username,
	}

	dst := []any{&member.ID, &member.PasswordHash, &member.FullName, &member.Email, &member.Role, &member.Unit, &member.IsUnitHead, &member.MaxShiftsPerPeriod, &member.IsActive, &member.CreatedAt, &member.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError("staff member %s does not exist", username)
		}
		return nil, err
	}

	return member, nil
}

func (r *Repository) GetAllStaff() ([]*domain.StaffMember, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role, unit, is_unit_head, max_shifts_per_period, is_active, created_at, version
		FROM staff_members
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.StaffMember, 0)
	for rows.Next() {
		member := &domain.StaffMember{}
		dst := []any{&member.ID, &member.Username, &member.PasswordHash, &member.FullName, &member.Email, &member.Role, &member.Unit, &member.IsUnitHead, &member.MaxShiftsPerPeriod, &member.IsActive, &member.CreatedAt, &member.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *Repository) GetStaffByUnit(unit string) ([]*domain.StaffMember, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role, unit, is_unit_head, max_shifts_per_period, is_active, created_at, version
		FROM staff_members
		WHERE unit = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, unit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.StaffMember, 0)
	for rows.Next() {
		member := &domain.StaffMember{}
		dst := []any{&member.ID, &member.Username, &member.PasswordHash, &member.FullName, &member.Email, &member.Role, &member.Unit, &member.IsUnitHead, &member.MaxShiftsPerPeriod, &member.IsActive, &member.CreatedAt, &member.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *Repository) CreateStaff(member *domain.StaffMember) error {
	query := `
		INSERT INTO staff_members (username, password_hash, full_name, email, role, unit, is_unit_head, max_shifts_per_period)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{member.Username, member.PasswordHash, member.FullName, member.Email, member.Role, member.Unit, member.IsUnitHead, member.MaxShiftsPerPeriod}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&member.ID, &member.IsActive, &member.CreatedAt, &member.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateStaff(member *domain.StaffMember) error {
	query := `
		UPDATE staff_members
		SET
			password_hash = $1,
			full_name = $2,
			email = $3,
			role = $4,
			unit = $5,
			is_unit_head = $6,
			max_shifts_per_period = $7,
			is_active = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING username, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{member.PasswordHash, member.FullName, member.Email, member.Role, member.Unit, member.IsUnitHead, member.MaxShiftsPerPeriod, member.IsActive, member.ID, member.Version}
	dst := []any{&member.Username, &member.CreatedAt, &member.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.InvalidStateError("staff member %d was modified concurrently", member.ID)
		}
		return err
	}

	return nil
}

func (r *Repository) DeleteStaff(id int64) error {
	query := `
		DELETE FROM staff_members WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// RaiseBaseQuota applies a permanent overwork grant. The raise is additive in
// a single statement, so no version check is needed.
func (r *Repository) RaiseBaseQuota(id int64, amount int32) error {
	query := `
		UPDATE staff_members
		SET max_shifts_per_period = max_shifts_per_period + $1, version = version + 1
		WHERE id = $2
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var version int32
	if err := r.dbpool.QueryRowContext(ctx, query, amount, id).Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError("staff member %d does not exist", id)
		}
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM staff_members WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
