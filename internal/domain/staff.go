package domain

import (
	"time"
)

type Role string

const (
	RoleAdministrator Role = "administrator"
	RolePhysician     Role = "physician"
	RoleNurse         Role = "nurse"
	RoleGeneralStaff  Role = "general-staff"
	RoleSupervisor    Role = "supervisor"
)

type StaffMember struct {
	ID                 int64     `json:"id"`
	Username           string    `json:"username"`
	PasswordHash       string    `json:"-"`
	FullName           string    `json:"fullName"`
	Email              string    `json:"email"`
	Role               Role      `json:"role"`
	Unit               string    `json:"unit"`
	IsUnitHead         bool      `json:"isUnitHead"`
	MaxShiftsPerPeriod int32     `json:"maxShiftsPerPeriod"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	Version            int32     `json:"-"`
}

// HeadsUnit reports whether the member is the head of the given unit.
// A supervisor or administrator who does not head the unit still fails this check.
func (s *StaffMember) HeadsUnit(unit string) bool {
	return s.IsUnitHead && s.Unit == unit
}

// CanActAsSupervisor reports whether the member may decide the supervisor stage
// of a shift swap.
func (s *StaffMember) CanActAsSupervisor() bool {
	return s.Role == RoleSupervisor || s.Role == RoleAdministrator
}
