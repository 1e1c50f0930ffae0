// Package seed fills a development database with a plausible hospital: a few
// units with heads, supervisors, a month of shifts and workload rows that
// match the roster. Meant for local environments only.
package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/rsud-harapan/roster-manager/backend/internal/config"
	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
	"github.com/rsud-harapan/roster-manager/backend/internal/repository"
	"github.com/rsud-harapan/roster-manager/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

var units = []string{"ICU", "ER", "Cardiology", "Pediatrics", "General Medicine"}

const staffPerUnit = 6

func SeedDemoData(cfg *config.Config, r *repository.Repository) {
	period := domain.PeriodOf(time.Now())
	periodStart, err := time.Parse("2006-01", string(period))
	if err != nil {
		slog.Error("failed to resolve current period", "error", err)
		return
	}

	supervisorHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.Staff.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash seed password", "error", err)
		return
	}

	supervisor := &domain.StaffMember{
		Username:           "duty.supervisor",
		PasswordHash:       string(supervisorHash),
		FullName:           "Ratna Kusuma",
		Email:              "duty.supervisor@" + cfg.Email.StaffDomain,
		Role:               domain.RoleSupervisor,
		Unit:               "Administration",
		MaxShiftsPerPeriod: cfg.Roster.DefaultMaxShifts,
	}
	if err := r.CreateStaff(supervisor); err != nil {
		slog.Error("failed to create supervisor", "error", err)
		return
	}

	allMembers := make([]*domain.StaffMember, 0, len(units)*staffPerUnit)
	firstShiftByStaff := make(map[int64]int64)

	for _, unit := range units {
		members := make([]*domain.StaffMember, 0, staffPerUnit)

		for i := 0; i < staffPerUnit; i++ {
			member, err := utils.GenerateRandomStaffMember(cfg.Seed.Staff.Password, cfg.Email.StaffDomain, unit, cfg.Roster.DefaultMaxShifts)
			if err != nil {
				slog.Error("failed to generate staff member", "error", err)
				return
			}
			if i == 0 {
				// The first member of each unit is its head.
				member.IsUnitHead = true
				member.Role = domain.RolePhysician
			}

			if err := r.CreateStaff(member); err != nil {
				slog.Error("failed to create staff member", "unit", unit, "error", err)
				continue
			}
			members = append(members, member)
		}

		// A month of shifts per member, with the workload ledger kept in step
		// so eligibility readings match the roster.
		for _, member := range members {
			shiftCount := rand.Intn(10) + 8
			for i := 0; i < shiftCount; i++ {
				category, start, end := utils.GenerateRandomShiftCategory()
				shift := &domain.ShiftAssignment{
					StaffID:   member.ID,
					Date:      periodStart.AddDate(0, 0, rand.Intn(28)),
					StartTime: start,
					EndTime:   end,
					Unit:      unit,
					Category:  category,
				}
				if err := r.CreateShift(shift); err != nil {
					slog.Error("failed to create shift", "staff", member.Username, "error", err)
					continue
				}

				if err := r.AdjustCommitted(member.ID, period, 1, member.MaxShiftsPerPeriod); err != nil {
					slog.Error("failed to record workload", "staff", member.Username, "error", err)
				}

				if _, ok := firstShiftByStaff[member.ID]; !ok {
					firstShiftByStaff[member.ID] = shift.ID
				}
			}
		}

		allMembers = append(allMembers, members...)
	}

	seedInFlightRequests(r, period, allMembers, firstShiftByStaff)

	slog.Info("seeding complete", "units", len(units), "period", period)
}

// seedInFlightRequests leaves a couple of pending requests so the approval
// screens have something to show on a fresh environment.
func seedInFlightRequests(r *repository.Repository, period domain.Period, members []*domain.StaffMember, firstShiftByStaff map[int64]int64) {
	if len(members) < 2 {
		return
	}

	for _, member := range members[:2] {
		req := &domain.OverworkRequest{
			StaffID:          member.ID,
			AdditionalShifts: int32(rand.Intn(3) + 1),
			Reason:           "covering planned absences in the unit",
			Urgency:          domain.UrgencyMedium,
			Type:             domain.OverworkTemporary,
			Period:           period,
			Status:           domain.OverworkPending,
		}
		if err := r.CreateOverworkRequest(req); err != nil {
			slog.Error("failed to create overwork request", "staff", member.Username, "error", err)
		}
	}

	// One swap proposal between the first two members of the first unit.
	from, to := members[0], members[1]
	shiftID, ok := firstShiftByStaff[from.ID]
	if !ok || from.Unit != to.Unit {
		return
	}

	swap := &domain.ShiftSwapRequest{
		FromID:  from.ID,
		ToID:    to.ID,
		ShiftID: shiftID,
		Reason:  "attending a training session that day",
		Status:  domain.SwapPending,
	}
	if err := r.CreateSwapRequest(swap); err != nil {
		slog.Error("failed to create swap request", "error", err)
	}
}
