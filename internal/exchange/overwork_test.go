package exchange

import (
	"testing"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission(staffID int64) OverworkSubmission {
	return OverworkSubmission{
		StaffID:          staffID,
		AdditionalShifts: 2,
		Reason:           "covering for a colleague on leave",
		Urgency:          domain.UrgencyHigh,
		Type:             domain.OverworkTemporary,
	}
}

func TestOverworkSubmitValidation(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)

	tests := []struct {
		name   string
		mutate func(*OverworkSubmission)
	}{
		{"empty reason", func(s *OverworkSubmission) { s.Reason = "  " }},
		{"zero additional shifts", func(s *OverworkSubmission) { s.AdditionalShifts = 0 }},
		{"negative additional shifts", func(s *OverworkSubmission) { s.AdditionalShifts = -1 }},
		{"unknown type", func(s *OverworkSubmission) { s.Type = "forever" }},
		{"unknown urgency", func(s *OverworkSubmission) { s.Urgency = "extreme" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(member)
			sub := validSubmission(member.ID)
			tt.mutate(&sub)

			_, err := env.requests.Submit(sub)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindValidation))
		})
	}
}

func TestOverworkSubmitDefaultsUrgency(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	env := newTestEnv(member)

	sub := validSubmission(member.ID)
	sub.Urgency = ""

	req, err := env.requests.Submit(sub)
	require.NoError(t, err)
	assert.Equal(t, domain.UrgencyMedium, req.Urgency)
	assert.Equal(t, domain.OverworkPending, req.Status)
	assert.Equal(t, env.period, req.Period)
}

func TestOverworkSubmitUnknownStaff(t *testing.T) {
	env := newTestEnv()

	_, err := env.requests.Submit(validSubmission(404))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestOverworkSubmitRejectsSecondPending(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	env := newTestEnv(member)

	_, err := env.requests.Submit(validSubmission(member.ID))
	require.NoError(t, err)

	_, err = env.requests.Submit(validSubmission(member.ID))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))
}

func TestOverworkSubmitAllowedAfterDecision(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	admin := testStaff(domain.RoleAdministrator, "Administration", 20)
	env := newTestEnv(member, admin)

	req, err := env.requests.Submit(validSubmission(member.ID))
	require.NoError(t, err)

	_, err = env.requests.Reject(req.ID, admin.ID, "not needed this month")
	require.NoError(t, err)

	_, err = env.requests.Submit(validSubmission(member.ID))
	require.NoError(t, err)
}

func TestOverworkDecisionRequiresAdministrator(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	supervisor := testStaff(domain.RoleSupervisor, "Administration", 20)
	env := newTestEnv(member, supervisor)

	req, err := env.requests.Submit(validSubmission(member.ID))
	require.NoError(t, err)

	_, err = env.requests.Approve(req.ID, supervisor.ID, "looks fine")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	_, err = env.requests.Reject(req.ID, supervisor.ID, "no")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

func TestOverworkApproveTemporary(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	admin := testStaff(domain.RoleAdministrator, "Administration", 20)
	env := newTestEnv(member, admin)
	env.workloads.setCommitted(member.ID, env.period, 20)

	req, err := env.requests.Submit(validSubmission(member.ID))
	require.NoError(t, err)

	decided, err := env.requests.Approve(req.ID, admin.ID, "staffing shortage")
	require.NoError(t, err)
	assert.Equal(t, domain.OverworkApproved, decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, admin.ID, *decided.DecidedBy)
	assert.NotNil(t, decided.DecidedAt)

	// The grant is +2 this period only.
	load, err := env.ledger.CurrentLoad(member.ID, env.period)
	require.NoError(t, err)
	assert.Equal(t, int32(22), load.MaxAllowed)

	nextLoad, err := env.ledger.CurrentLoad(member.ID, env.period.Next())
	require.NoError(t, err)
	assert.Equal(t, int32(20), nextLoad.MaxAllowed)

	assert.Equal(t, 1, env.notifier.countOfType(domain.NotificationOverworkDecided))
}

func TestOverworkApprovePermanent(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	admin := testStaff(domain.RoleAdministrator, "Administration", 20)
	env := newTestEnv(member, admin)

	sub := validSubmission(member.ID)
	sub.Type = domain.OverworkPermanent
	sub.AdditionalShifts = 3

	req, err := env.requests.Submit(sub)
	require.NoError(t, err)

	_, err = env.requests.Approve(req.ID, admin.ID, "role change")
	require.NoError(t, err)

	nextLoad, err := env.ledger.CurrentLoad(member.ID, env.period.Next())
	require.NoError(t, err)
	assert.Equal(t, int32(23), nextLoad.MaxAllowed)
}

func TestOverworkDecisionIsFinal(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	admin := testStaff(domain.RoleAdministrator, "Administration", 20)
	env := newTestEnv(member, admin)

	req, err := env.requests.Submit(validSubmission(member.ID))
	require.NoError(t, err)

	_, err = env.requests.Approve(req.ID, admin.ID, "ok")
	require.NoError(t, err)

	// A second approve fails and, crucially, raises the quota only once.
	_, err = env.requests.Approve(req.ID, admin.ID, "ok again")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))

	load, err := env.ledger.CurrentLoad(member.ID, env.period)
	require.NoError(t, err)
	assert.Equal(t, int32(22), load.MaxAllowed)

	_, err = env.requests.Reject(req.ID, admin.ID, "too late")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))
}

func TestOverworkRejectRequiresReason(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	admin := testStaff(domain.RoleAdministrator, "Administration", 20)
	env := newTestEnv(member, admin)

	req, err := env.requests.Submit(validSubmission(member.ID))
	require.NoError(t, err)

	_, err = env.requests.Reject(req.ID, admin.ID, "   ")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestOverworkRejectLeavesQuotaUntouched(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	admin := testStaff(domain.RoleAdministrator, "Administration", 20)
	env := newTestEnv(member, admin)

	req, err := env.requests.Submit(validSubmission(member.ID))
	require.NoError(t, err)

	decided, err := env.requests.Reject(req.ID, admin.ID, "rosters are full elsewhere")
	require.NoError(t, err)
	assert.Equal(t, domain.OverworkRejected, decided.Status)
	assert.Equal(t, "rosters are full elsewhere", decided.DecisionNotes)

	load, err := env.ledger.CurrentLoad(member.ID, env.period)
	require.NoError(t, err)
	assert.Equal(t, int32(20), load.MaxAllowed)
	assert.Equal(t, 0, env.staff.baseQuotaCalls)
}

func TestOverworkHistory(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	admin := testStaff(domain.RoleAdministrator, "Administration", 20)
	env := newTestEnv(member, admin)

	req, err := env.requests.Submit(validSubmission(member.ID))
	require.NoError(t, err)
	_, err = env.requests.Reject(req.ID, admin.ID, "not this month")
	require.NoError(t, err)
	_, err = env.requests.Submit(validSubmission(member.ID))
	require.NoError(t, err)

	history, err := env.requests.History(member.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	_, err = env.requests.History(404)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestOverworkListPending(t *testing.T) {
	a := testStaff(domain.RoleNurse, "ICU", 20)
	b := testStaff(domain.RoleNurse, "ER", 20)
	admin := testStaff(domain.RoleAdministrator, "Administration", 20)
	env := newTestEnv(a, b, admin)

	reqA, err := env.requests.Submit(validSubmission(a.ID))
	require.NoError(t, err)
	_, err = env.requests.Submit(validSubmission(b.ID))
	require.NoError(t, err)

	_, err = env.requests.Approve(reqA.ID, admin.ID, "ok")
	require.NoError(t, err)

	pending, err := env.requests.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b.ID, pending[0].StaffID)
}
