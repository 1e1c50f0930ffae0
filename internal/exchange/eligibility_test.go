package exchange

import (
	"testing"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		committed  int32
		exception  int32
		maxShifts  int32
		wantTake   bool
		wantNeeds  bool
		wantReason ReasonCode
	}{
		{
			name:      "well under the limit",
			committed: 5, maxShifts: 20,
			wantTake: true, wantReason: ReasonNone,
		},
		{
			name:      "just below the warning threshold",
			committed: 17, maxShifts: 20,
			wantTake: true, wantReason: ReasonNone,
		},
		{
			name:      "exactly at the warning threshold",
			committed: 18, maxShifts: 20,
			wantTake: true, wantReason: ReasonApproachingLimit,
		},
		{
			name:      "one shift before the limit",
			committed: 19, maxShifts: 20,
			wantTake: true, wantReason: ReasonApproachingLimit,
		},
		{
			name:      "exactly at the limit",
			committed: 20, maxShifts: 20,
			wantNeeds: true, wantReason: ReasonLimitReached,
		},
		{
			name:      "over the limit",
			committed: 25, maxShifts: 20,
			wantNeeds: true, wantReason: ReasonLimitReached,
		},
		{
			name:      "zero quota counts as limit reached",
			committed: 0, maxShifts: 0,
			wantNeeds: true, wantReason: ReasonLimitReached,
		},
		{
			name:      "temporary exception extends the effective maximum",
			committed: 20, exception: 2, maxShifts: 20,
			wantTake: true, wantReason: ReasonApproachingLimit,
		},
		{
			name:      "limit reached even with the exception",
			committed: 22, exception: 2, maxShifts: 20,
			wantNeeds: true, wantReason: ReasonLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := testStaff(domain.RoleNurse, "Cardiology", tt.maxShifts)
			env := newTestEnv(member)
			env.workloads.setCommitted(member.ID, env.period, tt.committed)
			if tt.exception > 0 {
				require.NoError(t, env.workloads.AddTemporaryException(member.ID, env.period, tt.exception))
			}

			verdict, err := env.evaluator.Evaluate(member.ID, env.period)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTake, verdict.CanTakeShift)
			assert.Equal(t, tt.wantNeeds, verdict.NeedsOverworkRequest)
			assert.Equal(t, tt.wantReason, verdict.ReasonCode)
			assert.Equal(t, tt.committed, verdict.CurrentShifts)
			assert.Equal(t, tt.maxShifts+tt.exception, verdict.MaxShifts)
		})
	}
}

func TestEvaluateIsRoleIndependent(t *testing.T) {
	for _, role := range []domain.Role{
		domain.RoleAdministrator,
		domain.RolePhysician,
		domain.RoleNurse,
		domain.RoleGeneralStaff,
		domain.RoleSupervisor,
	} {
		member := testStaff(role, "ER", 10)
		env := newTestEnv(member)
		env.workloads.setCommitted(member.ID, env.period, 10)

		verdict, err := env.evaluator.Evaluate(member.ID, env.period)
		require.NoError(t, err)
		assert.True(t, verdict.NeedsOverworkRequest, "role %s should not bypass the limit", role)
	}
}

func TestEvaluateUnknownStaff(t *testing.T) {
	env := newTestEnv()

	_, err := env.evaluator.Evaluate(42, env.period)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
