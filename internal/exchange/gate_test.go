package exchange

import (
	"testing"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanSwapGatesOnlyTheTarget(t *testing.T) {
	from := testStaff(domain.RoleNurse, "ICU", 20)
	to := testStaff(domain.RoleNurse, "ICU", 20)
	env := newTestEnv(from, to)

	// The requester being at their limit is irrelevant: they are giving a
	// shift up.
	env.workloads.setCommitted(from.ID, env.period, 20)
	env.workloads.setCommitted(to.ID, env.period, 5)

	ok, err := env.gate.CanSwap(from.ID, to.ID, env.period)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanSwapRefusesFullTarget(t *testing.T) {
	from := testStaff(domain.RoleNurse, "ICU", 20)
	to := testStaff(domain.RoleNurse, "ICU", 20)
	env := newTestEnv(from, to)
	env.workloads.setCommitted(to.ID, env.period, 20)

	ok, err := env.gate.CanSwap(from.ID, to.ID, env.period)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanSwapAllowsApproachingLimitTarget(t *testing.T) {
	from := testStaff(domain.RoleNurse, "ICU", 20)
	to := testStaff(domain.RoleNurse, "ICU", 20)
	env := newTestEnv(from, to)
	env.workloads.setCommitted(to.ID, env.period, 19)

	ok, err := env.gate.CanSwap(from.ID, to.ID, env.period)
	require.NoError(t, err)
	assert.True(t, ok, "APPROACHING_LIMIT is informational and must not block")
}
