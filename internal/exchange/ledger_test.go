package exchange

import (
	"testing"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentLoadIncludesTemporaryException(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	env := newTestEnv(member)
	env.workloads.setCommitted(member.ID, env.period, 7)
	require.NoError(t, env.workloads.AddTemporaryException(member.ID, env.period, 3))

	load, err := env.ledger.CurrentLoad(member.ID, env.period)
	require.NoError(t, err)

	assert.Equal(t, int32(7), load.Count)
	assert.Equal(t, int32(23), load.MaxAllowed)
}

func TestCurrentLoadZeroForFreshPeriod(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	env := newTestEnv(member)

	load, err := env.ledger.CurrentLoad(member.ID, env.period)
	require.NoError(t, err)

	assert.Equal(t, int32(0), load.Count)
	assert.Equal(t, int32(20), load.MaxAllowed)
}

func TestReserveAtLimit(t *testing.T) {
	member := testStaff(domain.RolePhysician, "ER", 5)
	env := newTestEnv(member)
	env.workloads.setCommitted(member.ID, env.period, 5)

	err := env.ledger.Reserve(member.ID, env.period)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindQuotaExceeded))

	load, err := env.ledger.CurrentLoad(member.ID, env.period)
	require.NoError(t, err)
	assert.Equal(t, int32(5), load.Count)
}

func TestReserveUsesEffectiveMaximum(t *testing.T) {
	member := testStaff(domain.RolePhysician, "ER", 5)
	env := newTestEnv(member)
	env.workloads.setCommitted(member.ID, env.period, 5)
	require.NoError(t, env.workloads.AddTemporaryException(member.ID, env.period, 1))

	require.NoError(t, env.ledger.Reserve(member.ID, env.period))

	load, err := env.ledger.CurrentLoad(member.ID, env.period)
	require.NoError(t, err)
	assert.Equal(t, int32(6), load.Count)
}

func TestReleaseNeverGoesNegative(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	env := newTestEnv(member)

	err := env.ledger.Release(member.ID, env.period)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))
}

func TestRaiseQuotaValidation(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	env := newTestEnv(member)

	err := env.ledger.RaiseQuota(member.ID, 0, false, env.period)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestRaiseQuotaTemporaryIsPeriodScoped(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	env := newTestEnv(member)

	require.NoError(t, env.ledger.RaiseQuota(member.ID, 2, false, env.period))

	load, err := env.ledger.CurrentLoad(member.ID, env.period)
	require.NoError(t, err)
	assert.Equal(t, int32(22), load.MaxAllowed)

	// The exception lives on the period row, so the next period starts clean.
	nextLoad, err := env.ledger.CurrentLoad(member.ID, env.period.Next())
	require.NoError(t, err)
	assert.Equal(t, int32(20), nextLoad.MaxAllowed)
}

func TestRaiseQuotaPermanentPersists(t *testing.T) {
	member := testStaff(domain.RoleNurse, "ICU", 20)
	env := newTestEnv(member)

	require.NoError(t, env.ledger.RaiseQuota(member.ID, 5, true, env.period))

	load, err := env.ledger.CurrentLoad(member.ID, env.period)
	require.NoError(t, err)
	assert.Equal(t, int32(25), load.MaxAllowed)

	nextLoad, err := env.ledger.CurrentLoad(member.ID, env.period.Next())
	require.NoError(t, err)
	assert.Equal(t, int32(25), nextLoad.MaxAllowed)
}
