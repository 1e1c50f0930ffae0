package exchange

import (
	"fmt"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

type fixedPeriod domain.Period

func (p fixedPeriod) CurrentPeriod() domain.Period {
	return domain.Period(p)
}

type memStaffDirectory struct {
	members        map[int64]*domain.StaffMember
	baseQuotaCalls int
}

func newMemStaffDirectory(members ...*domain.StaffMember) *memStaffDirectory {
	d := &memStaffDirectory{members: make(map[int64]*domain.StaffMember)}
	for _, m := range members {
		d.members[m.ID] = m
	}
	return d
}

func (d *memStaffDirectory) GetStaff(id int64) (*domain.StaffMember, error) {
	member, ok := d.members[id]
	if !ok {
		return nil, domain.NotFoundError("staff member %d does not exist", id)
	}
	return member, nil
}

func (d *memStaffDirectory) RaiseBaseQuota(id int64, amount int32) error {
	member, ok := d.members[id]
	if !ok {
		return domain.NotFoundError("staff member %d does not exist", id)
	}
	member.MaxShiftsPerPeriod += amount
	d.baseQuotaCalls++
	return nil
}

type workloadKey struct {
	staffID int64
	period  domain.Period
}

type memWorkloadStore struct {
	rows map[workloadKey]*domain.Workload
}

func newMemWorkloadStore() *memWorkloadStore {
	return &memWorkloadStore{rows: make(map[workloadKey]*domain.Workload)}
}

func (s *memWorkloadStore) setCommitted(staffID int64, period domain.Period, committed int32) {
	key := workloadKey{staffID, period}
	row, ok := s.rows[key]
	if !ok {
		row = &domain.Workload{StaffID: staffID, Period: period}
		s.rows[key] = row
	}
	row.Committed = committed
}

func (s *memWorkloadStore) GetWorkload(staffID int64, period domain.Period) (*domain.Workload, error) {
	if row, ok := s.rows[workloadKey{staffID, period}]; ok {
		copied := *row
		return &copied, nil
	}
	return &domain.Workload{StaffID: staffID, Period: period}, nil
}

func (s *memWorkloadStore) AdjustCommitted(staffID int64, period domain.Period, delta int32, maxAllowed int32) error {
	key := workloadKey{staffID, period}
	row, ok := s.rows[key]
	if !ok {
		row = &domain.Workload{StaffID: staffID, Period: period}
		s.rows[key] = row
	}

	next := row.Committed + delta
	if next < 0 {
		return domain.InvalidStateError("staff member %d has no committed shifts to release in %s", staffID, period)
	}
	if delta > 0 && next > maxAllowed {
		return domain.QuotaExceededError("staff member %d has reached their shift limit for %s", staffID, period)
	}

	row.Committed = next
	return nil
}

func (s *memWorkloadStore) AddTemporaryException(staffID int64, period domain.Period, amount int32) error {
	key := workloadKey{staffID, period}
	row, ok := s.rows[key]
	if !ok {
		row = &domain.Workload{StaffID: staffID, Period: period}
		s.rows[key] = row
	}
	row.TemporaryException += amount
	return nil
}

type memRosterStore struct {
	shifts        map[int64]*domain.ShiftAssignment
	reassignCalls []int64
	reassignErr   error
}

func newMemRosterStore(shifts ...*domain.ShiftAssignment) *memRosterStore {
	s := &memRosterStore{shifts: make(map[int64]*domain.ShiftAssignment)}
	for _, shift := range shifts {
		s.shifts[shift.ID] = shift
	}
	return s
}

func (s *memRosterStore) GetShift(id int64) (*domain.ShiftAssignment, error) {
	shift, ok := s.shifts[id]
	if !ok {
		return nil, domain.NotFoundError("shift %d does not exist", id)
	}
	return shift, nil
}

func (s *memRosterStore) ReassignShift(shiftID int64, newOwnerID int64) error {
	if s.reassignErr != nil {
		return s.reassignErr
	}
	shift, ok := s.shifts[shiftID]
	if !ok {
		return domain.NotFoundError("shift %d does not exist", shiftID)
	}
	shift.StaffID = newOwnerID
	s.reassignCalls = append(s.reassignCalls, shiftID)
	return nil
}

type memOverworkStore struct {
	requests map[int64]*domain.OverworkRequest
	nextID   int64
}

func newMemOverworkStore() *memOverworkStore {
	return &memOverworkStore{requests: make(map[int64]*domain.OverworkRequest), nextID: 1}
}

func (s *memOverworkStore) CreateOverworkRequest(req *domain.OverworkRequest) error {
	req.ID = s.nextID
	s.nextID++
	req.Version = 1
	copied := *req
	s.requests[req.ID] = &copied
	return nil
}

func (s *memOverworkStore) GetOverworkRequest(id int64) (*domain.OverworkRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, domain.NotFoundError("overwork request %d does not exist", id)
	}
	copied := *req
	return &copied, nil
}

func (s *memOverworkStore) UpdateOverworkRequest(req *domain.OverworkRequest) error {
	stored, ok := s.requests[req.ID]
	if !ok {
		return domain.NotFoundError("overwork request %d does not exist", req.ID)
	}
	if stored.Version != req.Version {
		return domain.InvalidStateError("overwork request %d was modified concurrently", req.ID)
	}
	req.Version++
	copied := *req
	s.requests[req.ID] = &copied
	return nil
}

func (s *memOverworkStore) HasPendingOverworkRequest(staffID int64) (bool, error) {
	for _, req := range s.requests {
		if req.StaffID == staffID && req.Status == domain.OverworkPending {
			return true, nil
		}
	}
	return false, nil
}

func (s *memOverworkStore) ListOverworkRequestsByStaff(staffID int64) ([]*domain.OverworkRequest, error) {
	out := make([]*domain.OverworkRequest, 0)
	for _, req := range s.requests {
		if req.StaffID == staffID {
			copied := *req
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memOverworkStore) ListPendingOverworkRequests() ([]*domain.OverworkRequest, error) {
	out := make([]*domain.OverworkRequest, 0)
	for _, req := range s.requests {
		if req.Status == domain.OverworkPending {
			copied := *req
			out = append(out, &copied)
		}
	}
	return out, nil
}

type memSwapStore struct {
	requests map[int64]*domain.ShiftSwapRequest
	nextID   int64
}

func newMemSwapStore() *memSwapStore {
	return &memSwapStore{requests: make(map[int64]*domain.ShiftSwapRequest), nextID: 1}
}

func (s *memSwapStore) CreateSwapRequest(req *domain.ShiftSwapRequest) error {
	req.ID = s.nextID
	s.nextID++
	req.Version = 1
	copied := *req
	s.requests[req.ID] = &copied
	return nil
}

func (s *memSwapStore) GetSwapRequest(id int64) (*domain.ShiftSwapRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, domain.NotFoundError("swap request %d does not exist", id)
	}
	copied := *req
	return &copied, nil
}

func (s *memSwapStore) UpdateSwapRequest(req *domain.ShiftSwapRequest) error {
	stored, ok := s.requests[req.ID]
	if !ok {
		return domain.NotFoundError("swap request %d does not exist", req.ID)
	}
	if stored.Version != req.Version {
		return domain.InvalidStateError("swap request %d was modified concurrently", req.ID)
	}
	req.Version++
	copied := *req
	s.requests[req.ID] = &copied
	return nil
}

func (s *memSwapStore) ListSwapRequestsForStaff(staffID int64) ([]*domain.ShiftSwapRequest, error) {
	out := make([]*domain.ShiftSwapRequest, 0)
	for _, req := range s.requests {
		if req.FromID == staffID || req.ToID == staffID {
			copied := *req
			out = append(out, &copied)
		}
	}
	return out, nil
}

type recordedNotification struct {
	To   string
	Type string
	Data any
}

type recordingNotifier struct {
	sent []recordedNotification
}

func (n *recordingNotifier) Notify(member *domain.StaffMember, eventType string, data any) {
	n.sent = append(n.sent, recordedNotification{To: member.Email, Type: eventType, Data: data})
}

func (n *recordingNotifier) countOfType(eventType string) int {
	count := 0
	for _, s := range n.sent {
		if s.Type == eventType {
			count++
		}
	}
	return count
}

// testEnv wires the whole kernel over in-memory fakes.
type testEnv struct {
	staff     *memStaffDirectory
	workloads *memWorkloadStore
	roster    *memRosterStore
	overwork  *memOverworkStore
	swapStore *memSwapStore
	notifier  *recordingNotifier
	period    domain.Period

	ledger    *Ledger
	evaluator *Evaluator
	gate      *Gate
	requests  *OverworkWorkflow
	swaps     *SwapWorkflow
}

func newTestEnv(members ...*domain.StaffMember) *testEnv {
	env := &testEnv{
		staff:     newMemStaffDirectory(members...),
		workloads: newMemWorkloadStore(),
		roster:    newMemRosterStore(),
		overwork:  newMemOverworkStore(),
		swapStore: newMemSwapStore(),
		notifier:  &recordingNotifier{},
		period:    "2026-09",
	}

	env.ledger = NewLedger(env.staff, env.workloads)
	env.evaluator = NewEvaluator(env.ledger)
	env.gate = NewGate(env.evaluator)
	env.requests = NewOverworkWorkflow(env.overwork, env.staff, env.ledger, env.notifier, fixedPeriod(env.period))
	env.swaps = NewSwapWorkflow(
		&SwapWorkflowParams{
			CriticalUnits:   []string{"ICU", "ER"},
			MinReasonLength: 10,
		},
		env.swapStore, env.roster, env.staff, env.ledger, env.gate, env.notifier, fixedPeriod(env.period),
	)

	return env
}

var nextTestStaffID int64

func testStaff(role domain.Role, unit string, maxShifts int32) *domain.StaffMember {
	nextTestStaffID++
	return &domain.StaffMember{
		ID:                 nextTestStaffID,
		Username:           fmt.Sprintf("staff%d", nextTestStaffID),
		FullName:           fmt.Sprintf("Staff Member %d", nextTestStaffID),
		Email:              fmt.Sprintf("staff%d@hospital.test", nextTestStaffID),
		Role:               role,
		Unit:               unit,
		MaxShiftsPerPeriod: maxShifts,
		IsActive:           true,
	}
}
