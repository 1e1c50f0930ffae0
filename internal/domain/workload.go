package domain

// Workload is the committed shift count of one staff member in one period.
// TemporaryException is the extra capacity granted by approved temporary
// overwork requests; it lives on the period row, so a new period starts with a
// fresh row and the exception is discarded on rollover.
type Workload struct {
	StaffID            int64  `json:"staffID"`
	Period             Period `json:"period"`
	Committed          int32  `json:"committed"`
	TemporaryException int32  `json:"temporaryException"`
	Version            int32  `json:"-"`
}

// Load is a ledger reading: committed count against the effective maximum
// (base quota plus the period's temporary exception).
type Load struct {
	Count      int32 `json:"count"`
	MaxAllowed int32 `json:"maxAllowed"`
}
