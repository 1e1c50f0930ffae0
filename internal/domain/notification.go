package domain

// NotificationMessage is the wire format published to the notification queue
// and consumed by the notifier worker.
type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const (
	NotificationAccountCreated  = "account_created"
	NotificationResetPassword   = "reset_password"
	NotificationOverworkDecided = "overwork_decided"
	NotificationSwapProposed    = "swap_proposed"
	NotificationSwapUpdate      = "swap_update"
	NotificationSwapReconcile   = "swap_reconciliation_required"
)

type AccountCreatedData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type OverworkDecidedData struct {
	FullName         string         `json:"fullName"`
	Status           OverworkStatus `json:"status"`
	AdditionalShifts int32          `json:"additionalShifts"`
	Notes            string         `json:"notes"`
}

type SwapProposedData struct {
	FullName      string `json:"fullName"`
	RequesterName string `json:"requesterName"`
	ShiftDate     string `json:"shiftDate"`
	Reason        string `json:"reason"`
}

type SwapUpdateData struct {
	FullName string     `json:"fullName"`
	SwapID   int64      `json:"swapID"`
	Stage    string     `json:"stage"`
	Status   SwapStatus `json:"status"`
	Reason   string     `json:"reason"`
}

type SwapReconcileData struct {
	FullName string `json:"fullName"`
	SwapID   int64  `json:"swapID"`
	ShiftID  int64  `json:"shiftID"`
}
