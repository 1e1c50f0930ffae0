package handler

import (
	"net/http"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

// EvaluateEligibility reports whether the staff member in the URL could take
// one more shift in the current period, with the reason code the frontend
// turns into a banner.
func (h *Handler) EvaluateEligibility(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(StaffInfoCtx).(*domain.StaffMember)

	period := h.periods.CurrentPeriod()
	verdict, err := h.evaluator.Evaluate(member.ID, period)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "eligibility evaluated", struct {
		Period  domain.Period `json:"period"`
		Verdict any           `json:"verdict"`
	}{
		Period:  period,
		Verdict: verdict,
	})
}
