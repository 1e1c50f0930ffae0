package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
	"github.com/rsud-harapan/roster-manager/backend/internal/exchange"
)

func (h *Handler) SubmitOverworkRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.StaffMember)

	var req struct {
		AdditionalShifts int32  `json:"additionalShifts" validate:"required,min=1"`
		Reason           string `json:"reason" validate:"required"`
		Urgency          string `json:"urgency" validate:"omitempty,oneof=low medium high"`
		Type             string `json:"type" validate:"required,oneof=temporary permanent"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	created, err := h.overwork.Submit(exchange.OverworkSubmission{
		StaffID:          myInfo.ID,
		AdditionalShifts: req.AdditionalShifts,
		Reason:           req.Reason,
		Urgency:          domain.OverworkUrgency(req.Urgency),
		Type:             domain.OverworkRequestType(req.Type),
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "overwork request submitted", created)
}

func (h *Handler) ListPendingOverworkRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.overwork.ListPending()
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "pending overwork requests fetched", requests)
}

// GetOverworkHistory lists the requests of the staff member in the URL. Staff
// may read their own history, administrators anyone's.
func (h *Handler) GetOverworkHistory(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(StaffInfoCtx).(*domain.StaffMember)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.StaffMember)

	if myInfo.ID != member.ID && myInfo.Role != domain.RoleAdministrator {
		h.errorResponse(w, r, "insufficient permissions")
		return
	}

	requests, err := h.overwork.History(member.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "overwork request history fetched", requests)
}

func (h *Handler) ApproveOverworkRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.StaffMember)

	requestID, err := h.requestIDParam(r)
	if err != nil {
		h.errorResponse(w, r, "invalid request id")
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	decided, err := h.overwork.Approve(requestID, myInfo.ID, req.Notes)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "overwork request approved", decided)
}

func (h *Handler) RejectOverworkRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.StaffMember)

	requestID, err := h.requestIDParam(r)
	if err != nil {
		h.errorResponse(w, r, "invalid request id")
		return
	}

	var req struct {
		Reason string `json:"reason" validate:"required"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	decided, err := h.overwork.Reject(requestID, myInfo.ID, req.Reason)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "overwork request rejected", decided)
}

func (h *Handler) requestIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
