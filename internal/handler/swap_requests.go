package handler

import (
	"net/http"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
	"github.com/rsud-harapan/roster-manager/backend/internal/exchange"
)

func (h *Handler) SubmitSwapRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.StaffMember)

	var req struct {
		ToID    int64  `json:"toId" validate:"required"`
		ShiftID int64  `json:"shiftId" validate:"required"`
		Reason  string `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	created, err := h.swaps.Submit(exchange.SwapSubmission{
		FromID:  myInfo.ID,
		ToID:    req.ToID,
		ShiftID: req.ShiftID,
		Reason:  req.Reason,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "swap request submitted", created)
}

func (h *Handler) GetMySwapRequests(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.StaffMember)

	requests, err := h.swaps.ListForStaff(myInfo.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "swap requests fetched", requests)
}

// GetSwapRequest returns one request. Visibility follows involvement: the two
// parties see it, as do unit heads, supervisors and administrators.
func (h *Handler) GetSwapRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.StaffMember)

	requestID, err := h.requestIDParam(r)
	if err != nil {
		h.errorResponse(w, r, "invalid request id")
		return
	}

	req, err := h.swaps.GetByID(requestID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	involved := myInfo.ID == req.FromID || myInfo.ID == req.ToID
	reviewer := myInfo.IsUnitHead || myInfo.CanActAsSupervisor()
	if !involved && !reviewer {
		h.errorResponse(w, r, "insufficient permissions")
		return
	}

	h.successResponse(w, r, "swap request fetched", req)
}

func (h *Handler) RespondAsTarget(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.StaffMember)

	requestID, err := h.requestIDParam(r)
	if err != nil {
		h.errorResponse(w, r, "invalid request id")
		return
	}

	var req struct {
		Accept bool   `json:"accept"`
		Reason string `json:"reason"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.swaps.RespondAsTarget(requestID, myInfo.ID, req.Accept, req.Reason)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "response recorded", updated)
}

func (h *Handler) RespondAsUnitHead(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.StaffMember)

	requestID, err := h.requestIDParam(r)
	if err != nil {
		h.errorResponse(w, r, "invalid request id")
		return
	}

	var req struct {
		Approve bool   `json:"approve"`
		Notes   string `json:"notes"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.swaps.RespondAsUnitHead(requestID, myInfo.ID, req.Approve, req.Notes)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "response recorded", updated)
}

func (h *Handler) RespondAsSupervisor(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.StaffMember)

	requestID, err := h.requestIDParam(r)
	if err != nil {
		h.errorResponse(w, r, "invalid request id")
		return
	}

	var req struct {
		Approve bool   `json:"approve"`
		Notes   string `json:"notes"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.swaps.RespondAsSupervisor(requestID, myInfo.ID, req.Approve, req.Notes)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "response recorded", updated)
}
