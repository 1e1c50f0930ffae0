package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
	"github.com/rsud-harapan/roster-manager/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllStaff(w http.ResponseWriter, r *http.Request) {
	var members []*domain.StaffMember
	var err error

	if unit := r.URL.Query().Get("unit"); unit != "" {
		members, err = h.repository.GetStaffByUnit(unit)
	} else {
		members, err = h.repository.GetAllStaff()
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staff list fetched", members)
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string `json:"username" validate:"required"`
		FullName  string `json:"fullName" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
		Role      string `json:"role" validate:"required,oneof=administrator physician nurse general-staff supervisor"`
		Unit      string `json:"unit" validate:"required"`
		IsUnitHead bool  `json:"isUnitHead"`
		MaxShifts *int32 `json:"maxShiftsPerPeriod" validate:"omitempty,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	emailExists, err := h.repository.CheckEmailIfExists(req.Email)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if emailExists {
		h.errorResponse(w, r, "email already exists")
		return
	}

	password := utils.GenerateRandomPassword(h.config.NewStaff.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	maxShifts := h.config.Roster.DefaultMaxShifts
	if req.MaxShifts != nil {
		maxShifts = *req.MaxShifts
	}

	member := &domain.StaffMember{
		Username:           req.Username,
		PasswordHash:       string(hashedPassword),
		FullName:           req.FullName,
		Email:              req.Email,
		Role:               domain.Role(req.Role),
		Unit:               req.Unit,
		IsUnitHead:         req.IsUnitHead,
		MaxShiftsPerPeriod: maxShifts,
	}

	if err := h.repository.CreateStaff(member); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "staff_members_username_key":
				h.badRequest(w, r, errors.New("username already exists"))
			case pgErr.ConstraintName == "staff_members_email_key":
				h.badRequest(w, r, errors.New("email already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifier.Notify(member, domain.NotificationAccountCreated, domain.AccountCreatedData{
		FullName: member.FullName,
		Username: member.Username,
		Password: password,
	})

	h.successResponse(w, r, "staff member created", member)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(StaffInfoCtx).(*domain.StaffMember)
	h.successResponse(w, r, "staff member fetched", member)
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName   *string `json:"fullName"`
		Email      *string `json:"email" validate:"omitempty,email"`
		Role       *string `json:"role" validate:"omitempty,oneof=administrator physician nurse general-staff supervisor"`
		Unit       *string `json:"unit"`
		IsUnitHead *bool   `json:"isUnitHead"`
		MaxShifts  *int32  `json:"maxShiftsPerPeriod" validate:"omitempty,min=1"`
		IsActive   *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	member := r.Context().Value(StaffInfoCtx).(*domain.StaffMember)

	if req.FullName != nil {
		member.FullName = *req.FullName
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Role != nil {
		member.Role = domain.Role(*req.Role)
	}
	if req.Unit != nil {
		member.Unit = *req.Unit
	}
	if req.IsUnitHead != nil {
		member.IsUnitHead = *req.IsUnitHead
	}
	if req.MaxShifts != nil {
		member.MaxShiftsPerPeriod = *req.MaxShifts
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateStaff(member); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "staff_members_email_key":
				h.badRequest(w, r, errors.New("email already exists"))
			case pgErr.ConstraintName == "staff_members_username_key":
				h.badRequest(w, r, errors.New("username already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		case domain.IsKind(err, domain.KindInvalidState):
			h.errorResponse(w, r, "staff update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "staff member updated", member)
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(StaffInfoCtx).(*domain.StaffMember)

	if err := h.repository.DeleteStaff(member.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staff member deleted", nil)
}

func (h *Handler) UpdateStaffPassword(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(StaffInfoCtx).(*domain.StaffMember)

	var req struct {
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	member.PasswordHash = string(hashedPassword)
	if err := h.repository.UpdateStaff(member); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "password changed", nil)
}
