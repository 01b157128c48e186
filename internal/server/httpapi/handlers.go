package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/heva-credit/heva/internal/client/models"
	"github.com/heva-credit/heva/internal/common"
	"github.com/heva-credit/heva/internal/logging"
	"github.com/heva-credit/heva/internal/server/users"
)

const maxRequestBytes = 1 << 20

// Availability reasons reported by check-email.
const (
	ReasonAvailable   = "AVAILABLE"
	ReasonEmailExists = "EMAIL_EXISTS"
	ReasonError       = "ERROR"
)

const (
	msgEmailRegistered = "This email address is already registered"
	msgEmailAvailable  = "Email address is available"
	msgCheckFailed     = "Error checking email availability"
	msgResetAccepted   = "If that address is registered, a reset link is on its way"
)

type messageResponse struct {
	Message string             `json:"message"`
	Errors  []common.FormError `json:"errors,omitempty"`
}

type checkEmailResponse struct {
	Available       bool   `json:"available"`
	Email           string `json:"email,omitempty"`
	NormalizedEmail string `json:"normalizedEmail,omitempty"`
	Message         string `json:"message"`
	Reason          string `json:"reason"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type Handler struct {
	log   logging.Logger
	users *users.Service
}

func NewHandler(log logging.Logger, us *users.Service) *Handler {
	return &Handler{log: log.With("module", "httpapi"), users: us}
}

func (h *Handler) requestLog(r *http.Request, op string) logging.Logger {
	return h.log.With("op", op, "request_id", middleware.GetReqID(r.Context()))
}

func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "httpapi.register"
	ctx := r.Context()
	log := h.requestLog(r, op)

	var req models.RegisterData
	if err := render.DecodeJSON(http.MaxBytesReader(w, r.Body, maxRequestBytes), &req); err != nil {
		log.Warn(ctx, "failed to decode request body", logging.Err(err))
		respond(w, r, http.StatusBadRequest, messageResponse{Message: "invalid request body"})
		return
	}

	u, err := h.users.Register(ctx, req)
	if err != nil {
		var verr *users.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Info(ctx, "registration rejected", "fields", len(verr.Fields))
			respond(w, r, http.StatusBadRequest, messageResponse{Message: "validation failed", Errors: verr.Fields})
		case errors.Is(err, users.ErrEmailTaken):
			log.Info(ctx, "email already registered")
			respond(w, r, http.StatusConflict, messageResponse{Message: msgEmailRegistered})
		default:
			log.Error(ctx, "registration failed", logging.Err(err))
			respond(w, r, http.StatusInternalServerError, messageResponse{Message: "failed to register user"})
		}
		return
	}

	log.Info(ctx, "user registered", "id", u.ID, "role", u.Role)
	respond(w, r, http.StatusCreated, u.ToModel())
}

// CheckEmail handles GET /api/auth/check-email?email=.
func (h *Handler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	const op = "httpapi.check_email"
	ctx := r.Context()
	log := h.requestLog(r, op)

	email := r.URL.Query().Get("email")
	if strings.TrimSpace(email) == "" {
		respond(w, r, http.StatusBadRequest, checkEmailResponse{Message: "email is required", Reason: ReasonError})
		return
	}

	res, err := h.users.CheckEmail(ctx, email)
	if err != nil {
		log.Error(ctx, "email check failed", logging.Err(err))
		respond(w, r, http.StatusInternalServerError, checkEmailResponse{Message: msgCheckFailed, Reason: ReasonError})
		return
	}

	out := checkEmailResponse{
		Available:       res.Available,
		Email:           res.Email,
		NormalizedEmail: res.NormalizedEmail,
		Message:         msgEmailAvailable,
		Reason:          ReasonAvailable,
	}
	if !res.Available {
		out.Message = msgEmailRegistered
		out.Reason = ReasonEmailExists
	}

	log.Debug(ctx, "email checked", "email", res.NormalizedEmail, "available", res.Available)
	respond(w, r, http.StatusOK, out)
}

// ForgotPassword handles POST /api/auth/forgot-password. The answer does
// not depend on whether the address is registered.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	const op = "httpapi.forgot_password"
	ctx := r.Context()
	log := h.requestLog(r, op)

	var req forgotPasswordRequest
	if err := render.DecodeJSON(http.MaxBytesReader(w, r.Body, maxRequestBytes), &req); err != nil {
		log.Warn(ctx, "failed to decode request body", logging.Err(err))
		respond(w, r, http.StatusBadRequest, messageResponse{Message: "invalid request body"})
		return
	}

	known, err := h.users.RequestPasswordReset(ctx, req.Email)
	if err != nil {
		var verr *users.ValidationError
		if errors.As(err, &verr) {
			respond(w, r, http.StatusBadRequest, messageResponse{Message: "validation failed", Errors: verr.Fields})
			return
		}
		log.Error(ctx, "password reset failed", logging.Err(err))
		respond(w, r, http.StatusInternalServerError, messageResponse{Message: "failed to request password reset"})
		return
	}

	log.Info(ctx, "password reset requested", "known", known)
	respond(w, r, http.StatusAccepted, messageResponse{Message: msgResetAccepted})
}

// ListUsers handles GET /api/users: every account registered since start,
// in registration order.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	const op = "httpapi.list_users"
	ctx := r.Context()

	all, err := h.users.List(ctx)
	if err != nil {
		h.requestLog(r, op).Error(ctx, "listing users failed", logging.Err(err))
		respond(w, r, http.StatusInternalServerError, messageResponse{Message: "failed to list users"})
		return
	}

	out := make([]models.User, 0, len(all))
	for _, u := range all {
		out = append(out, u.ToModel())
	}
	respond(w, r, http.StatusOK, out)
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
