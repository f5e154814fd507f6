package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/andela-oeyiowuawi/Bucketlist/internal/event"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/httputil"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
	events   *event.Service
}

func NewHandler(service *Service, logger *slog.Logger, m *metrics.Metrics, events *event.Service) *Handler {
	return &Handler{
		service:  service,
		validate: httputil.NewValidator(),
		logger:   logger,
		metrics:  m,
		events:   events,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/users", h.Signup)
	router.Post("/auth/login", h.Login)
	router.Get("/auth/logout", h.Logout)
}

// Signup creates a new user account
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		httputil.RespondWithErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.logger.Warn("signup validation failed", "error", err)
		httputil.RespondWithErrors(w, http.StatusUnprocessableEntity, httputil.ValidationMessages(err))
		return
	}

	createdUser, err := h.service.Signup(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			httputil.RespondWithErrors(w, http.StatusUnprocessableEntity, map[string][]string{
				"email": {"has already been taken"},
			})
			return
		}
		h.logger.Error("signup failed", "error", err)
		httputil.RespondWithErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.metrics.RecordUserSignedUp(r.Context())
	h.events.UserSignedUp(r.Context(), createdUser.ID)
	h.logger.Info("user signed up", "email", createdUser.Email)

	httputil.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{"user": createdUser})
}

// Login authenticates a user and returns a bearer token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		httputil.RespondWithErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.logger.Warn("login validation failed", "error", err)
		httputil.RespondWithErrors(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httputil.RespondWithErrors(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
			return
		}
		h.logger.Error("login failed", "error", err)
		httputil.RespondWithErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.metrics.RecordLogin(r.Context())
	h.logger.Info("user logged in", "email", req.Email)

	httputil.RespondWithJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// Logout is stateless: tokens are not revoked server-side, clients drop them
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithMessage(w, http.StatusOK, "You have logged out")
}
