package bucketlist

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/andela-oeyiowuawi/Bucketlist/internal/auth"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/event"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/httputil"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
	events   *event.Service
}

func NewHandler(service Service, logger *slog.Logger, m *metrics.Metrics, events *event.Service) *Handler {
	return &Handler{
		service:  service,
		validate: httputil.NewValidator(),
		logger:   logger,
		metrics:  m,
		events:   events,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/bucketlists", h.Index)
	router.Post("/bucketlists", h.Create)
	router.Get("/bucketlists/{id}", h.Show)
	router.Put("/bucketlists/{id}", h.Update)
	router.Delete("/bucketlists/{id}", h.Delete)
}

// Index lists the acting user's bucketlists, optionally filtered by q and
// windowed by page/limit. Owning no lists at all is a friendly message, a
// search with no matches is a 404.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserID(r.Context())
	f := ParseFilter(r.URL.Query())

	lists, total, err := h.service.List(r.Context(), userID, f)
	if err != nil {
		if errors.Is(err, ErrNoResult) {
			httputil.RespondWithErrors(w, http.StatusNotFound, []string{"No result found"})
			return
		}
		h.handleServiceError(w, err)
		return
	}

	if f.Query != "" {
		h.metrics.RecordSearchPerformed(r.Context())
	} else {
		h.metrics.RecordBucketListsViewed(r.Context())
	}

	if total == 0 {
		httputil.RespondWithMessage(w, http.StatusOK, "You have no bucketlist")
		return
	}

	if lists == nil {
		lists = []BucketList{}
	}
	httputil.RespondWithJSON(w, http.StatusOK, lists)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserID(r.Context())

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.RespondWithErrors(w, http.StatusUnprocessableEntity, httputil.ValidationMessages(err))
		return
	}

	list, err := h.service.Create(r.Context(), userID, req.Name)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordBucketListCreated(r.Context())
	h.events.BucketListCreated(r.Context(), userID, list.ID, list.Name)
	h.logger.InfoContext(r.Context(), "bucketlist created", "id", list.ID)

	httputil.RespondWithJSON(w, http.StatusCreated, list)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserID(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithErrors(w, http.StatusNotFound, []string{ErrBucketListNotFound.Error()})
		return
	}

	list, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrBucketListNotFound) {
			httputil.RespondWithErrors(w, http.StatusNotFound, []string{ErrBucketListNotFound.Error()})
			return
		}
		h.handleServiceError(w, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, list)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserID(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithMessage(w, http.StatusNotFound, "can't update an invalid bucketlid")
		return
	}

	// Resolve the record before validating the body: an unknown or foreign
	// id is a 404 no matter what the payload contains.
	if _, err := h.service.Get(r.Context(), id, userID); err != nil {
		if errors.Is(err, ErrBucketListNotFound) {
			// Historical wording kept verbatim: clients assert on it.
			httputil.RespondWithMessage(w, http.StatusNotFound, "can't update an invalid bucketlid")
			return
		}
		h.handleServiceError(w, err)
		return
	}

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.RespondWithErrors(w, http.StatusUnprocessableEntity, httputil.ValidationMessages(err))
		return
	}

	list, err := h.service.Rename(r.Context(), id, userID, req.Name)
	if err != nil {
		if errors.Is(err, ErrBucketListNotFound) {
			httputil.RespondWithMessage(w, http.StatusNotFound, "can't update an invalid bucketlid")
			return
		}
		h.handleServiceError(w, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, list)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserID(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithMessage(w, http.StatusNotFound, "can't delete an invalid bucketlist")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, ErrBucketListNotFound) {
			httputil.RespondWithMessage(w, http.StatusNotFound, "can't delete an invalid bucketlist")
			return
		}
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordBucketListDeleted(r.Context())
	h.events.BucketListDeleted(r.Context(), userID, id)
	h.logger.InfoContext(r.Context(), "bucketlist deleted", "id", id)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	h.logger.Error("internal error", "error", err)
	httputil.RespondWithErrors(w, http.StatusInternalServerError, "internal server error")
}
