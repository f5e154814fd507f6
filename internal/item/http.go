package item

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/andela-oeyiowuawi/Bucketlist/internal/auth"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/bucketlist"
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
	router.Get("/bucketlists/{id}/items", h.Index)
	router.Post("/bucketlists/{id}/items", h.Create)
	router.Put("/bucketlists/{id}/items/{item_id}", h.Update)
	router.Delete("/bucketlists/{id}/items/{item_id}", h.Delete)
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserID(r.Context())
	bucketListID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.respondNotFound(w, bucketlist.ErrBucketListNotFound)
		return
	}

	items, err := h.service.List(r.Context(), userID, bucketListID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if items == nil {
		items = []Item{}
	}
	httputil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserID(r.Context())
	bucketListID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.respondNotFound(w, bucketlist.ErrBucketListNotFound)
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

	it, err := h.service.Create(r.Context(), userID, bucketListID, req.Name, req.Done)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordItemCreated(r.Context())
	h.logger.InfoContext(r.Context(), "item created", "id", it.ID, "bucket_list_id", bucketListID)

	httputil.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{"item": it})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserID(r.Context())
	bucketListID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.respondNotFound(w, bucketlist.ErrBucketListNotFound)
		return
	}
	itemID, err := strconv.Atoi(chi.URLParam(r, "item_id"))
	if err != nil {
		h.respondNotFound(w, ErrItemNotFound)
		return
	}

	// Resolve the item before validating the body: unknown and foreign
	// records are a 404 no matter what the payload contains. The prior
	// state also tells us whether this update completes the item.
	prior, err := h.service.Get(r.Context(), userID, bucketListID, itemID)
	if err != nil {
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

	it, err := h.service.Update(r.Context(), userID, bucketListID, itemID, req.Name, req.Done)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if it.Done && !prior.Done {
		h.events.ItemDone(r.Context(), userID, bucketListID, it.ID)
	}

	httputil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"item": it})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserID(r.Context())
	bucketListID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.respondNotFound(w, bucketlist.ErrBucketListNotFound)
		return
	}
	itemID, err := strconv.Atoi(chi.URLParam(r, "item_id"))
	if err != nil {
		h.respondNotFound(w, ErrItemNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), userID, bucketListID, itemID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondNotFound(w http.ResponseWriter, err error) {
	httputil.RespondWithErrors(w, http.StatusNotFound, []string{err.Error()})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, bucketlist.ErrBucketListNotFound) || errors.Is(err, ErrItemNotFound) {
		h.respondNotFound(w, err)
		return
	}
	h.logger.Error("internal error", "error", err)
	httputil.RespondWithErrors(w, http.StatusInternalServerError, "internal server error")
}
