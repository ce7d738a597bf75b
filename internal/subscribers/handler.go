package subscribers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/bissquit/subscribers-api/internal/pkg/ctxlog"
	"github.com/bissquit/subscribers-api/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
)

const msgInvalidBody = "Invalid request body"

// errorMappings is the single table translating service error kinds to HTTP statuses.
var errorMappings = []httputil.ErrorMapping{
	{Error: ErrValidation, Status: http.StatusBadRequest},
	{Error: ErrNotFound, Status: http.StatusNotFound},
	{Error: ErrStore, Status: http.StatusInternalServerError, WithCause: true},
}

// Handler handles HTTP requests for the subscribers module.
type Handler struct {
	service       *Service
	exposeDetails bool
}

// NewHandler creates a new subscribers handler. When exposeDetails is true,
// store failures carry the underlying error text in the response body.
func NewHandler(service *Service, exposeDetails bool) *Handler {
	return &Handler{
		service:       service,
		exposeDetails: exposeDetails,
	}
}

// RegisterRoutes registers all HTTP routes for the subscribers module.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/subscribers", func(r chi.Router) {
		r.Get("/", h.ListSubscribers)
		r.Post("/", h.CreateSubscriber)
		r.Get("/names", h.ListNames)
		r.Get("/{id}", h.GetSubscriber)
	})
}

// CreateSubscriberRequest represents the request body for creating a subscriber.
type CreateSubscriberRequest struct {
	Name              string `json:"name"`
	SubscribedChannel string `json:"subscribedChannel"`
}

// ListNames handles GET /subscribers/names request.
func (h *Handler) ListNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.ListNames(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, names)
}

// ListSubscribers handles GET /subscribers request.
func (h *Handler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, subscribers)
}

// GetSubscriber handles GET /subscribers/{id} request.
func (h *Handler) GetSubscriber(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	r = r.WithContext(ctxlog.With(r.Context(), "subscriber_id", id))

	subscriber, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, subscriber)
}

// CreateSubscriber handles POST /subscribers request.
func (h *Handler) CreateSubscriber(w http.ResponseWriter, r *http.Request) {
	// An empty body is treated as an empty object so it fails validation.
	var req CreateSubscriberRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.Error(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if dec.More() {
		httputil.Error(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	subscriber, err := h.service.Create(r.Context(), CreateInput{
		Name:              req.Name,
		SubscribedChannel: req.SubscribedChannel,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, subscriber)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.HandleError(r.Context(), w, err, errorMappings, h.exposeDetails)
}
