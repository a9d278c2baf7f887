package handler

import (
	"net/http"

	"wardrobe/internal/bookings/service"
	"wardrobe/pkg/contracts"
	httputil "wardrobe/pkg/http"
	"wardrobe/pkg/logger"
	"wardrobe/pkg/middleware"
	"wardrobe/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	var req model.BookingCreate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}
	req.IdempotencyKey = r.Header.Get(IdempotencyKeyHeader)

	booking, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		h.writeError(w, "ListMine", err)
		return
	}

	bookings, err := h.service.ListMine(r.Context(), actor)
	if err != nil {
		h.writeError(w, "ListMine", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListMine", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		h.writeError(w, "ListAll", err)
		return
	}

	bookings, err := h.service.ListAll(r.Context(), actor)
	if err != nil {
		h.writeError(w, "ListAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) SetStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		h.writeError(w, "SetStatus", err)
		return
	}

	var req model.BookingStatusUpdate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "SetStatus", err)
		return
	}

	booking, err := h.service.SetStatus(r.Context(), actor, ps.ByName("id"), req.Status)
	if err != nil {
		h.writeError(w, "SetStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "SetStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router contracts.Router) {
	router.Handle(http.MethodPost, "/api/bookings", h.Create)
	router.Handle(http.MethodGet, "/api/bookings", h.ListMine)
	router.Handle(http.MethodGet, "/api/admin/bookings", h.ListAll)
	router.Handle(http.MethodPut, "/api/admin/bookings/:id/status", h.SetStatus)
}
