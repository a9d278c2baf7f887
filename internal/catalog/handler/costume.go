package handler

import (
	"net/http"

	"wardrobe/internal/catalog/service"
	"wardrobe/pkg/contracts"
	httputil "wardrobe/pkg/http"
	"wardrobe/pkg/logger"
	"wardrobe/pkg/middleware"
	"wardrobe/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type CostumeHandler struct {
	service service.CostumeService
	log     *logger.Logger
}

func NewCostumeHandler(service service.CostumeService, log *logger.Logger) *CostumeHandler {
	return &CostumeHandler{
		service: service,
		log:     log,
	}
}

func (h *CostumeHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := model.CostumeFilter{
		Category: httputil.QueryParam(r, "category"),
		Search:   httputil.QueryParam(r, "search"),
	}

	costumes, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, costumes); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CostumeHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	costume, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, costume); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CostumeHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	var req model.CostumeCreate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	costume, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, costume); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *CostumeHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	var req model.CostumeUpdate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	costume, err := h.service.Update(r.Context(), actor, ps.ByName("id"), &req)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, costume); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CostumeHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := h.service.Delete(r.Context(), actor, ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteMessage(w, "Costume deleted successfully"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "operation", "WriteMessage", "error", err)
	}
}

func (h *CostumeHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *CostumeHandler) RegisterRoutes(router contracts.Router) {
	router.Handle(http.MethodGet, "/api/costumes", h.List)
	router.Handle(http.MethodGet, "/api/costumes/:id", h.GetByID)
	router.Handle(http.MethodPost, "/api/costumes", h.Create)
	router.Handle(http.MethodPut, "/api/costumes/:id", h.Update)
	router.Handle(http.MethodPatch, "/api/costumes/:id", h.Update)
	router.Handle(http.MethodDelete, "/api/costumes/:id", h.Delete)
}
