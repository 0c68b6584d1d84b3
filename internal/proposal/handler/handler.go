// Package handler exposes the proposal HTTP surface: supplier submission
// and tracking plus the issuer decision routes.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"licibit/internal/proposal/models"
	"licibit/internal/proposal/service"
	id "licibit/pkg/domain"
	dErrors "licibit/pkg/domain-errors"
	"licibit/pkg/platform/httputil"
	"licibit/pkg/requestcontext"
)

type Handler struct {
	service *service.Service
	logger  *slog.Logger
}

func New(service *service.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the proposal routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/mis-cotizaciones", h.listOwn)
	r.Get("/cotizacion/{proposalID}", h.get)

	r.Post("/proveedor/cotizaciones", h.submit)

	r.Route("/constructora", func(r chi.Router) {
		r.Get("/licitaciones/{tenderID}/cotizaciones", h.listByTender)
		r.Post("/cotizaciones/{proposalID}/decision", h.decide)
	})
}

type submitRequest struct {
	TenderID  id.TenderID          `json:"tender_id"`
	Note      string               `json:"note"`
	Documents []models.DocumentRef `json:"documents"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	proposal, err := h.service.Submit(r.Context(), requestcontext.UserID(r.Context()), service.SubmitInput{
		TenderID:  req.TenderID,
		Note:      req.Note,
		Documents: req.Documents,
	})
	if err != nil {
		h.logger.Warn("proposal submission rejected", "tender_id", req.TenderID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, proposal)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	proposalID, err := id.ParseProposalID(chi.URLParam(r, "proposalID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	proposal, err := h.service.Get(r.Context(), requestcontext.UserID(r.Context()), proposalID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, proposal)
}

type decisionRequest struct {
	State models.State `json:"state"`
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request) {
	proposalID, err := id.ParseProposalID(chi.URLParam(r, "proposalID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req decisionRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	if !req.State.Valid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown proposal state"))
		return
	}
	proposal, err := h.service.Transition(r.Context(), requestcontext.UserID(r.Context()), proposalID, req.State)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, proposal)
}

func (h *Handler) listByTender(w http.ResponseWriter, r *http.Request) {
	tenderID, err := id.ParseTenderID(chi.URLParam(r, "tenderID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	proposals, err := h.service.ListByTender(r.Context(), requestcontext.UserID(r.Context()), tenderID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, proposals)
}

func (h *Handler) listOwn(w http.ResponseWriter, r *http.Request) {
	proposals, err := h.service.ListBySupplier(r.Context(), requestcontext.UserID(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, proposals)
}
