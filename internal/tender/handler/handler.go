// Package handler exposes the tender HTTP surface: the public listing and
// detail screens plus the issuer-only management routes.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"licibit/internal/tender/models"
	"licibit/internal/tender/service"
	id "licibit/pkg/domain"
	"licibit/pkg/platform/httputil"
	pstrings "licibit/pkg/platform/strings"
	"licibit/pkg/requestcontext"
)

type Handler struct {
	service *service.Service
	logger  *slog.Logger
}

func New(service *service.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the tender routes. Path-level access is enforced by the
// gate middleware upstream; ownership checks live in the service.
func (h *Handler) Register(r chi.Router) {
	r.Get("/licitaciones", h.list)
	r.Get("/licitacion/{tenderID}", h.get)
	r.Get("/especializaciones", h.browse)
	r.Get("/mis-licitaciones", h.listOwn)

	r.Route("/constructora/licitaciones", func(r chi.Router) {
		r.Post("/", h.create)
		r.Put("/{tenderID}", h.edit)
		r.Post("/{tenderID}/desactivar", h.deactivate)
	})
}

type tenderRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	ClosingDeadline time.Time `json:"closing_deadline"`
	Active          bool      `json:"active"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req tenderRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	tender, err := h.service.Create(r.Context(), requestcontext.UserID(r.Context()), service.CreateInput{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		ClosingDeadline: req.ClosingDeadline,
	})
	if err != nil {
		h.logger.Warn("tender create rejected", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, tender)
}

type detailResponse struct {
	Tender    *models.Tender   `json:"tender"`
	IsOpen    bool             `json:"is_open"`
	Countdown models.Countdown `json:"countdown"`
	Remaining string           `json:"remaining"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tenderID, err := id.ParseTenderID(chi.URLParam(r, "tenderID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	tender, countdown, err := h.service.Get(r.Context(), tenderID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, detailResponse{
		Tender:    tender,
		IsOpen:    tender.IsOpen(requestcontext.Now(r.Context())),
		Countdown: countdown,
		Remaining: countdown.String(),
	})
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	tenderID, err := id.ParseTenderID(chi.URLParam(r, "tenderID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req tenderRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	tender, err := h.service.Edit(r.Context(), requestcontext.UserID(r.Context()), tenderID, service.EditInput{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		ClosingDeadline: req.ClosingDeadline,
		Active:          req.Active,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tender)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	tenderID, err := id.ParseTenderID(chi.URLParam(r, "tenderID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	tender, err := h.service.Deactivate(r.Context(), requestcontext.UserID(r.Context()), tenderID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tender)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := service.ListFilter{
		SelectedLabels: pstrings.DedupeAndTrim(query["especializacion"]),
		Status:         models.StatusFilter(query.Get("estado")),
	}
	listings, err := h.service.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listings)
}

func (h *Handler) listOwn(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.ListOwn(r.Context(), requestcontext.UserID(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listings)
}

func (h *Handler) browse(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Browse(r.URL.Query().Get("q")))
}
