package document

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "licibit/pkg/domain-errors"
	"licibit/pkg/platform/httputil"
	"licibit/pkg/requestcontext"
)

// Handler exposes upload and signed download over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the document routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/proveedor/documentos", h.upload)
	r.Get("/documentos/*", h.download)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed multipart body"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "file field is required"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "failed to read file"))
		return
	}

	ref, err := h.service.Upload(r.Context(), requestcontext.UserID(r.Context()),
		header.Filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ref)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	token := r.URL.Query().Get("token")
	if token == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "download token is required"))
		return
	}

	file, content, err := h.service.Download(r.Context(), path, token)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if file.ContentType != "" {
		w.Header().Set("Content-Type", file.ContentType)
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
