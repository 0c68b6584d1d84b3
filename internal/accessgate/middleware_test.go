package accessgate

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "licibit/pkg/domain"
	"licibit/pkg/requestcontext"
)

// resolverFunc adapts a function to the SessionResolver interface.
type resolverFunc func(ctx context.Context, r *http.Request) (*Session, error)

func (f resolverFunc) Resolve(ctx context.Context, r *http.Request) (*Session, error) {
	return f(ctx, r)
}

func fixedResolver(s *Session, err error) SessionResolver {
	return resolverFunc(func(context.Context, *http.Request) (*Session, error) { return s, err })
}

func gateHandler(t *testing.T, resolver SessionResolver) (http.Handler, *id.UserID) {
	t.Helper()
	var seenUser id.UserID
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = requestcontext.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return Middleware(DefaultTable(), resolver, logger)(inner), &seenUser
}

func TestMiddleware(t *testing.T) {
	issuer := &Session{UserID: id.UserID(uuid.New()), Role: id.RoleConstructora}
	supplier := &Session{UserID: id.UserID(uuid.New()), Role: id.RoleProveedor}

	t.Run("public path passes without session", func(t *testing.T) {
		h, _ := gateHandler(t, fixedResolver(nil, nil))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/licitaciones", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unmatched path without session redirects to login", func(t *testing.T) {
		h, _ := gateHandler(t, fixedResolver(nil, nil))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ruta-desconocida", nil))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("issuer subtree with supplier session lands on home", func(t *testing.T) {
		h, _ := gateHandler(t, fixedResolver(supplier, nil))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/constructora/proyectos", nil))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("matching role passes and identity reaches the handler", func(t *testing.T) {
		h, seen := gateHandler(t, fixedResolver(issuer, nil))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/constructora/proyectos", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, issuer.UserID, *seen)
	})

	t.Run("resolver failure fails closed", func(t *testing.T) {
		h, _ := gateHandler(t, fixedResolver(nil, errors.New("session provider timeout")))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mis-cotizaciones", nil))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("resolver failure on public path still allows", func(t *testing.T) {
		h, _ := gateHandler(t, fixedResolver(nil, errors.New("session provider timeout")))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/licitacion/abc", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
