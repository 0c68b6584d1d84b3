package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with conservative timeouts. Uploads go directly
// to the blob store, so no request should need a long write window.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
