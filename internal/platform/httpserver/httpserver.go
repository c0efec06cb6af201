// Package httpserver builds the HTTP server with sane defaults.
package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server. WriteTimeout leaves room for admin writes that
// block on ledger confirmation; per-route middleware enforces tighter
// deadlines on the public surface.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
