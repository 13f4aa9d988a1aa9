package websocket

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://localhost:3000",
	"http://localhost",
	"https://localhost",
	"http://127.0.0.1:3000",
	"http://127.0.0.1",
}

// NewUpgrader returns an upgrader that accepts the local development
// origins plus allowed. Requests without an Origin header (non-browser
// clients) are accepted.
func NewUpgrader(allowed []string) *websocket.Upgrader {
	origins := make(map[string]struct{}, len(defaultAllowedOrigins)+len(allowed))
	for _, o := range append(append([]string{}, defaultAllowedOrigins...), allowed...) {
		origins[strings.TrimSpace(o)] = struct{}{}
	}

	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if _, ok := origins[origin]; ok {
				return true
			}
			if _, ok := origins["*"]; ok {
				return true
			}
			return strings.Contains(origin, "://localhost") || strings.Contains(origin, "://127.0.0.1")
		},
	}
}
