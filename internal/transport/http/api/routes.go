package api

import (
	"net/http"
)

func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()

	// /settings — GET and PUT
	mux.HandleFunc("/settings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.handleGetSettings().ServeHTTP(w, r)
		case http.MethodPut:
			h.handlePutSettings().ServeHTTP(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/settings/toggle", onlyMethod(http.MethodPost, h.handleToggleSettings()))
	mux.HandleFunc("/proxies", onlyMethod(http.MethodGet, h.handleListProxies()))
	mux.HandleFunc("/proxies/refresh", onlyMethod(http.MethodPost, h.handleRefresh()))
	mux.HandleFunc("/proxies/next", onlyMethod(http.MethodGet, h.handleNextProxy()))
	mux.HandleFunc("/fetch", onlyMethod(http.MethodGet, h.handleFetch()))
	mux.HandleFunc("/journal", onlyMethod(http.MethodGet, h.handleJournal()))

	return withRequestID(h.log, mux)
}

func onlyMethod(method string, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	}
}
