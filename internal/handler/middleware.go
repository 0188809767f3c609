package handlers

import (
	"net/http"
)

// AuthMiddleware rejects requests without a live bearer token and puts the
// token's username into the request context.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := h.AuthService.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			h.respondError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
	})
}

func actor(r *http.Request) string {
	username, _ := UsernameFromContext(r.Context())
	return username
}
