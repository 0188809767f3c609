package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes registers every endpoint. Reads are public; writes go through AuthMiddleware.
// Literal segments such as /follow/ are registered ahead of the {id} patterns they overlap.
func (h *Handlers) Routes() *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Not Found", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	private := func(fn http.HandlerFunc) http.Handler {
		return h.AuthMiddleware(fn)
	}

	router.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc("/users/signup", h.Signup).Methods(http.MethodPost)
	router.HandleFunc("/users/signin", h.Signin).Methods(http.MethodPost)
	router.Handle("/users/signout", private(h.Signout)).Methods(http.MethodPost)
	router.Handle("/users/me", private(h.GetCurrentUser)).Methods(http.MethodGet)

	router.HandleFunc("/channels/", h.GetChannels).Methods(http.MethodGet)
	router.Handle("/channels/", private(h.CreateChannel)).Methods(http.MethodPost)
	router.Handle("/channels/follow/{id}", private(h.FollowChannel)).Methods(http.MethodPost)
	router.Handle("/channels/{id}/avatar", private(h.UploadAvatar)).Methods(http.MethodPut)
	router.HandleFunc("/channels/{id}", h.GetChannel).Methods(http.MethodGet)
	router.Handle("/channels/{id}", private(h.UpdateChannel)).Methods(http.MethodPut)
	router.Handle("/channels/{id}", private(h.DeleteChannel)).Methods(http.MethodDelete)

	router.HandleFunc("/posts/", h.GetPosts).Methods(http.MethodGet)
	router.Handle("/posts/like/{id}", private(h.LikePost)).Methods(http.MethodPost)
	router.Handle("/posts/{channel_id}", private(h.CreatePost)).Methods(http.MethodPost)
	router.HandleFunc("/posts/{id}", h.GetPost).Methods(http.MethodGet)
	router.Handle("/posts/{id}", private(h.UpdatePost)).Methods(http.MethodPut)
	router.Handle("/posts/{id}", private(h.DeletePost)).Methods(http.MethodDelete)

	router.HandleFunc("/comments/", h.GetComments).Methods(http.MethodGet)
	router.Handle("/comments/{post_id}", private(h.CreateComment)).Methods(http.MethodPost)
	router.HandleFunc("/comments/{id}", h.GetComment).Methods(http.MethodGet)
	router.Handle("/comments/{id}", private(h.UpdateComment)).Methods(http.MethodPut)
	router.Handle("/comments/{id}", private(h.DeleteComment)).Methods(http.MethodDelete)

	return router
}
