package handlers

import (
	"context"
	"net/http"

	"socialforum/internal/models"
	"socialforum/internal/service"
)

type PostRequest struct {
	Name        string `json:"name" validate:"required,max=32"`
	Description string `json:"description" validate:"required,max=64"`
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.PostService.Get(r.Context(), postID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	channelID, ok := pathID(w, r, "channel_id")
	if !ok {
		return
	}

	var req PostRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	err := h.PostService.Create(r.Context(), actor(r), channelID, service.PostInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeMessage(w, "Post created successfully")
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req PostRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	post, err := h.PostService.Update(r.Context(), actor(r), postID, models.PostUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.PostService.Delete(r.Context(), actor(r), postID); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeMessage(w, "Post deleted successfully")
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	username := actor(r)
	outcome, err := toggle(r.Context(), func(ctx context.Context) (service.ToggleOutcome, error) {
		return h.PostService.Like(ctx, username, postID)
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if outcome == service.Added {
		writeMessage(w, "You liked this post successfully")
		return
	}
	writeMessage(w, "You unliked this post successfully")
}
