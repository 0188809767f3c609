package handlers

import (
	"net/http"

	"socialforum/internal/models"
)

type CommentRequest struct {
	Description string `json:"description" validate:"required,max=64"`
}

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.CommentService.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) GetComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	comment, err := h.CommentService.Get(r.Context(), commentID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, comment, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "post_id")
	if !ok {
		return
	}

	var req CommentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.CommentService.Create(r.Context(), actor(r), postID, req.Description); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeMessage(w, "Comment created successfully")
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.CommentService.Update(r.Context(), actor(r), commentID, models.CommentUpdate{
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, comment, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.CommentService.Delete(r.Context(), actor(r), commentID); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeMessage(w, "Comment deleted successfully")
}
