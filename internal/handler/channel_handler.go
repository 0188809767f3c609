package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"socialforum/internal/models"
	"socialforum/internal/service"
)

type ChannelRequest struct {
	Name        string  `json:"name" validate:"required,max=32"`
	Avatar      *string `json:"avatar" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=64"`
}

const toggleAttempts = 3

// toggle retries an operation that lost a race on a join row.
func toggle(ctx context.Context, fn func(ctx context.Context) (service.ToggleOutcome, error)) (service.ToggleOutcome, error) {
	var (
		outcome service.ToggleOutcome
		err     error
	)
	for attempt := 0; attempt < toggleAttempts; attempt++ {
		outcome, err = fn(ctx)
		if !errors.Is(err, service.ErrConflictDetected) {
			return outcome, err
		}
	}
	return outcome, err
}

func (h *Handlers) GetChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.ChannelService.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, channels, http.StatusOK)
}

func (h *Handlers) GetChannel(w http.ResponseWriter, r *http.Request) {
	channelID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	channel, err := h.ChannelService.Get(r.Context(), channelID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, channel, http.StatusOK)
}

func (h *Handlers) CreateChannel(w http.ResponseWriter, r *http.Request) {
	var req ChannelRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	err := h.ChannelService.Create(r.Context(), actor(r), service.ChannelInput{
		Name:        req.Name,
		Avatar:      req.Avatar,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeMessage(w, "Channel created successfully")
}

func (h *Handlers) UpdateChannel(w http.ResponseWriter, r *http.Request) {
	channelID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req ChannelRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	channel, err := h.ChannelService.Update(r.Context(), actor(r), channelID, models.ChannelUpdate{
		Name:        req.Name,
		Avatar:      req.Avatar,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, channel, http.StatusOK)
}

func (h *Handlers) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	channelID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.ChannelService.Delete(r.Context(), actor(r), channelID); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeMessage(w, "Channel deleted successfully")
}

func (h *Handlers) FollowChannel(w http.ResponseWriter, r *http.Request) {
	channelID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	username := actor(r)
	outcome, err := toggle(r.Context(), func(ctx context.Context) (service.ToggleOutcome, error) {
		return h.ChannelService.Follow(ctx, username, channelID)
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if outcome == service.Added {
		writeMessage(w, "You followed this channel successfully")
		return
	}
	writeMessage(w, "You unfollowed this channel successfully")
}

// UploadAvatar reads the multipart field "avatar" and sniffs its type from the content.
func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	channelID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	maxSize := h.Cfg.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1<<20)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		WriteError(w, "Invalid multipart body or file too large", http.StatusUnprocessableEntity)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("avatar")
	if err != nil {
		WriteError(w, "field 'avatar' is required", http.StatusUnprocessableEntity)
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		h.respondError(w, r, err)
		return
	}

	channel, err := h.ChannelService.UploadAvatar(r.Context(), actor(r), channelID, service.AvatarUpload{
		FileName:    header.Filename,
		ContentType: http.DetectContentType(head[:n]),
		Size:        header.Size,
		Body:        io.MultiReader(bytes.NewReader(head[:n]), file),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, channel, http.StatusOK)
}
