package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	app_errors "flow-chat/frontend/internal/errors"
	"flow-chat/frontend/internal/interfaces"
)

// maxRecordingBytes caps an uploaded voice recording.
const maxRecordingBytes = 25 << 20

// EndedRequest reports that the browser finished playing a clip.
type EndedRequest struct {
	MessageID string `json:"message_id" validate:"required"`
}

type AudioHandler struct {
	audio interfaces.AudioService
}

func NewAudioHandler(audio interfaces.AudioService) *AudioHandler {
	return &AudioHandler{audio: audio}
}

// HandleTranscribe godoc
// @Summary      Transcribe a recording
// @Tags         Audio
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio_file  formData  file  true  "Recording"
// @Success      200         {object}  TextResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      502         {object}  ErrorResponse
// @Router       /v1/audio/transcribe [post]
func (h *AudioHandler) HandleTranscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRecordingBytes)
	file, header, err := r.FormFile("audio_file")
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: an audio_file recording is required", app_errors.ErrValidation))
		return
	}
	defer file.Close()

	text, err := h.audio.Transcribe(r.Context(), file, header.Header.Get("Content-Type"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, TextResponse{Text: text})
}

// HandleToggle godoc
// @Summary      Play or stop a message
// @Description  Plays the message aloud, or stops it when it is already playing. Fails with 409 while a clip is loading.
// @Tags         Audio
// @Produce      json
// @Param        messageID  path      string  true  "Message ID"
// @Success      200        {object}  audio.State
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse
// @Router       /v1/audio/messages/{messageID}/toggle [post]
func (h *AudioHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	state, err := h.audio.Toggle(r.Context(), chi.URLParam(r, "messageID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

// HandleCurrent godoc
// @Summary      Current clip
// @Description  Returns the audio bytes of the clip being played.
// @Tags         Audio
// @Produce      application/octet-stream
// @Success      200
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/audio/current [get]
func (h *AudioHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	clip, ok := h.audio.Current()
	if !ok {
		respondWithError(w, fmt.Errorf("%w: nothing is playing", app_errors.ErrNotFound))
		return
	}
	contentType := clip.ContentType
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(clip.Data)))
	w.Header().Set("X-Message-ID", clip.MessageID)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(clip.Data); err != nil {
		slog.Warn("Failed to write audio clip", "message_id", clip.MessageID, "error", err)
	}
}

// HandleEnded godoc
// @Summary      Report playback end
// @Tags         Audio
// @Accept       json
// @Produce      json
// @Param        request  body      EndedRequest  true  "Finished message"
// @Success      200      {object}  audio.State
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/audio/ended [post]
func (h *AudioHandler) HandleEnded(w http.ResponseWriter, r *http.Request) {
	var req EndedRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.audio.Ended(req.MessageID))
}
