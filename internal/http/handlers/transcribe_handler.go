// README: /transcribe handler (multipart audio upload).
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n3utr7no/Kaze-AI/internal/service"
)

type TranscribeHandler struct {
	transcriber *service.Transcriber
}

func NewTranscribeHandler(transcriber *service.Transcriber) *TranscribeHandler {
	return &TranscribeHandler{transcriber: transcriber}
}

// Transcribe handles POST /transcribe. The upload stays in memory; only the
// filename travels along so the speech decoder can read the container
// format from its extension.
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		writeError(c, http.StatusBadRequest, "No audio")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable audio upload")
		return
	}
	defer f.Close()

	audio, err := io.ReadAll(f)
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable audio upload")
		return
	}

	result, err := h.transcriber.Transcribe(c.Request.Context(), fileHeader.Filename, audio)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, result)
}
