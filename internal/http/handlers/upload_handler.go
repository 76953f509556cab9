// README: Image upload proxy handler.
package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Uploader sends one image to the hosting service and returns its link.
type Uploader interface {
	Upload(ctx context.Context, filename string, image io.Reader) (string, error)
}

type UploadHandler struct {
	uploader Uploader
}

func NewUploadHandler(uploader Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		writeError(c, http.StatusBadRequest, "no image provided")
		return
	}

	f, err := file.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable image")
		return
	}
	defer f.Close()

	link, err := h.uploader.Upload(c.Request.Context(), file.Filename, f)
	if err != nil {
		writeUploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"link": link})
}
