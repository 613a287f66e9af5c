package commands

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/dirmaster/dirmaster-backend/internal/application/interfaces"
	"github.com/google/uuid"
)

type UploadFile struct {
	uploader interfaces.Uploader
}

func NewUploadFile(uploader interfaces.Uploader) *UploadFile {
	return &UploadFile{uploader: uploader}
}

// Execute stores the file under a fresh uuid key, keeping the original
// extension so the object is served with a sensible content type.
func (c *UploadFile) Execute(ctx context.Context, filename string, contentType *string, body io.Reader) (uuid.UUID, string, error) {
	fileID := uuid.New()
	key := fmt.Sprintf("images/%s%s", fileID, path.Ext(filename))
	fileURL, err := c.uploader.UploadFile(ctx, key, contentType, body)
	if err != nil {
		return uuid.Nil, "", err
	}
	return fileID, fileURL, nil
}
