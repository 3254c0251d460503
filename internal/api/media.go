package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/ionutT77/PourPal/internal/models"
)

// UploadProfilePhoto submits a profile photo. The server caps profiles at
// four photos and rejects the fifth with a validation error.
func (c *Client) UploadProfilePhoto(ctx context.Context, image io.Reader, filename, caption string, order int) (models.Upload, error) {
	fields := map[string]string{"caption": caption, "order": strconv.Itoa(order)}
	return c.uploadImage(ctx, "users.upload_photo", "/users/profile/photos/", "image", image, filename, fields)
}

// UploadMemoryPhoto attaches a memory photo to a past hangout.
func (c *Client) UploadMemoryPhoto(ctx context.Context, hangoutID int, image io.Reader, filename, caption string) (models.Upload, error) {
	fields := map[string]string{"caption": caption}
	path := fmt.Sprintf("/hangouts/%d/memories/", hangoutID)
	return c.uploadImage(ctx, "hangouts.upload_memory", path, "image", image, filename, fields)
}

// UploadVerificationDocument submits an age-verification document.
func (c *Client) UploadVerificationDocument(ctx context.Context, doc io.Reader, filename string, docType models.DocumentType) (models.Upload, error) {
	fields := map[string]string{"document_type": string(docType)}
	return c.uploadImage(ctx, "users.upload_verification", "/users/verification/", "document", doc, filename, fields)
}

func (c *Client) uploadImage(ctx context.Context, endpoint, path, fileField string, file io.Reader, filename string, fields map[string]string) (models.Upload, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return models.Upload{}, fmt.Errorf("multipart file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return models.Upload{}, fmt.Errorf("read upload: %w", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return models.Upload{}, fmt.Errorf("multipart field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return models.Upload{}, fmt.Errorf("multipart close: %w", err)
	}

	var stored models.Upload
	if err := c.upload(ctx, endpoint, path, writer.FormDataContentType(), &buf, &stored); err != nil {
		return models.Upload{}, err
	}
	return stored, nil
}
