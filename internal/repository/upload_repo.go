package repository

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	tj "travel_journal"
	"travel_journal/internal/models"
)

type ImageREST struct {
	b *backend
}

func NewImageREST(b *backend) *ImageREST {
	return &ImageREST{b: b}
}

var _ ImageRepo = (*ImageREST)(nil)

const (
	uploadPath      = "/upload"
	uploadFormField = "files"
)

// Upload posts f as multipart and returns the first hosted file.
// Files that are not images are rejected before any request is made.
func (r *ImageREST) Upload(ctx context.Context, f models.ImageFile) (models.UploadedFile, error) {
	contentType := f.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(f.Data)
	}
	if len(f.Data) == 0 {
		return models.UploadedFile{}, &tj.Error{Kind: tj.ErrUpload, Op: opUpload, Message: "selected file is empty"}
	}
	if !strings.HasPrefix(contentType, "image/") {
		return models.UploadedFile{}, &tj.Error{Kind: tj.ErrUpload, Op: opUpload, Message: "selected file is not an image"}
	}

	body, formType, err := multipartImage(f, contentType)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("%s: encode multipart: %w", opUpload, err)
	}

	var files []models.UploadedFile
	err = r.b.do(ctx, call{op: opUpload, method: http.MethodPost, path: uploadPath, body: body, contentType: formType}, &files)
	if err != nil {
		return models.UploadedFile{}, err
	}
	if len(files) == 0 || files[0].URL == "" {
		return models.UploadedFile{}, &tj.Error{Kind: tj.ErrUpload, Op: opUpload, Message: "server returned no file"}
	}
	return files[0], nil
}

func multipartImage(f models.ImageFile, contentType string) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	name := f.Filename
	if name == "" {
		name = "cover"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, uploadFormField, name))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(f.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
