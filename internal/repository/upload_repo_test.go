package repository

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	tj "travel_journal"
	"travel_journal/internal/models"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestImageREST_Upload(t *testing.T) {
	repo := newTestRepo(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload" {
			t.Errorf("path = %q", r.URL.Path)
		}
		file, hdr, err := r.FormFile(uploadFormField)
		if err != nil {
			t.Errorf("FormFile: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(file)
		if hdr.Filename != "cover.png" || string(data) != string(pngHeader) {
			t.Errorf("got file %q (%d bytes)", hdr.Filename, len(data))
		}
		if hdr.Header.Get("Content-Type") != "image/png" {
			t.Errorf("part content type = %q", hdr.Header.Get("Content-Type"))
		}
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "name": "cover.png", "url": "https://cdn/cover.png"}})
	})

	got, err := repo.Images.Upload(context.Background(), models.ImageFile{Filename: "cover.png", ContentType: "image/png", Data: pngHeader})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if got.URL != "https://cdn/cover.png" {
		t.Fatalf("url = %q", got.URL)
	}
}

func TestImageREST_UploadRejected(t *testing.T) {
	calls := 0
	repo := newTestRepo(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeBackendError(w, http.StatusRequestEntityTooLarge, "PayloadTooLargeError", "File too big")
	})

	_, err := repo.Images.Upload(context.Background(), models.ImageFile{Filename: "big.png", Data: pngHeader})
	if !errors.Is(err, tj.ErrUpload) || tj.UserMessage(err) != "File too big" {
		t.Fatalf("expected ErrUpload 'File too big', got %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
}

func TestImageREST_UploadNotAnImage(t *testing.T) {
	calls := 0
	repo := newTestRepo(t, "tok", func(w http.ResponseWriter, r *http.Request) { calls++ })

	_, err := repo.Images.Upload(context.Background(), models.ImageFile{Filename: "notes.txt", Data: []byte("plain text")})
	if !errors.Is(err, tj.ErrUpload) {
		t.Fatalf("expected ErrUpload, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("backend should not be called, got %d calls", calls)
	}
}
