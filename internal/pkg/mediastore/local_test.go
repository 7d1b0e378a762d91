package mediastore

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("writing form file failed: %v", err)
	}
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("ParseMultipartForm failed: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestLocalStoreUpload(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:5000/uploads/")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	asset, err := store.Upload(context.Background(), makeFileHeader(t, "thumb.png", "png-bytes"), "edusphere", ResourceImage)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if !strings.HasPrefix(asset.PublicID, "edusphere/") {
		t.Fatalf("public id not under folder: %q", asset.PublicID)
	}
	if filepath.Ext(asset.PublicID) != "" {
		t.Fatalf("public id must not carry the extension: %q", asset.PublicID)
	}
	if asset.SecureURL != "http://localhost:5000/uploads/"+asset.PublicID+".png" {
		t.Fatalf("unexpected secure URL: %q", asset.SecureURL)
	}

	stored := filepath.Join(store.basePath, filepath.FromSlash(asset.PublicID)+".png")
	content, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(content) != "png-bytes" {
		t.Fatalf("stored content mismatch: %q", content)
	}
}

func TestLocalStoreDestroy(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:5000/uploads")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}
	ctx := context.Background()

	asset, err := store.Upload(ctx, makeFileHeader(t, "intro.mp4", "video-bytes"), "edusphere/lectures", ResourceVideo)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if err := store.Destroy(ctx, asset.PublicID); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	stored := filepath.Join(store.basePath, filepath.FromSlash(asset.PublicID)+".mp4")
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Fatalf("asset file still present: %v", err)
	}
}

func TestLocalStoreDestroyMissingAsset(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:5000/uploads")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	if err := store.Destroy(context.Background(), "edusphere/never-existed"); err != nil {
		t.Fatalf("destroying a missing asset must not fail: %v", err)
	}
	if err := store.Destroy(context.Background(), ""); err != nil {
		t.Fatalf("empty public id must be a no-op: %v", err)
	}
}
