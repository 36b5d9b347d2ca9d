package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key, size, mime, err := store.Save(ctx, "resume.pdf", strings.NewReader("%PDF-1.4 fake content"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len("%PDF-1.4 fake content")) {
		t.Errorf("size = %d", size)
	}
	if mime != "application/pdf" {
		t.Errorf("mime = %q, want application/pdf", mime)
	}
	if !strings.HasSuffix(key, "_resume.pdf") {
		t.Errorf("key = %q, want timestamped name", key)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.4 fake content" {
		t.Errorf("content = %q", data)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, key); err == nil {
		t.Error("Open after Delete succeeded")
	}

	// Deleting a missing object is not an error.
	if err := store.Delete(ctx, key); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestStoreRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, _, _, err := store.Save(ctx, "../escape.pdf", strings.NewReader("x")); err == nil {
		t.Error("Save with traversal name succeeded")
	}
	if _, err := store.Open(ctx, "../outside"); err == nil {
		t.Error("Open with traversal key succeeded")
	}
	if err := store.Delete(ctx, "/etc/passwd"); err == nil {
		t.Error("Delete with absolute key succeeded")
	}
}

func TestStoreEmptyFile(t *testing.T) {
	store := New(t.TempDir())

	key, size, _, err := store.Save(context.Background(), "empty.bin", strings.NewReader(""))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != 0 {
		t.Errorf("size = %d, want 0", size)
	}
	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	if data, _ := io.ReadAll(rc); len(data) != 0 {
		t.Errorf("content = %q, want empty", data)
	}
}
