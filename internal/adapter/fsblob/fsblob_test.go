package fsblob_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dlriva/proposalforge/internal/adapter/fsblob"
)

func TestStore_Put(t *testing.T) {
	dir := t.TempDir()
	store, err := fsblob.New(dir, "/uploads/")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	url, err := store.Put(context.Background(), "logo.png", "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") {
		t.Fatalf("expected /uploads/ prefix, got %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("expected .png extension, got %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestStore_PutIgnoresCallerPath(t *testing.T) {
	dir := t.TempDir()
	store, err := fsblob.New(dir, "/uploads")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	url, err := store.Put(context.Background(), "../../etc/passwd.xyz", "application/octet-stream", []byte("x"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if strings.Contains(url, "..") {
		t.Fatalf("url leaked caller path: %q", url)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.Base(url))); err != nil {
		t.Fatalf("object not under root: %v", err)
	}
}

func TestStore_UniqueNames(t *testing.T) {
	store, err := fsblob.New(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	first, err := store.Put(context.Background(), "logo.png", "image/png", []byte("a"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	second, err := store.Put(context.Background(), "logo.png", "image/png", []byte("b"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct object names, both got %q", first)
	}
}
