package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "12345.jpg"); err != nil || hit {
		t.Fatalf("Get before Set: hit=%v err=%v, want miss", hit, err)
	}

	data := []byte("jpeg bytes")
	if err := c.Set(ctx, "12345.jpg", data); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, hit, err := c.Get(ctx, "12345.jpg")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("Get after Set: miss, want hit")
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Get = %q, want %q", got, data)
	}
}

func TestFileCacheSetIdempotent(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	data := []byte("resized portrait")
	if err := c.Set(ctx, "22222.jpg", data); err != nil {
		t.Fatalf("first Set: %v", err)
	}
	if err := c.Set(ctx, "22222.jpg", data); err != nil {
		t.Fatalf("second Set: %v", err)
	}

	got, hit, err := c.Get(ctx, "22222.jpg")
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Get = %q, want %q", got, data)
	}
}

func TestFileCacheKeyIsFilename(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(context.Background(), "54321.jpg", []byte("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Entries for plain filenames stay browsable on disk.
	if _, err := os.Stat(filepath.Join(dir, "54321.jpg")); err != nil {
		t.Errorf("expected entry at %s: %v", filepath.Join(dir, "54321.jpg"), err)
	}
}

func TestFileCacheUnsafeKeyHashed(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()

	key := "../escape/attempt.jpg"
	if err := c.Set(ctx, key, []byte("y")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if string(got) != "y" {
		t.Errorf("Get = %q, want %q", got, "y")
	}

	// Nothing may be written outside the cache directory.
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape")); !os.IsNotExist(err) {
		t.Error("unsafe key escaped the cache directory")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "33333.jpg", []byte("z")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "33333.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "33333.jpg"); hit {
		t.Error("Get after Delete: hit, want miss")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "missing.jpg"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "key", []byte("data")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("Get: hit=%v err=%v, want miss", hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("hello"))
	b := Hash([]byte("hello"))
	if a != b {
		t.Error("Hash is not deterministic")
	}
	if len(a) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(a))
	}
	if Hash([]byte("other")) == a {
		t.Error("different inputs produced the same hash")
	}
}
