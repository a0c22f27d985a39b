package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDirLoadModel(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "pine.glb")
	if err := os.WriteFile(path, []byte("model-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDir(root)
	m, err := d.LoadModel(context.Background(), "pine.glb")
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if m.Name != "pine.glb" {
		t.Errorf("Name = %q, want %q", m.Name, "pine.glb")
	}
	if m.Size != int64(len("model-bytes")) {
		t.Errorf("Size = %d, want %d", m.Size, len("model-bytes"))
	}
}

func TestDirLoadModelMissing(t *testing.T) {
	d := NewDir(t.TempDir())
	if _, err := d.LoadModel(context.Background(), "nope.glb"); err == nil {
		t.Error("expected error for missing model")
	}
}

func TestDirLoadModelCached(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "rock.glb")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDir(root)
	first, err := d.LoadModel(context.Background(), "rock.glb")
	if err != nil {
		t.Fatal(err)
	}

	// Remove the file; the cached model must still be served.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second, err := d.LoadModel(context.Background(), "rock.glb")
	if err != nil {
		t.Fatalf("cached LoadModel: %v", err)
	}
	if first != second {
		t.Error("expected cached model to be returned")
	}
}

func TestDirLoadModelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDir(t.TempDir())
	if _, err := d.LoadModel(ctx, "any.glb"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
