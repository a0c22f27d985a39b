// Package assets provides decoration model loading for chunk populators.
// Model packs are plain directories of model files; remote packs are fetched
// with go-getter, so any of its supported sources (git, http, file) works.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	get "github.com/hashicorp/go-getter"
)

// Model is a loaded decoration model. The pipeline never interprets the
// bytes; renderers and populators treat it as an opaque template.
type Model struct {
	Name string
	Path string
	Size int64
}

// Kind implements scene.Renderable for directly inserted models.
func (m *Model) Kind() string { return "model:" + m.Name }

// Provider loads decoration models by name. Implementations cache internally;
// a failed load surfaces as an error the caller logs and skips.
type Provider interface {
	LoadModel(ctx context.Context, name string) (*Model, error)
}

// Dir is a Provider backed by a model-pack directory. Loads are cached; the
// cache is safe for concurrent population tasks.
type Dir struct {
	root string

	mu    sync.Mutex
	cache map[string]*Model
}

// NewDir creates a Dir provider rooted at the given model-pack directory.
func NewDir(root string) *Dir {
	return &Dir{root: root, cache: make(map[string]*Model)}
}

// LoadModel returns the model with the given name from the pack directory.
func (d *Dir) LoadModel(ctx context.Context, name string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	if m, ok := d.cache[name]; ok {
		d.mu.Unlock()
		return m, nil
	}
	d.mu.Unlock()

	path := filepath.Join(d.root, filepath.Clean(name))
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("load model %s: is a directory", name)
	}

	m := &Model{Name: name, Path: path, Size: info.Size()}

	d.mu.Lock()
	d.cache[name] = m
	d.mu.Unlock()
	return m, nil
}

// FetchPack downloads a model pack from src into dst using go-getter. src may
// be any go-getter URL (git::, http::, file paths). Existing contents of dst
// are replaced.
func FetchPack(ctx context.Context, src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("clear pack dir %s: %w", dst, err)
	}

	client := &get.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Mode: get.ClientModeDir,
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("fetch pack %s: %w", src, err)
	}
	return nil
}
