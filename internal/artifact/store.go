package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Artifact describes one generated file, addressed by its path relative to
// the storage root. The transport layer exposes these paths for download.
type Artifact struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Store is a hierarchical name -> bytes store. Handlers receive it
// explicitly instead of writing to ambient paths.
type Store interface {
	// Write stores data under relPath and returns the artifact record.
	Write(relPath string, data []byte) (Artifact, error)
	// List enumerates every stored artifact.
	List() ([]Artifact, error)
	// Root returns the absolute storage root, for serving downloads.
	Root() string
}

type dirStore struct {
	root string
}

// NewDirStore returns a Store rooted at dir.
func NewDirStore(dir string) (Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &dirStore{root: abs}, nil
}

func (s *dirStore) Root() string { return s.root }

func (s *dirStore) Write(relPath string, data []byte) (Artifact, error) {
	clean := filepath.Clean(relPath)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return Artifact{}, fmt.Errorf("invalid artifact path %q", relPath)
	}

	full := filepath.Join(s.root, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return Artifact{}, fmt.Errorf("create artifact dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return Artifact{}, fmt.Errorf("write artifact: %w", err)
	}

	return describe(clean), nil
}

func (s *dirStore) List() ([]Artifact, error) {
	var out []Artifact
	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return relErr
		}
		out = append(out, describe(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	return out, nil
}

func describe(relPath string) Artifact {
	ext := strings.TrimPrefix(filepath.Ext(relPath), ".")
	if ext == "" {
		ext = "unknown"
	}
	return Artifact{
		Name: filepath.Base(relPath),
		Path: filepath.ToSlash(relPath),
		Type: ext,
	}
}
