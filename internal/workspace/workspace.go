// Package workspace stores generated project files under a configurable
// root directory and lists them back with short previews.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafePath rejects writes that would escape the workspace root.
var ErrUnsafePath = errors.New("path escapes workspace root")

const previewLimit = 500

// Entry describes one stored item for the project listing API.
type Entry struct {
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Type    string   `json:"type"`
	Preview string   `json:"preview,omitempty"`
	Files   []string `json:"files,omitempty"`
}

// Store writes and lists generated files rooted at a single directory.
type Store struct {
	root string
}

// NewStore ensures the root directory exists and returns a store over it.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the workspace root directory.
func (s *Store) Root() string { return s.root }

// WriteFile stores content at a path relative to the root, creating parent
// directories as needed.
func (s *Store) WriteFile(relPath, content string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", relPath, err)
	}
	return nil
}

// List returns top-level workspace entries. Files carry a content preview,
// directories the names of their immediate children.
func (s *Store) List() ([]Entry, error) {
	items, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read workspace root: %w", err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		full := filepath.Join(s.root, item.Name())
		if item.IsDir() {
			entries = append(entries, Entry{
				Name:  item.Name(),
				Path:  full,
				Type:  "directory",
				Files: childNames(full),
			})
			continue
		}
		entries = append(entries, Entry{
			Name:    item.Name(),
			Path:    full,
			Type:    "file",
			Preview: preview(full),
		})
	}
	return entries, nil
}

func childNames(dir string) []string {
	children, err := os.ReadDir(dir)
	if err != nil {
		return []string{}
	}
	names := make([]string, 0, len(children))
	for _, child := range children {
		names = append(names, child.Name())
	}
	return names
}

func preview(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "Could not read file content"
	}
	content := string(data)
	if len(content) > previewLimit {
		return content[:previewLimit] + "..."
	}
	return content
}

func (s *Store) resolve(relPath string) (string, error) {
	if relPath == "" {
		return "", ErrUnsafePath
	}
	cleaned := filepath.Clean(relPath)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", ErrUnsafePath
	}
	return filepath.Join(s.root, cleaned), nil
}
