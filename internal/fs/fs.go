package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathResolver finds absolute paths for version files.
type PathResolver struct {
	lookupDirs []string
}

// NewPathResolver creates a new PathResolver. Without lookup directories the
// current working directory is used.
func NewPathResolver(lookupDirs []string) (*PathResolver, error) {
	if len(lookupDirs) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not get current working directory: %w", err)
		}
		return &PathResolver{lookupDirs: []string{wd}}, nil
	}

	absDirs := make([]string, 0, len(lookupDirs))
	for _, dir := range lookupDirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid lookup directory '%s': %w", dir, err)
		}
		absDirs = append(absDirs, abs)
	}
	return &PathResolver{lookupDirs: absDirs}, nil
}

// Resolve finds an absolute path, assuming a new file in the first lookup
// directory if it doesn't exist.
func (r *PathResolver) Resolve(relativePath string) string {
	if existing := r.ResolveExisting(relativePath); existing != "" {
		return existing
	}
	if filepath.IsAbs(relativePath) {
		return relativePath
	}
	return filepath.Join(r.lookupDirs[0], relativePath)
}

// ResolveExisting finds an absolute path only if the file exists.
func (r *PathResolver) ResolveExisting(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		if _, err := os.Stat(relativePath); err == nil {
			return relativePath
		}
		return ""
	}
	for _, dir := range r.lookupDirs {
		absPath := filepath.Join(dir, relativePath)
		if _, err := os.Stat(absPath); err == nil {
			return absPath
		}
	}
	return ""
}

// ReadFile reads a version file located through the resolver.
func (r *PathResolver) ReadFile(relativePath string) (string, error) {
	path := r.ResolveExisting(relativePath)
	if path == "" {
		return "", fmt.Errorf("file not found in lookup directories: %s", relativePath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile writes content to path, creating missing parent directories.
func WriteFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory '%s': %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
