package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// FileTree represents a directory structure for testing.
// Values are file contents (string), nested trees (FileTree) or
// Executable scripts.
type FileTree map[string]interface{}

// Executable is file content written with mode 0755
type Executable string

// CreateFileTree writes tree under basePath
func CreateFileTree(t *testing.T, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			CreateFile(t, basePath, name, v)
		case Executable:
			CreateFile(t, basePath, name, string(v))
			if err := os.Chmod(fullPath, 0755); err != nil {
				t.Fatalf("Failed to chmod %s: %v", fullPath, err)
			}
		case FileTree:
			CreateDir(t, basePath, name)
			CreateFileTree(t, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// CreateFile creates a file with the given content, making parent directories
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// CreateDir creates a directory in the specified parent directory
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of a file, failing the test if unreadable
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// ListTree returns every path below root, slash separated and sorted.
// Directories carry a trailing slash. A missing root yields nil.
func ListTree(t *testing.T, root string) []string {
	t.Helper()

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil
	}

	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			rel += "/"
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to list %s: %v", root, err)
	}
	sort.Strings(out)
	return out
}
