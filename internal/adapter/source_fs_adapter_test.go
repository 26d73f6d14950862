package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("visits nested sources", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "Program.cs"), "class Program {}\n")

		nestedDir := filepath.Join(root, "Models")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "Person.cs")
		writeTestFile(t, child, "class Person {}\n")

		visited := walkAll(t, adapter, root)

		if !containsPath(visited, child) {
			t.Fatalf("Walk() did not visit nested file")
		}
	})

	t.Run("skips build output", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		for _, dir := range []string{"bin", "obj"} {
			mustMkdir(t, filepath.Join(root, dir))
			writeTestFile(t, filepath.Join(root, dir, "Generated.cs"), "class Generated {}\n")
		}

		visited := walkAll(t, adapter, root)

		for _, forbidden := range []string{filepath.Join(root, "bin", "Generated.cs"), filepath.Join(root, "obj", "Generated.cs")} {
			if containsPath(visited, forbidden) {
				t.Fatalf("Walk() unexpectedly visited %s", forbidden)
			}
		}
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "Program.cs")
	content := "class Program {\n    static void Main() {}\n}\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}
}

func TestLocalSourceFSAdapter_HashContent(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	content := []byte("class Program {}\n")
	expected := fmt.Sprintf("%x", sha256.Sum256(content))

	if got := adapter.HashContent(content); got != expected {
		t.Fatalf("HashContent() = %s, want %s", got, expected)
	}

	if adapter.HashContent([]byte("class Other {}\n")) == expected {
		t.Fatalf("HashContent() returned the same hash for different content")
	}
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "Program.cs")
	writeTestFile(t, path, "class Program {}\n")

	info, err := adapter.FileInfo(m.Path(path))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if info.IsDir() {
		t.Fatalf("FileInfo() reported file as directory")
	}
}

func TestLocalSourceFSAdapter_FindProjectRoot(t *testing.T) {
	t.Run("prefers solution over project", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "App.sln"), "")

		projectDir := filepath.Join(root, "App")
		mustMkdir(t, projectDir)
		writeTestFile(t, filepath.Join(projectDir, "App.csproj"), "<Project />\n")

		subDir := filepath.Join(projectDir, "Models")
		mustMkdir(t, subDir)

		got, err := adapter.FindProjectRoot(m.Path(filepath.Join(subDir, "Person.cs")))
		if err != nil {
			t.Fatalf("FindProjectRoot() error = %v", err)
		}

		if got != m.Path(root) {
			t.Fatalf("FindProjectRoot() = %s, want %s", got, root)
		}
	})

	t.Run("falls back to nearest project", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "Lib.csproj"), "<Project />\n")

		got, err := adapter.FindProjectRoot(m.Path(root))
		if err != nil {
			t.Fatalf("FindProjectRoot() error = %v", err)
		}

		if got != m.Path(root) {
			t.Fatalf("FindProjectRoot() = %s, want %s", got, root)
		}
	})

	t.Run("reports missing root", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()

		_, err := adapter.FindProjectRoot(m.Path(root))
		if err != nil && !errors.Is(err, ErrNoProjectRoot) {
			t.Fatalf("FindProjectRoot() error = %v, want ErrNoProjectRoot", err)
		}
	})
}

func TestLocalSourceFSAdapter_WriteFileCreatesParents(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	target := filepath.Join(root, "out", "Models", "Person.kt")

	if err := adapter.WriteFile(m.Path(target), []byte("class Person\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}

	if string(got) != "class Person\n" {
		t.Fatalf("WriteFile() wrote %q", string(got))
	}
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	base := m.Path("/tmp/project")
	target := m.Path("/tmp/project/sub/dir/File.cs")

	rel, err := adapter.RelPath(base, target)
	if err != nil {
		t.Fatalf("RelPath() error = %v", err)
	}

	if string(rel) != filepath.Join("sub", "dir", "File.cs") {
		t.Fatalf("RelPath() = %s, want %s", rel, filepath.Join("sub", "dir", "File.cs"))
	}

	joined := adapter.JoinPath("/tmp", "project", "sub", "File.kt")
	if string(joined) != filepath.Join("/tmp", "project", "sub", "File.kt") {
		t.Fatalf("JoinPath() = %s, want %s", joined, filepath.Join("/tmp", "project", "sub", "File.kt"))
	}
}

func walkAll(t *testing.T, adapter *LocalSourceFSAdapter, root string) []string {
	t.Helper()

	var visited []string

	err := adapter.Walk(m.Path(root), func(path string, _ os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		visited = append(visited, path)

		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	return visited
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
