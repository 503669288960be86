package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestDefaultSettingsPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path, err := DefaultSettingsPath()
	if err != nil {
		t.Fatalf("Failed to get settings path: %v", err)
	}

	if filepath.Base(path) != SettingsFileName {
		t.Errorf("Expected file name %s, got: %s", SettingsFileName, path)
	}
	if filepath.Base(filepath.Dir(path)) != AppDirName {
		t.Errorf("Expected parent directory %s, got: %s", AppDirName, path)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "settings.json")

	if err := WriteFileAtomic(target, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}
	if err := WriteFileAtomic(target, []byte(`{"a":2}`)); err != nil {
		t.Fatalf("WriteFileAtomic overwrite failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read back file: %v", err)
	}
	if string(data) != `{"a":2}` {
		t.Errorf("Expected overwritten content, got %s", data)
	}

	// No temp files should be left behind
	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the target file, got %d entries", len(entries))
	}
}

func TestWriteFileAtomic_ParentIsFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocker: %v", err)
	}

	err := WriteFileAtomic(filepath.Join(blocker, "settings.json"), []byte("{}"))
	if err == nil {
		t.Fatal("Expected error when parent path is a regular file")
	}
}

func TestURIScheme(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{"file:///tmp/a.png", SchemeFile},
		{"HTTPS://example.com/a.png", SchemeHTTPS},
		{"http://example.com/a.png", SchemeHTTP},
		{"/tmp/a.png", ""},
		{"", ""},
	}

	for _, test := range tests {
		if result := URIScheme(test.uri); result != test.expected {
			t.Errorf("URIScheme(%q) = %q, expected %q", test.uri, result, test.expected)
		}
	}
}

func TestFileURIToPath(t *testing.T) {
	if runtime.GOOS == OSWindows {
		t.Skip("POSIX paths only")
	}

	tests := []struct {
		uri       string
		expected  string
		expectErr bool
	}{
		{"file:///tmp/cover.jpg", "/tmp/cover.jpg", false},
		{"file://localhost/tmp/cover.jpg", "/tmp/cover.jpg", false},
		{"file:///tmp/My%20Album/cover.jpg", "/tmp/My Album/cover.jpg", false},
		{"file://server/share/cover.jpg", "", true},
		{"https://example.com/cover.jpg", "", true},
		{"file://", "", true},
	}

	for _, test := range tests {
		result, err := FileURIToPath(test.uri)
		if test.expectErr {
			if err == nil {
				t.Errorf("FileURIToPath(%q) expected error, got %q", test.uri, result)
			}
			continue
		}
		if err != nil {
			t.Errorf("FileURIToPath(%q) unexpected error: %v", test.uri, err)
			continue
		}
		if result != test.expected {
			t.Errorf("FileURIToPath(%q) = %q, expected %q", test.uri, result, test.expected)
		}
	}

	_, err := FileURIToPath("https://example.com/a.jpg")
	if err == nil || !strings.Contains(err.Error(), "not a file URI") {
		t.Errorf("Expected 'not a file URI' error, got %v", err)
	}
}
