package quill

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestOpen_Script(t *testing.T) {
	path := writeTempFile(t, "note.quill", `text "from script"`+"\nnewline\n")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	if got := doc.Render(); got != "from script\n" {
		t.Errorf("Render() = %q, want %q", got, "from script\n")
	}
}

func TestOpen_HTML(t *testing.T) {
	path := writeTempFile(t, "page.html", `<html><body><p>from html</p></body></html>`)

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	if got := doc.Render(); got != "from html" {
		t.Errorf("Render() = %q, want %q", got, "from html")
	}
}

func TestOpen_MagicFallback(t *testing.T) {
	// Unrecognized extension, recognizable content.
	path := writeTempFile(t, "note.txt", `image "logo.png"`)

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	if got := doc.Render(); got != "[Image: logo.png]" {
		t.Errorf("Render() = %q, want %q", got, "[Image: logo.png]")
	}
}

func TestOpen_UnrecognizedContent(t *testing.T) {
	path := writeTempFile(t, "note.txt", "just some prose")

	if _, err := Open(path); err == nil {
		t.Error("Open() expected error for unrecognized content")
	}
}

func TestOpen_NotFound(t *testing.T) {
	if _, err := Open("/nonexistent/note.quill"); err == nil {
		t.Error("Open() expected error for nonexistent file")
	}
}

func TestOpenReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"script", `text "a"` + "\ntab\n" + `text "b"`, "a\tb"},
		{"html", `<p>one</p><p>two</p>`, "one\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := OpenReader(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("OpenReader() returned error: %v", err)
			}
			if got := doc.Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenReader_Unrecognized(t *testing.T) {
	if _, err := OpenReader(strings.NewReader("plain prose")); err == nil {
		t.Error("OpenReader() expected error for unrecognized content")
	}
}

func TestMust(t *testing.T) {
	if got := Must("value", nil); got != "value" {
		t.Errorf("Must() = %q, want %q", got, "value")
	}
}

func TestMust_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must() with error should panic")
		}
	}()
	Must("", errors.New("boom"))
}
