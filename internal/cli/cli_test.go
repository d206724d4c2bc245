package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

const demoRendering = "Hello, world!\n" +
	"This is a real-world document editor example.\n" +
	"\tIndented text after a tab space.\n" +
	"[Image: picture.jpg]"

// isolateConfig keeps commands from picking up a real user config.
func isolateConfig(t *testing.T) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, ".config"))
}

// runCLI executes a fresh root command and returns its combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLIInput(t, "", args...)
}

func runCLIInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeConfigTOML(t *testing.T, dir, outputPath, backend string) string {
	t.Helper()
	cfg := filepath.Join(dir, "config.toml")
	content := `[output]
path = ` + strconv.Quote(outputPath) + `
[storage]
backend = ` + strconv.Quote(backend) + `
`
	writeFile(t, cfg, content)
	return cfg
}

func TestComposeScriptFile(t *testing.T) {
	isolateConfig(t)
	src := filepath.Join(t.TempDir(), "doc.quill")
	writeFile(t, src, "text \"Hello, world!\"\nnewline\nimage \"picture.jpg\"\n")

	out, err := runCLI(t, "compose", src)
	if err != nil {
		t.Fatalf("compose: %v\n%s", err, out)
	}
	want := "Hello, world!\n[Image: picture.jpg]"
	if out != want {
		t.Errorf("compose output = %q, want %q", out, want)
	}
}

func TestComposeHTMLFile(t *testing.T) {
	isolateConfig(t)
	src := filepath.Join(t.TempDir(), "doc.html")
	writeFile(t, src, "<html><body><p>one</p><p>two</p></body></html>")

	out, err := runCLI(t, "compose", src)
	if err != nil {
		t.Fatalf("compose: %v\n%s", err, out)
	}
	want := "one\ntwo"
	if out != want {
		t.Errorf("compose output = %q, want %q", out, want)
	}
}

func TestComposeStdin(t *testing.T) {
	isolateConfig(t)

	out, err := runCLIInput(t, "text \"from stdin\"\n", "compose")
	if err != nil {
		t.Fatalf("compose: %v\n%s", err, out)
	}
	if out != "from stdin" {
		t.Errorf("compose output = %q, want %q", out, "from stdin")
	}
}

func TestComposeExplicitFormat(t *testing.T) {
	isolateConfig(t)
	// A .txt extension defeats extension detection; --format must win.
	src := filepath.Join(t.TempDir(), "doc.txt")
	writeFile(t, src, "text \"explicit\"\n")

	out, err := runCLI(t, "compose", "--format", "script", src)
	if err != nil {
		t.Fatalf("compose: %v\n%s", err, out)
	}
	if out != "explicit" {
		t.Errorf("compose output = %q, want %q", out, "explicit")
	}

	if _, err := runCLI(t, "compose", "--format", "nonsense", src); err == nil {
		t.Errorf("expected error for unknown input format")
	}
}

func TestComposeExportMarkdown(t *testing.T) {
	isolateConfig(t)
	src := filepath.Join(t.TempDir(), "doc.quill")
	writeFile(t, src, "text \"Hello\"\nnewline\nimage \"pics/cat.jpg\"\n")

	out, err := runCLI(t, "compose", "--export", "markdown", src)
	if err != nil {
		t.Fatalf("compose: %v\n%s", err, out)
	}
	want := "Hello\n![cat.jpg](pics/cat.jpg)"
	if out != want {
		t.Errorf("compose output = %q, want %q", out, want)
	}
}

func TestComposeExportFromConfig(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()
	src := filepath.Join(tmp, "doc.quill")
	writeFile(t, src, "image \"a.png\"\n")
	t.Setenv("QUILL_OUTPUT_FORMAT", "json")

	out, err := runCLI(t, "compose", src)
	if err != nil {
		t.Fatalf("compose: %v\n%s", err, out)
	}
	want := `[{"type":"image","path":"a.png"}]` + "\n"
	if out != want {
		t.Errorf("compose output = %q, want %q", out, want)
	}
}

func TestComposeUnknownExport(t *testing.T) {
	isolateConfig(t)
	src := filepath.Join(t.TempDir(), "doc.quill")
	writeFile(t, src, "text \"x\"\n")

	_, err := runCLI(t, "compose", "--export", "yaml", src)
	if err == nil {
		t.Fatalf("expected error for unknown export format")
	}
	if !strings.Contains(err.Error(), "unknown export format") {
		t.Errorf("error = %v, want mention of unknown export format", err)
	}
}

func TestComposeSaveOut(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()
	src := filepath.Join(tmp, "doc.quill")
	writeFile(t, src, "text \"Hello\"\nnewline\ntext \"bye\"\n")
	outPath := filepath.Join(tmp, "saved.txt")

	out, err := runCLI(t, "compose", "--out", outPath, src)
	if err != nil {
		t.Fatalf("compose: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Document saved to "+outPath) {
		t.Errorf("missing save report in output: %q", out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(data) != "Hello\nbye" {
		t.Errorf("saved file = %q, want %q", string(data), "Hello\nbye")
	}
}

func TestComposeSaveConfiguredPath(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()
	src := filepath.Join(tmp, "doc.quill")
	writeFile(t, src, "text \"configured\"\n")
	outPath := filepath.Join(tmp, "configured.txt")
	cfgPath := writeConfigTOML(t, tmp, outPath, "file")

	out, err := runCLI(t, "--config", cfgPath, "compose", "--save", src)
	if err != nil {
		t.Fatalf("compose: %v\n%s", err, out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(data) != "configured" {
		t.Errorf("saved file = %q, want %q", string(data), "configured")
	}
}

func TestComposePreview(t *testing.T) {
	isolateConfig(t)
	src := filepath.Join(t.TempDir(), "doc.quill")
	writeFile(t, src, "text \"Preview me\"\n")

	out, err := runCLI(t, "compose", "--preview", src)
	if err != nil {
		t.Fatalf("compose: %v\n%s", err, out)
	}
	if out == "" {
		t.Errorf("expected preview output")
	}

	// Preview renders the markdown export; other formats conflict.
	if _, err := runCLI(t, "compose", "--preview", "--export", "json", src); err == nil {
		t.Errorf("expected error for --preview with non-markdown export")
	}
}

func TestDemo(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()
	outPath := filepath.Join(tmp, "demo.txt")
	cfgPath := writeConfigTOML(t, tmp, outPath, "file")

	out, err := runCLI(t, "--config", cfgPath, "demo")
	if err != nil {
		t.Fatalf("demo: %v\n%s", err, out)
	}

	want := demoRendering + "\nDocument saved to " + outPath + "\n"
	if out != want {
		t.Errorf("demo output = %q, want %q", out, want)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(data) != demoRendering {
		t.Errorf("saved file = %q, want %q", string(data), demoRendering)
	}
}

func TestDemoMemoryBackend(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()
	cfgPath := writeConfigTOML(t, tmp, filepath.Join(tmp, "unused.txt"), "memory")

	out, err := runCLI(t, "--config", cfgPath, "demo")
	if err != nil {
		t.Fatalf("demo: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Document saved to memory") {
		t.Errorf("missing save report in output: %q", out)
	}
	if _, err := os.Stat(filepath.Join(tmp, "unused.txt")); err == nil {
		t.Errorf("memory backend must not write files")
	}
}

// A 1x1 RGBA PNG, the smallest useful probe target.
var tinyPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
	0x89, 0x00, 0x00, 0x00, 0x0A, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
	0x42, 0x60, 0x82,
}

func TestStats(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()

	imgPath := filepath.Join(tmp, "dot.png")
	if err := os.WriteFile(imgPath, tinyPNG, 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}

	src := filepath.Join(tmp, "doc.quill")
	writeFile(t, src, "text \"Hello\"\nnewline\nimage "+strconv.Quote(imgPath)+"\nimage \"missing.jpg\"\n")

	out, err := runCLI(t, "stats", src)
	if err != nil {
		t.Fatalf("stats: %v\n%s", err, out)
	}

	for _, pattern := range []string{
		`Elements\s+4`,
		`Text\s+1`,
		`Image\s+2`,
		`LineBreak\s+1`,
		`Tab\s+0`,
		`Text runes\s+5`,
		`Lines\s+2`,
		`dot\.png\s+1x1 png`,
		`missing\.jpg\s+\(not on disk\)`,
	} {
		if !regexp.MustCompile(pattern).MatchString(out) {
			t.Errorf("stats output missing %q:\n%s", pattern, out)
		}
	}
}

func TestConfigGenerate(t *testing.T) {
	isolateConfig(t)
	out, err := runCLI(t, "config", "generate")
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Wrote ") {
		t.Errorf("missing write report: %q", out)
	}

	path := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(out), "Wrote "))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading generated config: %v", err)
	}
	if !strings.Contains(string(data), `path = "document.txt"`) {
		t.Errorf("generated config missing defaults:\n%s", string(data))
	}

	// A second run must refuse to clobber the file.
	if _, err := runCLI(t, "config", "generate"); err == nil {
		t.Errorf("expected error for existing config")
	}
}

func TestConfigShow(t *testing.T) {
	isolateConfig(t)
	out, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("show: %v\n%s", err, out)
	}
	for _, want := range []string{"output.path", "document.txt", "storage.backend", "preview.width"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	writeFile(t, cfgPath, "[storage]\nbackend = \"s3\"\n")

	_, err := runCLI(t, "--config", cfgPath, "demo")
	if err == nil {
		t.Fatalf("expected error for invalid config")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("error = %v, want invalid configuration", err)
	}
}
