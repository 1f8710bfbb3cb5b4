package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wbrown/typist"
	"github.com/wbrown/typist/imageutil"
)

func runCmd(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	t.Cleanup(func() { typist.SetLogger(nil) })

	verbose = false
	configFile = ""

	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	stdout = outBuf.String()
	stderr = errBuf.String()
	if err != nil {
		exitCode = 1
		stderr += err.Error()
	}

	resetFlags(rootCmd)
	return
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		f.Value.Set(f.DefValue)
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// writeTestImage writes a 200x100 checkerboard PNG and returns its path.
func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.png")
	if err := imageutil.SavePNG(imageutil.CreateCheckerboardImage(200, 100, 20), path); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeTestYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "typist.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	stdout, _, code := runCmd(t, "version")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout, "typist") {
		t.Fatalf("expected 'typist', got: %s", stdout)
	}
}

func TestConvertText(t *testing.T) {
	img := writeTestImage(t)
	stdout, stderr, code := runCmd(t, "convert", img, "-n", "20")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d:\n%s", len(lines), stdout)
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 20 {
			t.Errorf("row %d has %d characters, want 20", i, n)
		}
	}
	if !strings.Contains(stderr, "computation finished") {
		t.Errorf("expected timing log on stderr, got: %s", stderr)
	}
}

func TestConvertJSONFile(t *testing.T) {
	img := writeTestImage(t)
	out := filepath.Join(t.TempDir(), "art.json")
	_, stderr, code := runCmd(t, "convert", img, "-n", "10", "-f", "json", "-o", out)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Columns int      `json:"columns"`
		Rows    int      `json:"rows"`
		Art     []string `json:"art"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if doc.Columns != 10 || doc.Rows != 5 || len(doc.Art) != 5 {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestConvertConfigFile(t *testing.T) {
	img := writeTestImage(t)
	cfg := writeTestYAML(t, "columns: 8\nformat: yaml\n")
	stdout, stderr, code := runCmd(t, "--config", cfg, "convert", img)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "columns: 8") {
		t.Errorf("expected yaml with 8 columns, got: %s", stdout)
	}
}

func TestConvertFlagOverridesConfig(t *testing.T) {
	img := writeTestImage(t)
	cfg := writeTestYAML(t, "columns: 8\nformat: yaml\n")
	stdout, stderr, code := runCmd(t, "--config", cfg, "convert", img, "-n", "4")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "columns: 4") {
		t.Errorf("expected flag to override config, got: %s", stdout)
	}
}

func TestConvertInterpolation(t *testing.T) {
	img := writeTestImage(t)
	for _, interp := range []string{"area", "linear", "nearest"} {
		t.Run(interp, func(t *testing.T) {
			stdout, stderr, code := runCmd(t, "convert", img, "-n", "10", "--interpolation", interp)
			if code != 0 {
				t.Fatalf("exit %d: %s", code, stderr)
			}
			lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
			if len(lines) != 5 {
				t.Fatalf("expected 5 rows, got %d:\n%s", len(lines), stdout)
			}
		})
	}
}

func TestConvertInvalid(t *testing.T) {
	img := writeTestImage(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no image", []string{"convert"}, "arg"},
		{"missing image", []string{"convert", filepath.Join(t.TempDir(), "none.png")}, "failed to open image"},
		{"bad columns", []string{"convert", img, "-n", "0"}, "columns"},
		{"bad format", []string{"convert", img, "-f", "pdf"}, "format"},
		{"bad interpolation", []string{"convert", img, "--interpolation", "bicubic"}, "interpolation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runCmd(t, tt.args...)
			if code == 0 {
				t.Fatal("expected failure")
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("expected %q in error, got: %s", tt.want, stderr)
			}
		})
	}
}

func TestCatalogBuildInspectConvert(t *testing.T) {
	catalog := filepath.Join(t.TempDir(), "ascii.msgpack")

	stdout, stderr, code := runCmd(t, "catalog", "build", "-o", catalog)
	if code != 0 {
		t.Fatalf("build exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Wrote 95 glyphs (msgpack)") {
		t.Errorf("unexpected build output: %s", stdout)
	}

	stdout, stderr, code = runCmd(t, "catalog", "inspect", catalog)
	if code != 0 {
		t.Fatalf("inspect exit %d: %s", code, stderr)
	}
	for _, want := range []string{"entries: 95", "feature_len: 169", "cell_size: 13"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in summary, got: %s", want, stdout)
		}
	}

	img := writeTestImage(t)
	stdout, stderr, code = runCmd(t, "convert", img, "-n", "20", "--catalog", catalog)
	if code != 0 {
		t.Fatalf("convert exit %d: %s", code, stderr)
	}
	if lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n"); len(lines) != 10 {
		t.Errorf("expected 10 rows, got %d", len(lines))
	}
}

func TestCatalogBuildRequiresOutput(t *testing.T) {
	_, stderr, code := runCmd(t, "catalog", "build")
	if code == 0 {
		t.Fatal("expected failure without -o")
	}
	if !strings.Contains(stderr, "-o") {
		t.Errorf("unexpected error: %s", stderr)
	}
}
