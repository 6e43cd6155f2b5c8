package cmd

import (
	"bytes"
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	skip2 "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/qrdecode/internal/testutil"
)

// workdir moves the test into an empty directory so no stray qrscan.yaml is
// picked up, and returns it.
func workdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func writeSymbol(t *testing.T, dir, name, content string) string {
	t.Helper()
	s, err := testutil.Skip2(content, skip2.Medium)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(testutil.Image(s, 4, 0), path))
	return path
}

func writeBlank(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := imaging.New(120, 120, image.White)
	require.NoError(t, imaging.Save(img, path))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "today"})
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDecodeText(t *testing.T) {
	dir := workdir(t)
	code := writeSymbol(t, dir, "ticket.png", "hello, qrscan")
	blank := writeBlank(t, dir, "blank.png")

	out, _, err := run(t, "decode", code, blank)
	require.NoError(t, err)
	assert.Contains(t, out, code+": [version 1, level M] hello, qrscan")
	assert.Contains(t, out, blank+": no QR code found")
}

func TestDecodeJSON(t *testing.T) {
	dir := workdir(t)
	code := writeSymbol(t, dir, "ticket.png", "https://example.com/a")

	out, _, err := run(t, "decode", "--format", "json", "--parallelism", "2", code)
	require.NoError(t, err)

	var reports []fileReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, code, reports[0].File)
	require.Len(t, reports[0].Results, 1)
	res := reports[0].Results[0]
	assert.Equal(t, "https://example.com/a", res.Text)
	assert.Equal(t, []byte("https://example.com/a"), res.Bytes)
	assert.Equal(t, "M", res.ECLevel)
	assert.Equal(t, -1, res.ECI)
}

func TestDecodeYAML(t *testing.T) {
	dir := workdir(t)
	code := writeSymbol(t, dir, "ticket.bmp", "yaml please")

	out, _, err := run(t, "decode", "-f", "yaml", code)
	require.NoError(t, err)
	assert.Contains(t, out, "text: yaml please")
	assert.Contains(t, out, "ecLevel: M")
}

func TestDecodeFormatFromEnvironment(t *testing.T) {
	dir := workdir(t)
	code := writeSymbol(t, dir, "ticket.png", "env")
	t.Setenv("QRSCAN_FORMAT", "json")

	out, _, err := run(t, "decode", code)
	require.NoError(t, err)
	var reports []fileReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Results, 1)
	assert.Equal(t, "env", reports[0].Results[0].Text)
}

func TestDecodeFormatFromConfigFile(t *testing.T) {
	dir := workdir(t)
	code := writeSymbol(t, dir, "ticket.png", "file")
	cfg := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("format: yaml\n"), 0o644))

	out, _, err := run(t, "--config", cfg, "decode", code)
	require.NoError(t, err)
	assert.Contains(t, out, "text: file")

	out, stderr, err := run(t, "--config", cfg, "-v", "decode", "--format", "text", code)
	require.NoError(t, err)
	assert.Contains(t, out, "] file")
	assert.Contains(t, stderr, "loaded configuration")
}

func TestDecodeMissingFile(t *testing.T) {
	dir := workdir(t)
	code := writeSymbol(t, dir, "ticket.png", "still decoded")
	missing := filepath.Join(dir, "missing.png")

	out, stderr, err := run(t, "decode", missing, code)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files")
	assert.Contains(t, out, missing+": error:")
	assert.Contains(t, out, "still decoded")
	assert.Contains(t, stderr, "failed to load image")
}

func TestDecodeRejectsInvalidConfig(t *testing.T) {
	dir := workdir(t)
	code := writeSymbol(t, dir, "ticket.png", "x")

	_, _, err := run(t, "decode", "--format", "xml", code)
	assert.ErrorContains(t, err, "invalid output format")

	_, _, err = run(t, "decode", "--threshold", "300", code)
	assert.ErrorContains(t, err, "threshold")

	_, _, err = run(t, "decode", "--charset", "klingon", code)
	assert.ErrorContains(t, err, "unknown character set: klingon")
}

func TestDecodeRequiresFiles(t *testing.T) {
	workdir(t)
	_, _, err := run(t, "decode")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	workdir(t)
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "qrscan 1.2.3 (commit: abc123, built: today)\n", out)

	out, _, err = run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
}
