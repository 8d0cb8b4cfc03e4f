package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frBundle = `uncountable = ["croissant"]

[[irregular]]
singular = "cheval"
plural = "chevaux"
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func rulesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fr.toml"), []byte(frBundle), 0644))
	return dir
}

func TestRootCmd(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "pluralkit", root.Use)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"bundle", "inflect", "plural", "singular"})
}

func TestInflect(t *testing.T) {
	tests := []struct {
		args     []string
		expected string
	}{
		{[]string{"inflect", "cat"}, "cats\n"},
		{[]string{"inflect", "cat", "--count", "3", "--inclusive"}, "3 cats\n"},
		{[]string{"inflect", "cat", "-n", "1", "-i"}, "1 cat\n"},
		{[]string{"inflect", "person", "--count=0"}, "people\n"},
		{[]string{"inflect", "sheep", "-n", "5", "-i"}, "5 sheep\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestInflectRequiresWord(t *testing.T) {
	_, err := execute(t, "inflect")
	assert.Error(t, err)
}

func TestPluralAndSingular(t *testing.T) {
	out, err := execute(t, "plural", "person", "ox", "Box")
	require.NoError(t, err)
	assert.Equal(t, "people\noxen\nBoxes\n", out)

	out, err = execute(t, "singular", "people", "oxen", "wolves")
	require.NoError(t, err)
	assert.Equal(t, "person\nox\nwolf\n", out)
}

func TestInflectWithLocaleBundle(t *testing.T) {
	dir := rulesDir(t)

	out, err := execute(t, "plural", "croissant", "cheval", "--rules", dir, "--locale", "fr")
	require.NoError(t, err)
	assert.Equal(t, "croissant\nchevaux\n", out)

	out, err = execute(t, "plural", "croissant", "--rules", dir, "--locale", "de")
	require.NoError(t, err)
	assert.Equal(t, "croissants\n", out, "unknown locale uses the built-in rules")

	_, err = execute(t, "plural", "croissant", "--rules", filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestEnvironmentVariables(t *testing.T) {
	dir := rulesDir(t)
	t.Setenv("PLURALKIT_RULES", dir)
	t.Setenv("PLURALKIT_LOCALE", "fr")

	out, err := execute(t, "plural", "croissant")
	require.NoError(t, err)
	assert.Equal(t, "croissant\n", out)

	out, err = execute(t, "plural", "croissant", "--locale", "en")
	require.NoError(t, err)
	assert.Equal(t, "croissants\n", out, "flags take precedence over the environment")
}

func TestConfigFile(t *testing.T) {
	dir := rulesDir(t)
	cfg := filepath.Join(t.TempDir(), "pluralkit.toml")
	content := "rules = " + quote(dir) + "\nlocale = \"fr\"\n"
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0644))

	out, err := execute(t, "plural", "cheval", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "chevaux\n", out)

	_, err = execute(t, "plural", "cheval", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func quote(s string) string {
	return "'" + s + "'"
}

func TestTelemetry(t *testing.T) {
	out, err := execute(t, "inflect", "mouse", "--telemetry")
	require.NoError(t, err)
	assert.Equal(t, "mice\n", out)
}

func TestBundleLint(t *testing.T) {
	dir := rulesDir(t)

	out, err := execute(t, "bundle", "lint", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ fr.toml (2 entries)")
	assert.Contains(t, out, "All bundles passed linting")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "de.toml"), []byte("[[plural]]\npattern = \"(\"\nreplacement = \"x\"\n"), 0644))
	out, err = execute(t, "bundle", "lint", "--dir", dir)
	assert.Error(t, err)
	assert.Contains(t, out, "❌ de.toml")

	_, err = execute(t, "bundle", "lint", "--dir", t.TempDir())
	assert.Error(t, err, "an empty directory has nothing to lint")
}

func TestBundleFetch(t *testing.T) {
	from := rulesDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(from, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(from, "nested", "es.toml"), []byte(`uncountable = ["dinero"]`), 0644))
	to := filepath.Join(t.TempDir(), "rules")

	out, err := execute(t, "bundle", "fetch", "--from", from, "--dir", to)
	require.NoError(t, err)
	assert.Contains(t, out, "Fetched 2 bundles")

	data, err := os.ReadFile(filepath.Join(to, "fr.toml"))
	require.NoError(t, err)
	assert.Equal(t, frBundle, string(data))
	assert.FileExists(t, filepath.Join(to, "nested", "es.toml"))

	_, err = execute(t, "bundle", "fetch", "--dir", to)
	assert.Error(t, err, "--from is required")
}

func TestFetchBundlesValidatesFirst(t *testing.T) {
	from := rulesDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(from, "de.toml"), []byte(`uncountable = [`), 0644))
	to := t.TempDir()

	var out bytes.Buffer
	err := FetchBundles(context.Background(), &out, from, to)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(to, "fr.toml"))
}
