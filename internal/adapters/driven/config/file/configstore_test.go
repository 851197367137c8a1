package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultDirName, "config.toml"), store.Path())
	assert.DirExists(t, filepath.Join(home, DefaultDirName))
}

func TestNewConfigStoreAt_CreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "docwright.toml")

	store, err := NewConfigStoreAt(path)

	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	assert.DirExists(t, filepath.Dir(path))
}

func TestConfigStore_LoadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[output]
dir = "/srv/docs"

[storage]
backend = "sqlite"

[styles.heading1]
font_name = "Georgia"
font_size = 28
bold = true

[styles.paragraph]
font_size = 10.5
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/docs", store.GetString("output.dir"))
	assert.Equal(t, "sqlite", store.GetString("storage.backend"))
	assert.Equal(t, "Georgia", store.GetString("styles.heading1.font_name"))
	assert.Equal(t, 28, store.GetInt("styles.heading1.font_size"))
	assert.InDelta(t, 28.0, store.GetFloat("styles.heading1.font_size"), 0.001)
	assert.InDelta(t, 10.5, store.GetFloat("styles.paragraph.font_size"), 0.001)
	assert.True(t, store.GetBool("styles.heading1.bold"))
}

func TestConfigStore_SetPersistsNested(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("styles.heading2.color", "FF0000"))
	require.NoError(t, store.Set("document.author", "Ada"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[styles.heading2]")
	assert.Contains(t, string(raw), "[document]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "FF0000", reloaded.GetString("styles.heading2.color"))
	assert.Equal(t, "Ada", reloaded.GetString("document.author"))
}

func TestConfigStore_TypedGettersMissingOrWrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("text", "abc"))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string missing", store.GetString("missing"), ""},
		{"int missing", store.GetInt("missing"), 0},
		{"int wrong type", store.GetInt("text"), 0},
		{"float missing", store.GetFloat("missing"), 0.0},
		{"float wrong type", store.GetFloat("text"), 0.0},
		{"bool missing", store.GetBool("missing"), false},
		{"bool wrong type", store.GetBool("text"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_Load_DiscardsInMemoryChanges(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("output.dir", "/a"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("[output]\ndir = \"/b\"\n"), 0600))
	require.NoError(t, store.Load())

	assert.Equal(t, "/b", store.GetString("output.dir"))
}

func TestFlattenAndNestMap(t *testing.T) {
	nested := map[string]any{
		"styles": map[string]any{
			"heading1": map[string]any{"bold": true},
		},
		"top": "x",
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{"styles.heading1.bold": true, "top": "x"}, flat)
	assert.Equal(t, nested, nestMap(flat))
}
