package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/scribe/internal/format"
)

func TestSaveFormat_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".scribe", "config.yaml")

	f := format.Default()
	f.Bold = true
	f.FontSize = 20
	require.NoError(t, SaveFormat(configPath, f))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "format:")
	assert.Contains(t, string(data), "bold: true")
	assert.Contains(t, string(data), "font_size: 20")
	assert.Contains(t, string(data), "color: '#000000'")
}

func TestSaveFormat_FontSizeIsPlainAndLoads(t *testing.T) {
	for _, size := range []float64{20, 20.5} {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		f := format.Default()
		f.FontSize = size
		require.NoError(t, SaveFormat(configPath, f))

		data, err := os.ReadFile(configPath)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "!!")

		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, size, cfg.Format.FontSize)
	}
}

func TestSaveFormat_PreservesOtherConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	initial := `# top comment
editor:
  history_limit: 10
# the surface
background: "#eeeeee"
format:
  font_family: Courier
  bold: false
ui:
  show_toolbar: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o600))

	f := format.Default()
	f.Italic = true
	f.Align = format.AlignRight
	require.NoError(t, SaveFormat(configPath, f))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# top comment")
	assert.Contains(t, content, "# the surface")
	assert.Contains(t, content, "history_limit: 10")
	assert.Contains(t, content, "show_toolbar: false")
	assert.NotContains(t, content, "Courier")

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var got format.State
	require.NoError(t, v.UnmarshalKey("format", &got))
	assert.Equal(t, f, got)
	assert.Equal(t, "#eeeeee", v.GetString("background"))
}

func TestSaveFormat_AppendsMissingSection(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("background: \"#000000\"\n"), 0o600))

	require.NoError(t, SaveFormat(configPath, format.Default()))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, format.Default(), cfg.Format)
	assert.Equal(t, "#000000", cfg.Background)
}

func TestSaveFormat_RejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	f := format.Default()
	f.FontSize = -1
	err := SaveFormat(configPath, f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	_, statErr := os.Stat(configPath)
	assert.True(t, os.IsNotExist(statErr), "nothing written")
}

func TestSaveFormat_RejectsNonMappingFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("- a\n- b\n"), 0o600))

	err := SaveFormat(configPath, format.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top level must be a mapping")
}

func TestSaveFormat_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, SaveFormat(configPath, format.Default()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.yaml", entries[0].Name())
}

func TestSaveBackground(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	require.NoError(t, SaveBackground(configPath, "ABC"))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "#aabbcc", cfg.Background)
	assert.Equal(t, Defaults().Export, cfg.Export)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Surface color (not part of undo history)")
}

func TestSaveBackground_RejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	err := SaveBackground(configPath, "#12345")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid background")
}
