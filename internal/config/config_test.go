package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.TMDB.BaseURL, cfg.TMDB.BaseURL)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Equal(t, 30*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "ko", cfg.Browse.DefaultLanguage)
	assert.Len(t, cfg.Browse.Languages, 10)
	assert.Equal(t, "now-playing", cfg.UI.DefaultPage)
	assert.False(t, cfg.IsConfigured())
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
tmdb:
  token: abc123
  language: fr-fr
  timeout: 5s
browse:
  languages: [ja, pt-BR]
  default_language: de
  search_order: rating
  search_type: tv
ui:
  show_inspector: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.IsConfigured())
	assert.Equal(t, "fr-FR", cfg.TMDB.Language)
	assert.Equal(t, 5*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, []string{"ja", "pt"}, cfg.Browse.Languages)
	assert.Equal(t, "ja", cfg.Browse.DefaultLanguage, "default outside the list falls back to the first entry")
	assert.Equal(t, "rating", cfg.Browse.SearchOrder)
	assert.Equal(t, "tv", cfg.Browse.SearchType)
	assert.False(t, cfg.UI.ShowInspector)
	assert.Equal(t, DefaultConfig().TMDB.ImageSize, cfg.TMDB.ImageSize)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tmdb:\n  token: from-file\n"), 0600))
	t.Setenv("MARQUEE_TMDB_TOKEN", "from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.Token)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"order":    "browse:\n  search_order: alphabetical\n",
		"type":     "browse:\n  search_type: episode\n",
		"language": "tmdb:\n  language: \"not a tag!\"\n",
	}
	for name, yaml := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestSaveAndClearCredentials(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.TMDB.Token = "secret"
	cfg.Browse.SearchOrder = "date"
	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "secret", loaded.TMDB.Token)
	assert.Equal(t, "date", loaded.Browse.SearchOrder)

	require.NoError(t, ClearCredentials(dir))
	cleared, err := Load(dir)
	require.NoError(t, err)
	assert.False(t, cleared.IsConfigured())
	assert.Equal(t, "date", cleared.Browse.SearchOrder)
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "French (français)", LanguageName("fr"))
	assert.Contains(t, LanguageName("ko"), "Korean")
	assert.Equal(t, "English", LanguageName("en"))
	assert.Equal(t, "??", LanguageName("??"))
}

func TestValidateFallsBackToFirstLanguage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Browse.Languages = []string{"ja", "ko"}
	cfg.Browse.DefaultLanguage = "fr"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "ja", cfg.Browse.DefaultLanguage)

	cfg.Browse.DefaultLanguage = "ko-KR"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "ko", cfg.Browse.DefaultLanguage)
}
