package store

import (
	"testing"

	"github.com/mmcdole/tunedl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ domain.Store = (*PreferenceStore)(nil)

func TestMemoryOnlyStore(t *testing.T) {
	s, err := NewPreferenceStore("")
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.GetPreference(domain.ThemeKey)
	assert.False(t, ok)

	require.NoError(t, s.SavePreference(domain.ThemeKey, "dark"))
	v, ok := s.GetPreference(domain.ThemeKey)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestPreferenceSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewPreferenceStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SavePreference(domain.ThemeKey, "dark"))
	require.NoError(t, s.SaveHistory([]string{"https://a.example/x", "https://b.example/y"}))
	require.NoError(t, s.Close())

	reopened, err := NewPreferenceStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok := reopened.GetPreference(domain.ThemeKey)
	require.True(t, ok)
	assert.Equal(t, "dark", v)

	urls, ok := reopened.GetHistory()
	require.True(t, ok)
	assert.Equal(t, []string{"https://a.example/x", "https://b.example/y"}, urls)
}

func TestOverwritePreference(t *testing.T) {
	s, err := NewPreferenceStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SavePreference(domain.ThemeKey, "dark"))
	require.NoError(t, s.SavePreference(domain.ThemeKey, "light"))

	v, _ := s.GetPreference(domain.ThemeKey)
	assert.Equal(t, "light", v)
}
