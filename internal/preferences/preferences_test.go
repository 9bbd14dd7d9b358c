package preferences_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ashureev/learnzverse/internal/domain"
	"github.com/ashureev/learnzverse/internal/preferences"
	"github.com/m-mizutani/gt"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	s := preferences.Load(filepath.Join(t.TempDir(), "prefs.yaml"), nil)
	gt.Equal(t, s.Get(), domain.DefaultPreferences())
}

func TestLoadDefaultsWhenCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	gt.NoError(t, os.WriteFile(path, []byte("class_level: [unterminated"), 0644))

	s := preferences.Load(path, nil)
	gt.Equal(t, s.Get(), domain.DefaultPreferences())
}

func TestUpdateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	s := preferences.Load(path, nil)

	gt.NoError(t, s.Update(func(p *domain.Preferences) {
		p.ClassLevel = "12"
		p.PreferredPersona = "chemistry"
		p.DarkMode = true
	}))

	reloaded := preferences.Load(path, nil).Get()
	gt.Equal(t, reloaded.ClassLevel, "12")
	gt.Equal(t, reloaded.PreferredPersona, "chemistry")
	gt.True(t, reloaded.DarkMode)
}

func TestLoadDropsUnknownPersonaAndBlankClass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	gt.NoError(t, os.WriteFile(path, []byte("class_level: \"\"\npreferred_persona: astronomy\ndark_mode: true\n"), 0644))

	got := preferences.Load(path, nil).Get()
	gt.Equal(t, got.ClassLevel, domain.DefaultClassLevel)
	gt.Equal(t, got.PreferredPersona, "")
	gt.True(t, got.DarkMode)
}
