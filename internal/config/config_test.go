package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatwidget/internal/prefs"
)

func TestResolve_DefaultsOnly(t *testing.T) {
	cfg := Resolve(Defaults(), Overrides{}, prefs.NewMemoryStore())

	assert.Equal(t, ThemeLight, cfg.Theme)
	assert.Equal(t, PositionRight, cfg.Position)
	assert.Equal(t, 450, cfg.Width)
	assert.Equal(t, 550, cfg.Height)
	assert.Equal(t, "", cfg.APIBase)
	assert.NotEmpty(t, cfg.WelcomeMessage)
	assert.NotEmpty(t, cfg.ContainerID)
}

func TestResolve_OverridesBeatDefaults(t *testing.T) {
	cfg := Resolve(Defaults(), Overrides{
		APIBase:  "https://chat.example.com",
		Theme:    ThemeDark,
		Position: PositionLeft,
		Title:    "Support",
		Width:    600,
		Height:   700,
	}, prefs.NewMemoryStore())

	assert.Equal(t, "https://chat.example.com", cfg.APIBase)
	assert.Equal(t, ThemeDark, cfg.Theme)
	assert.Equal(t, PositionLeft, cfg.Position)
	assert.Equal(t, "Support", cfg.Title)
	assert.Equal(t, 600, cfg.Width)
	assert.Equal(t, 700, cfg.Height)
}

func TestResolve_PersistedBeatsOverrides(t *testing.T) {
	store := prefs.NewMemoryStore()
	store.Set(prefs.KeyTheme, "dark")
	store.Set(prefs.KeyWidth, "512")
	store.Set(prefs.KeyHeight, "640")

	cfg := Resolve(Defaults(), Overrides{Theme: ThemeLight, Width: 450, Height: 550}, store)

	assert.Equal(t, ThemeDark, cfg.Theme)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 640, cfg.Height)
}

func TestResolve_InvalidPersistedValuesIgnored(t *testing.T) {
	store := prefs.NewMemoryStore()
	store.Set(prefs.KeyTheme, "solarized")
	store.Set(prefs.KeyWidth, "wide")
	store.Set(prefs.KeyHeight, "-5")

	cfg := Resolve(Defaults(), Overrides{}, store)

	assert.Equal(t, ThemeLight, cfg.Theme)
	assert.Equal(t, 450, cfg.Width)
	assert.Equal(t, 550, cfg.Height)
}

func TestResolve_DimensionsFlooredAtMinimum(t *testing.T) {
	tests := []struct {
		name       string
		overrides  Overrides
		persisted  map[string]string
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "tiny overrides",
			overrides:  Overrides{Width: 100, Height: 50},
			wantWidth:  MinWidth,
			wantHeight: MinHeight,
		},
		{
			name:       "tiny persisted",
			persisted:  map[string]string{prefs.KeyWidth: "10", prefs.KeyHeight: "10"},
			wantWidth:  MinWidth,
			wantHeight: MinHeight,
		},
		{
			name:       "at the floor",
			overrides:  Overrides{Width: MinWidth, Height: MinHeight},
			wantWidth:  MinWidth,
			wantHeight: MinHeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := prefs.NewMemoryStore()
			for k, v := range tt.persisted {
				store.Set(k, v)
			}
			cfg := Resolve(Defaults(), tt.overrides, store)
			require.Equal(t, tt.wantWidth, cfg.Width)
			require.Equal(t, tt.wantHeight, cfg.Height)
			require.True(t, cfg.Theme.Valid())
		})
	}
}

func TestResolve_NilStore(t *testing.T) {
	cfg := Resolve(Defaults(), Overrides{}, nil)
	assert.Equal(t, 450, cfg.Width)
	assert.Equal(t, ThemeLight, cfg.Theme)
}

func TestThemeOpposite(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Opposite())
	assert.Equal(t, ThemeLight, ThemeDark.Opposite())
}
