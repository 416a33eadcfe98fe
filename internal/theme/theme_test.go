package theme_test

import (
	"testing"

	"github.com/alkime/voicescribe/internal/store"
	"github.com/alkime/voicescribe/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    theme.Theme
		wantErr bool
	}{
		{in: "light", want: theme.Light},
		{in: "DARK", want: theme.Dark},
		{in: " dark ", want: theme.Dark},
		{in: "sepia", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := theme.Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPreference_DefaultsToAmbientOnce(t *testing.T) {
	calls := 0
	pref := theme.NewPreference(store.NewMemory(), func() theme.Theme {
		calls++
		return theme.Dark
	})

	assert.Equal(t, theme.Dark, pref.Get())
	assert.Equal(t, theme.Dark, pref.Get())
	assert.Equal(t, 1, calls)
}

func TestPreference_SetPersists(t *testing.T) {
	backend := store.NewMemory()
	pref := theme.NewPreference(backend, func() theme.Theme { return theme.Light })

	require.NoError(t, pref.Set(theme.Dark))

	reloaded := theme.NewPreference(backend, func() theme.Theme { return theme.Light })
	assert.Equal(t, theme.Dark, reloaded.Get())

	data, ok, err := backend.Load(theme.StoreKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `"dark"`, string(data))
}

func TestPreference_SetRejectsUnknown(t *testing.T) {
	pref := theme.NewPreference(store.NewMemory(), func() theme.Theme { return theme.Light })

	assert.Error(t, pref.Set(theme.Theme("neon")))
	assert.Equal(t, theme.Light, pref.Get())
}

func TestPreference_Toggle(t *testing.T) {
	pref := theme.NewPreference(store.NewMemory(), func() theme.Theme { return theme.Light })

	assert.Equal(t, theme.Dark, pref.Toggle())
	assert.Equal(t, theme.Dark, pref.Get())
	assert.Equal(t, theme.Light, pref.Toggle())
}

func TestPreference_UnknownStoredValueFallsBack(t *testing.T) {
	backend := store.NewMemory()
	require.NoError(t, backend.Save(theme.StoreKey, []byte(`"purple"`)))

	pref := theme.NewPreference(backend, func() theme.Theme { return theme.Dark })

	assert.Equal(t, theme.Dark, pref.Get())
}
