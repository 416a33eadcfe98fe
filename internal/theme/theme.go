// Package theme persists the light/dark display preference.
package theme

import (
	"fmt"
	"strings"

	"github.com/alkime/voicescribe/internal/store"
	"github.com/muesli/termenv"
)

// StoreKey is the persistence key holding the theme preference.
const StoreKey = "voicescribe.theme"

// Theme is the display theme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse converts s into a Theme.
func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("unknown theme %q: must be 'light' or 'dark'", s)
	}
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == Light || t == Dark
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}

	return Dark
}

// Ambient returns the theme matching the terminal background.
func Ambient() Theme {
	if termenv.HasDarkBackground() {
		return Dark
	}

	return Light
}

// Preference is the persisted theme choice.
type Preference struct {
	value *store.Value[Theme]
}

// NewPreference binds the theme preference to backend. ambient supplies the
// first-run default and is consulted at most once; nil means Ambient.
func NewPreference(backend store.Backend, ambient func() Theme) *Preference {
	if ambient == nil {
		ambient = Ambient
	}

	return &Preference{
		value: store.NewLazyValue(backend, StoreKey, ambient),
	}
}

// Get returns the current theme. Unknown stored values yield the default.
func (p *Preference) Get() Theme {
	t := p.value.Get()
	if !t.Valid() {
		return p.value.Default()
	}

	return t
}

// Set stores t.
func (p *Preference) Set(t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("unknown theme %q", t)
	}

	p.value.Set(t)

	return nil
}

// Toggle flips the theme and returns the new value.
func (p *Preference) Toggle() Theme {
	next := p.Get().Opposite()
	p.value.Set(next)

	return next
}
