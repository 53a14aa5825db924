package preference

import (
	"strings"

	"github.com/corpix/textenc/errors"
)

type (
	Theme       string
	Preferences struct {
		Theme Theme `json:"theme" msgpack:"theme"`
	}
)

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var ErrUnsupportedTheme = errors.New("unsupported theme")

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) String() string { return string(t) }

func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", errors.Wrapf(ErrUnsupportedTheme, "%q", s)
	}
	return t, nil
}

// Resolve fills unset or unknown fields with defaults.
func (p *Preferences) Resolve(theme Theme) *Preferences {
	if !p.Theme.Valid() {
		p.Theme = theme
	}
	return p
}

func New(theme Theme) *Preferences {
	return &Preferences{Theme: theme}
}
