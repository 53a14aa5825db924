package http

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/corpix/textenc/errors"
)

type (
	CookieSameSite = http.SameSite
	CookieConfig   struct {
		Name     string         `yaml:"name"`
		Path     string         `yaml:"path"`
		Domain   string         `yaml:"domain"`
		MaxAge   *time.Duration `yaml:"max-age,omitempty"`
		Secure   *bool          `yaml:"secure,omitempty"`
		HttpOnly *bool          `yaml:"httponly,omitempty"`
		SameSite string         `yaml:"same-site"`
	}
)

const CookieSameSiteDefaultMode = http.SameSiteLaxMode

var (
	CookieSameSiteModes = map[string]CookieSameSite{
		"default": http.SameSiteDefaultMode,
		"lax":     http.SameSiteLaxMode,
		"strict":  http.SameSiteStrictMode,
		"none":    http.SameSiteNoneMode,
	}
	CookieSameSiteModesString = map[CookieSameSite]string{
		http.SameSiteDefaultMode: "default",
		http.SameSiteLaxMode:     "lax",
		http.SameSiteStrictMode:  "strict",
		http.SameSiteNoneMode:    "none",
	}
)

func CookieGet(r *Request, name string) (*Cookie, error) {
	return r.Cookie(name)
}

func CookieSet(w ResponseWriter, c *Cookie) {
	http.SetCookie(w, c)
}

//

func (c *CookieConfig) Default() {
	if c.Path == "" {
		c.Path = "/"
	}
	if c.MaxAge == nil {
		dur := 365 * 24 * time.Hour
		c.MaxAge = &dur
	}
	if c.Secure == nil {
		b := false
		c.Secure = &b
	}
	if c.HttpOnly == nil {
		b := true
		c.HttpOnly = &b
	}
	if c.SameSite == "" {
		c.SameSite = CookieSameSiteModesString[CookieSameSiteDefaultMode]
	}
}

func (c *CookieConfig) Validate() error {
	if c.Name == "" {
		return errors.New("cookie name should not be empty")
	}
	if _, ok := CookieSameSiteModes[strings.ToLower(c.SameSite)]; !ok {
		available := make([]string, len(CookieSameSiteModes))
		n := 0
		for k := range CookieSameSiteModes {
			available[n] = k
			n++
		}
		sort.Strings(available)

		return errors.Errorf(
			"unexpected same-site value %q, expected one of: %q",
			c.SameSite, available,
		)
	}

	return nil
}

// Cookie returns a cookie template carrying the configured attributes and value.
func (c *CookieConfig) Cookie(value string) *Cookie {
	cookie := &Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     c.Path,
		Domain:   c.Domain,
		Secure:   *c.Secure,
		HttpOnly: *c.HttpOnly,
		SameSite: CookieSameSiteModes[strings.ToLower(c.SameSite)],
	}
	if c.MaxAge != nil {
		cookie.MaxAge = int(*c.MaxAge / time.Second)
		cookie.Expires = time.Now().Add(*c.MaxAge)
	}
	return cookie
}
