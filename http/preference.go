package http

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/corpix/textenc/encoding"
	"github.com/corpix/textenc/errors"
	"github.com/corpix/textenc/preference"
)

type (
	PreferencesConfig struct {
		Theme   string               `yaml:"theme"`
		Store   string               `yaml:"store"`
		Encoder string               `yaml:"encoder"`
		Cookie  *CookieConfig        `yaml:"cookie"`
		KV      *preference.KVConfig `yaml:"kv,omitempty"`
	}
	PreferenceStoreType string
	PreferenceStore     interface {
		Load(*Request) (*preference.Preferences, error)
		Save(ResponseWriter, *Request, *preference.Preferences) error
	}

	// PreferenceStoreCookie keeps the whole preferences record inside a cookie.
	PreferenceStoreCookie struct {
		Config *CookieConfig
		Codec  preference.Codec
	}
	// PreferenceStoreKV keeps a client id inside a cookie and the record in a kv store.
	PreferenceStoreKV struct {
		Config *CookieConfig
		KV     *preference.KV
	}
)

const (
	PreferenceStoreTypeCookie PreferenceStoreType = "cookie"
	PreferenceStoreTypeKV     PreferenceStoreType = "kv"
)

var (
	ContextKeyPreferences = new(ContextKey)

	ErrNoPreferences = errors.New("no preferences stored")

	_ PreferenceStore = new(PreferenceStoreCookie)
	_ PreferenceStore = new(PreferenceStoreKV)
)

func (c *PreferencesConfig) Default() {
	if c.Theme == "" {
		c.Theme = string(preference.ThemeLight)
	}
	if c.Store == "" {
		c.Store = string(PreferenceStoreTypeCookie)
	}
	if c.Encoder == "" {
		c.Encoder = string(encoding.EncodeDecoderTypeBase64)
	}
	if c.Cookie == nil {
		c.Cookie = &CookieConfig{}
	}
	if c.Cookie.Name == "" {
		c.Cookie.Name = "textenc-preferences"
	}
	c.Cookie.Default()

	if PreferenceStoreType(strings.ToLower(c.Store)) == PreferenceStoreTypeKV {
		if c.KV == nil {
			c.KV = &preference.KVConfig{}
		}
		c.KV.Default()
	}
}

func (c *PreferencesConfig) Validate() error {
	_, err := preference.ParseTheme(c.Theme)
	if err != nil {
		return errors.Wrap(err, "preferences.theme")
	}

	switch PreferenceStoreType(strings.ToLower(c.Store)) {
	case PreferenceStoreTypeCookie:
		if encoding.EncodeDecoderType(strings.ToLower(c.Encoder)) == encoding.EncodeDecoderTypeRaw {
			return errors.New("raw encoder produces binary data which could not be stored in a cookie")
		}
		_, err = encoding.NewEncodeDecoder(c.Encoder)
		if err != nil {
			return err
		}
	case PreferenceStoreTypeKV:
		if c.KV == nil {
			return errors.New("kv store requires kv configuration")
		}
		err = c.KV.Validate()
		if err != nil {
			return err
		}
	default:
		return errors.Errorf("unsupported preference store type %q", c.Store)
	}

	return c.Cookie.Validate()
}

func (c *PreferencesConfig) DefaultTheme() preference.Theme {
	t, err := preference.ParseTheme(c.Theme)
	if err != nil {
		return preference.ThemeLight
	}
	return t
}

//

func (s *PreferenceStoreCookie) Load(r *Request) (*preference.Preferences, error) {
	cookie, err := CookieGet(r, s.Config.Name)
	if err != nil {
		return nil, ErrNoPreferences
	}

	p := &preference.Preferences{}
	err = s.Codec.Unmarshal([]byte(cookie.Value), p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode preferences cookie")
	}
	return p, nil
}

func (s *PreferenceStoreCookie) Save(w ResponseWriter, r *Request, p *preference.Preferences) error {
	buf, err := s.Codec.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "failed to encode preferences cookie")
	}

	CookieSet(w, s.Config.Cookie(string(buf)))
	return nil
}

func NewPreferenceStoreCookie(c *CookieConfig, e encoding.EncodeDecoder) *PreferenceStoreCookie {
	return &PreferenceStoreCookie{
		Config: c,
		Codec:  preference.Codec{EncodeDecoder: e},
	}
}

//

func (s *PreferenceStoreKV) Load(r *Request) (*preference.Preferences, error) {
	cookie, err := CookieGet(r, s.Config.Name)
	if err != nil {
		return nil, ErrNoPreferences
	}

	p, found, err := s.KV.Get(cookie.Value)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoPreferences
	}
	return p, nil
}

func (s *PreferenceStoreKV) Save(w ResponseWriter, r *Request, p *preference.Preferences) error {
	var id string
	cookie, err := CookieGet(r, s.Config.Name)
	if err == nil {
		if _, err = uuid.Parse(cookie.Value); err == nil {
			id = cookie.Value
		}
	}
	if id == "" {
		id = uuid.New().String()
	}

	err = s.KV.Set(id, p)
	if err != nil {
		return err
	}

	CookieSet(w, s.Config.Cookie(id))
	return nil
}

func NewPreferenceStoreKV(c *CookieConfig, kv *preference.KV) *PreferenceStoreKV {
	return &PreferenceStoreKV{Config: c, KV: kv}
}

//

func NewPreferenceStore(c *PreferencesConfig) (PreferenceStore, error) {
	switch PreferenceStoreType(strings.ToLower(c.Store)) {
	case PreferenceStoreTypeCookie:
		e, err := encoding.NewEncodeDecoder(c.Encoder)
		if err != nil {
			return nil, err
		}
		return NewPreferenceStoreCookie(c.Cookie, e), nil
	case PreferenceStoreTypeKV:
		kv, err := preference.NewKV(c.KV, preference.Codec{})
		if err != nil {
			return nil, err
		}
		return NewPreferenceStoreKV(c.Cookie, kv), nil
	default:
		return nil, errors.Errorf("unsupported preference store type %q", c.Store)
	}
}

//

func RequestPreferencesGet(c *PreferencesConfig, r *Request) *preference.Preferences {
	ctxPreferences := r.Context().Value(ContextKeyPreferences)
	if ctxPreferences != nil {
		return ctxPreferences.(*preference.Preferences)
	}
	return preference.New(c.DefaultTheme())
}

func RequestPreferencesSet(r *Request, p *preference.Preferences) *Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeyPreferences, p))
}

func MiddlewarePreferences(c *PreferencesConfig, s PreferenceStore) Middleware {
	return func(h Handler) Handler {
		return HandlerFunc(func(w ResponseWriter, r *Request) {
			p, err := s.Load(r)
			if err != nil {
				if !errors.Is(err, ErrNoPreferences) {
					l := RequestLogGet(r)
					l.Warn().
						Err(err).
						Msg("failed to load preferences, using defaults")
				}
				p = preference.New(c.DefaultTheme())
			}

			h.ServeHTTP(w, RequestPreferencesSet(r, p.Resolve(c.DefaultTheme())))
		})
	}
}
