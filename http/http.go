package http

import (
	"net/http"

	"github.com/corpix/textenc/di"
	"github.com/corpix/textenc/errors"
	"github.com/corpix/textenc/log"
	"github.com/corpix/textenc/metrics"
)

type (
	Option         func(*Http)
	Handler        = http.Handler
	HandlerFunc    = http.HandlerFunc
	Middleware     = func(Handler) Handler
	Request        = http.Request
	ResponseWriter = http.ResponseWriter
	Response       = http.Response
	Cookie         = http.Cookie
	ContextKey     uint8

	Config struct {
		Address     string             `yaml:"address,omitempty"`
		Prefix      string             `yaml:"prefix,omitempty"`
		Metrics     *MetricsConfig     `yaml:"metrics,omitempty"`
		Trace       *TraceConfig       `yaml:"trace,omitempty"`
		Preferences *PreferencesConfig `yaml:"preferences,omitempty"`
	}
	Http struct {
		Config      *Config
		Address     string
		Router      *Router
		Handler     Handler
		Middleware  []Middleware
		Registry    metrics.RegisterGatherer
		Conversions *metrics.CounterVec
		Preferences PreferenceStore
	}
)

const (
	MethodGet     = http.MethodGet
	MethodHead    = http.MethodHead
	MethodPost    = http.MethodPost
	MethodPut     = http.MethodPut
	MethodPatch   = http.MethodPatch
	MethodDelete  = http.MethodDelete
	MethodOptions = http.MethodOptions

	StatusOK                  = http.StatusOK
	StatusSeeOther            = http.StatusSeeOther
	StatusBadRequest          = http.StatusBadRequest
	StatusNotFound            = http.StatusNotFound
	StatusUnprocessableEntity = http.StatusUnprocessableEntity
	StatusInternalServerError = http.StatusInternalServerError

	HeaderRequestId      = "x-request-id"
	HeaderAuthorization  = "authorization"
	HeaderContentType    = "content-type"
	HeaderCacheControl   = "cache-control"
	HeaderLocation       = "location"
	MimeTextHtml         = "text/html; charset=utf-8"
	MimeApplicationJson  = "application/json"
	MimeImagePng         = "image/png"
	AuthTokenTypeBearer  = "bearer"
	DefaultServerAddress = "127.0.0.1:8080"
)

func (c *Config) Default() {
	if c.Address == "" {
		c.Address = DefaultServerAddress
	}
	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{}
	}
	c.Metrics.Default()

	if c.Trace == nil {
		c.Trace = &TraceConfig{}
	}
	c.Trace.Default()

	if c.Preferences == nil {
		c.Preferences = &PreferencesConfig{}
	}
	c.Preferences.Default()

	//

	if c.Metrics.Enable {
		c.Trace.SkipPaths[c.Prefix+c.Metrics.Path] = struct{}{}
	}
}

func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("address should not be empty")
	}
	return nil
}

//

func WithAddress(addr string) Option {
	return func(h *Http) {
		if addr != "" {
			h.Address = addr
		}
	}
}

func WithRouter(r *Router) Option {
	return func(h *Http) { h.Router = r }
}

func WithRegistry(r metrics.RegisterGatherer) Option {
	return func(h *Http) { h.Registry = r }
}

func WithPreferences(s PreferenceStore) Option {
	return func(h *Http) { h.Preferences = s }
}

func WithProvide(cont *di.Container) Option {
	return func(h *Http) {
		di.MustProvide(cont, func() *Http { return h })
	}
}

func WithInvoke(cont *di.Container, f di.Function) Option {
	return func(h *Http) { di.MustInvoke(cont, f) }
}

func WithMiddleware(middlewares ...Middleware) Option {
	return func(h *Http) {
		h.Middleware = append(h.Middleware, middlewares...)
	}
}

// Compose wraps h so the first middleware is the outermost one.
func Compose(h Handler, middlewares ...Middleware) Handler {
	for n := len(middlewares) - 1; n >= 0; n-- {
		h = middlewares[n](h)
	}
	return h
}

//

func (h *Http) ListenAndServe() error {
	if h.Address == "" {
		return errors.New("no address was defined for http server to listen on (use WithAddress Option)")
	}
	if h.Handler == nil {
		return errors.New("no handler assigned to the server")
	}
	log.Info().Str("address", h.Address).Msg("starting http server")
	return http.ListenAndServe(h.Address, h.Handler)
}

func New(c *Config, options ...Option) *Http {
	h := &Http{
		Config:   c,
		Address:  c.Address,
		Router:   NewRouter(),
		Registry: metrics.Default,
	}
	h.Conversions = NewConversionsCounter()

	for _, option := range options {
		option(h)
	}

	middleware := []Middleware{
		Trace(c.Trace),
		Recover,
	}
	if h.Preferences != nil {
		middleware = append(middleware, MiddlewarePreferences(c.Preferences, h.Preferences))
	}
	middleware = append(middleware, h.Middleware...)

	var root Handler = h.Router
	if c.Prefix != "" {
		root = http.StripPrefix(c.Prefix, h.Router)
	}
	h.Handler = Compose(root, middleware...)

	if c.Metrics.Enable {
		withMetrics(h)
	}

	return h
}
