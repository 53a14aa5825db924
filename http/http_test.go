package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpix/textenc/encoding"
	"github.com/corpix/textenc/metrics"
	"github.com/corpix/textenc/preference"
)

func newTestHttp(t *testing.T, configure func(*Config)) *Http {
	t.Helper()

	c := &Config{}
	if configure != nil {
		configure(c)
	}
	c.Default()
	require.NoError(t, c.Preferences.Validate())

	store, err := NewPreferenceStore(c.Preferences)
	require.NoError(t, err)

	h := New(c,
		WithRegistry(metrics.NewRegistry()),
		WithPreferences(store),
	)
	tpl, err := NewPageTemplate()
	require.NoError(t, err)
	Routes(h, tpl, encoding.KindUTF8)

	return h
}

func do(h *Http, method string, path string, body string, cookies ...*Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.Handler.ServeHTTP(w, r)
	return w
}

func TestEncodings(t *testing.T) {
	h := newTestHttp(t, nil)

	w := do(h, MethodGet, "/api/encodings", "")
	require.Equal(t, StatusOK, w.Code)

	var res []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res, 6)
	assert.Equal(t, "utf8", res[0]["kind"])
	assert.Equal(t, "UTF-8", res[0]["display-name"])
	assert.Equal(t, "URL Encoding", res[5]["display-name"])
}

func TestEncode(t *testing.T) {
	h := newTestHttp(t, nil)

	w := do(h, MethodPost, "/api/encode", `{"text":"AB","encoding":"hex"}`)
	require.Equal(t, StatusOK, w.Code)

	res := map[string]string{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "4142", res["output"])
	assert.Equal(t, "hex", res["encoding"])
	assert.Equal(t, "Hex", res["display-name"])
	assert.NotEmpty(t, w.Header().Get(HeaderRequestId))
}

func TestEncodeFailures(t *testing.T) {
	h := newTestHttp(t, nil)

	w := do(h, MethodPost, "/api/encode", `{"text":"hello","encoding":"bogus"}`)
	assert.Equal(t, StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported encoding")

	w = do(h, MethodPost, "/api/encode", `{"text":"héllo","encoding":"ascii"}`)
	assert.Equal(t, StatusUnprocessableEntity, w.Code)

	w = do(h, MethodPost, "/api/encode", `{"text":`)
	assert.Equal(t, StatusBadRequest, w.Code)
}

func TestValidate(t *testing.T) {
	h := newTestHttp(t, nil)

	for _, tc := range []struct {
		body  string
		valid bool
	}{
		{`{"text":"hello","encoding":"ascii"}`, true},
		{`{"text":"héllo","encoding":"ASCII"}`, false},
		{`{"text":"héllo😀","encoding":"url"}`, true},
		{`{"text":"héllo","encoding":"bogus"}`, true},
		{`{"text":"","encoding":"ascii"}`, true},
	} {
		w := do(h, MethodPost, "/api/validate", tc.body)
		require.Equal(t, StatusOK, w.Code, tc.body)

		res := ValidateResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, tc.valid, res.Valid, tc.body)
	}
}

func TestEncodeQr(t *testing.T) {
	h := newTestHttp(t, nil)

	w := do(h, MethodGet, "/api/encode/qr?text=hello&encoding=base64&size=128", "")
	require.Equal(t, StatusOK, w.Code)
	assert.Equal(t, MimeImagePng, w.Header().Get(HeaderContentType))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = do(h, MethodGet, "/api/encode/qr?text=hello&size=99999", "")
	assert.Equal(t, StatusBadRequest, w.Code)

	w = do(h, MethodGet, "/api/encode/qr?text=", "")
	assert.Equal(t, StatusBadRequest, w.Code)
}

func testTheme(t *testing.T, h *Http) {
	w := do(h, MethodGet, "/api/theme", "")
	require.Equal(t, StatusOK, w.Code)
	assert.JSONEq(t, `{"theme":"light"}`, w.Body.String())

	w = do(h, MethodPut, "/api/theme", `{"theme":"dark"}`)
	require.Equal(t, StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "textenc-preferences", cookies[0].Name)

	w = do(h, MethodGet, "/api/theme", "", cookies[0])
	assert.JSONEq(t, `{"theme":"dark"}`, w.Body.String())

	w = do(h, MethodPost, "/api/theme/toggle", "", cookies[0])
	assert.JSONEq(t, `{"theme":"light"}`, w.Body.String())
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)

	w = do(h, MethodGet, "/api/theme", "", cookies[0])
	assert.JSONEq(t, `{"theme":"light"}`, w.Body.String())

	w = do(h, MethodPut, "/api/theme", `{"theme":"sepia"}`)
	assert.Equal(t, StatusBadRequest, w.Code)
}

func TestThemeCookieStore(t *testing.T) {
	testTheme(t, newTestHttp(t, nil))
}

func TestThemeCookieStoreZstd(t *testing.T) {
	testTheme(t, newTestHttp(t, func(c *Config) {
		c.Preferences = &PreferencesConfig{Encoder: "zstd"}
	}))
}

func TestThemeKVStore(t *testing.T) {
	h := newTestHttp(t, func(c *Config) {
		c.Preferences = &PreferencesConfig{Store: "kv"}
	})
	testTheme(t, h)

	_, ok := h.Preferences.(*PreferenceStoreKV)
	assert.True(t, ok)
}

func TestThemeBrokenCookie(t *testing.T) {
	h := newTestHttp(t, func(c *Config) {
		c.Preferences = &PreferencesConfig{Theme: "dark"}
	})

	w := do(h, MethodGet, "/api/theme", "", &Cookie{Name: "textenc-preferences", Value: "!!!"})
	require.Equal(t, StatusOK, w.Code)
	assert.JSONEq(t, `{"theme":"dark"}`, w.Body.String())
}

func TestPreferencesConfigValidate(t *testing.T) {
	c := &PreferencesConfig{Encoder: "raw"}
	c.Default()
	assert.Error(t, c.Validate())

	c = &PreferencesConfig{Theme: "blue"}
	c.Default()
	assert.Error(t, c.Validate())

	c = &PreferencesConfig{Store: "kv"}
	c.Default()
	assert.NoError(t, c.Validate())
	assert.Equal(t, preference.ThemeLight, c.DefaultTheme())
}

func TestPage(t *testing.T) {
	h := newTestHttp(t, nil)

	w := do(h, MethodGet, "/", "")
	require.Equal(t, StatusOK, w.Code)
	assert.Equal(t, MimeTextHtml, w.Header().Get(HeaderContentType))
	assert.Contains(t, w.Body.String(), "<h1>Text Encoder</h1>")
	assert.Contains(t, w.Body.String(), `<html lang="en" class="light">`)
}

func postForm(h *Http, values url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set(HeaderContentType, "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Handler.ServeHTTP(w, r)
	return w
}

func TestPageActions(t *testing.T) {
	h := newTestHttp(t, nil)

	w := postForm(h, url.Values{"action": {"convert"}, "input": {"AB"}, "encoding": {"binary"}})
	require.Equal(t, StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "01000001 01000010</textarea>")
	assert.Contains(t, w.Body.String(), "Text converted successfully!")

	w = postForm(h, url.Values{"action": {"convert"}, "input": {""}, "encoding": {"hex"}})
	assert.Contains(t, w.Body.String(), `class="notice destructive"`)
	assert.Contains(t, w.Body.String(), "Please enter some text to convert")

	w = postForm(h, url.Values{"action": {"convert"}, "input": {"héllo"}, "encoding": {"ascii"}})
	assert.Contains(t, w.Body.String(), "Input contains characters that cannot be encoded with the selected encoding")

	w = postForm(h, url.Values{"action": {"swap"}, "input": {"a"}, "output": {"b"}, "encoding": {"utf8"}})
	assert.Contains(t, w.Body.String(), `placeholder="Type or paste your text here...">b</textarea>`)
	assert.Contains(t, w.Body.String(), "Input and output swapped")

	w = postForm(h, url.Values{"action": {"clear"}, "input": {"a"}, "output": {"b"}})
	assert.Contains(t, w.Body.String(), "All fields cleared")

	w = postForm(h, url.Values{"action": {"explode"}})
	assert.Equal(t, StatusBadRequest, w.Code)

	w = postForm(h, url.Values{"action": {"convert"}, "encoding": {"morse"}})
	assert.Equal(t, StatusBadRequest, w.Code)
}

func TestPageThemeToggle(t *testing.T) {
	h := newTestHttp(t, nil)

	w := do(h, MethodPost, "/theme/toggle", "")
	require.Equal(t, StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get(HeaderLocation))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	w = do(h, MethodGet, "/", "", cookies[0])
	assert.Contains(t, w.Body.String(), `<html lang="en" class="dark">`)
}

func TestPrefix(t *testing.T) {
	h := newTestHttp(t, func(c *Config) { c.Prefix = "/textenc" })

	w := do(h, MethodGet, "/textenc/api/encodings", "")
	assert.Equal(t, StatusOK, w.Code)

	w = do(h, MethodGet, "/textenc/", "")
	assert.Contains(t, w.Body.String(), `action="/textenc/"`)
}

func TestMetrics(t *testing.T) {
	h := newTestHttp(t, func(c *Config) {
		c.Metrics = &MetricsConfig{Enable: true, Token: "secret"}
	})

	w := do(h, MethodPost, "/api/encode", `{"text":"AB","encoding":"hex"}`)
	require.Equal(t, StatusOK, w.Code)

	w = do(h, MethodGet, "/metrics", "")
	assert.Equal(t, StatusNotFound, w.Code)

	r := httptest.NewRequest(MethodGet, "/metrics", nil)
	r.Header.Set(HeaderAuthorization, "Bearer secret")
	w = httptest.NewRecorder()
	h.Handler.ServeHTTP(w, r)
	require.Equal(t, StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `conversions_total{encoding="hex",result="ok"} 1`)
	assert.Contains(t, w.Body.String(), "requests_total")
}

func TestRecover(t *testing.T) {
	h := newTestHttp(t, nil)
	h.Router.HandleFunc("/panic", func(w ResponseWriter, r *Request) {
		panic("boom")
	})

	w := do(h, MethodGet, "/panic", "")
	assert.Equal(t, StatusInternalServerError, w.Code)
	assert.Equal(t, MimeApplicationJson, w.Header().Get(HeaderContentType))
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestTraceRequestId(t *testing.T) {
	h := newTestHttp(t, nil)

	for _, tc := range []struct {
		id   string
		kept bool
	}{
		{id: "client-id-42", kept: true},
		{id: "", kept: false},
		{id: "with space", kept: false},
		{id: "tab\tinside", kept: false},
		{id: strings.Repeat("x", RequestIdMaxLength+1), kept: false},
	} {
		r := httptest.NewRequest(MethodGet, "/api/encodings", nil)
		if tc.id != "" {
			r.Header.Set(HeaderRequestId, tc.id)
		}
		w := httptest.NewRecorder()
		h.Handler.ServeHTTP(w, r)

		id := w.Header().Get(HeaderRequestId)
		if tc.kept {
			assert.Equal(t, tc.id, id)
		} else {
			assert.NotEqual(t, tc.id, id)
			assert.Len(t, id, 36)
		}
	}
}

func TestCompose(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next Handler) Handler {
			return HandlerFunc(func(w ResponseWriter, r *Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Compose(HandlerFunc(func(w ResponseWriter, r *Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
