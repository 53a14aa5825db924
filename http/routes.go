package http

import (
	"github.com/corpix/textenc/encoding"
	"github.com/corpix/textenc/template"
)

// Routes registers the converter page and the json api on h.Router.
func Routes(h *Http, t *template.Template, kind encoding.Kind) {
	p := &Page{Http: h, Template: t, Encoding: kind}

	h.Router.HandleFunc("/", p.HandleGet).Methods(MethodGet, MethodHead)
	h.Router.HandleFunc("/", p.HandlePost).Methods(MethodPost)
	h.Router.HandleFunc("/theme/toggle", p.HandleThemeToggle).Methods(MethodPost)

	api := h.Router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/encodings", h.HandleEncodings).Methods(MethodGet)
	api.HandleFunc("/validate", h.HandleValidate).Methods(MethodPost)
	api.HandleFunc("/encode", h.HandleEncode).Methods(MethodPost)
	api.HandleFunc("/encode/qr", h.HandleEncodeQr).Methods(MethodGet)
	api.HandleFunc("/theme", h.HandleThemeGet).Methods(MethodGet)
	api.HandleFunc("/theme", h.HandleThemePut).Methods(MethodPut)
	api.HandleFunc("/theme/toggle", h.HandleThemeToggle).Methods(MethodPost)
}
