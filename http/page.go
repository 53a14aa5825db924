package http

import (
	_ "embed"

	"github.com/corpix/textenc/converter"
	"github.com/corpix/textenc/encoding"
	"github.com/corpix/textenc/errors"
	"github.com/corpix/textenc/template"
)

type PageAction string

const (
	PageActionConvert PageAction = "convert"
	PageActionClear   PageAction = "clear"
	PageActionSwap    PageAction = "swap"

	TemplateNamePage = "page"

	TemplateContextKeyRequest   template.ContextKey = "request"
	TemplateContextKeyPrefix    template.ContextKey = "prefix"
	TemplateContextKeyTheme     template.ContextKey = "theme"
	TemplateContextKeyConverter template.ContextKey = "converter"
	TemplateContextKeyInfo      template.ContextKey = "info"
	TemplateContextKeyEncodings template.ContextKey = "encodings"
	TemplateContextKeyNotice    template.ContextKey = "notice"
)

//go:embed page.html
var TemplatePage string

func NewPageTemplate(options ...template.Option) (*template.Template, error) {
	return template.Parse(TemplateNamePage, TemplatePage, options...)
}

func NewTemplateContext(r *Request) template.Context {
	return template.NewContext().
		With(TemplateContextKeyRequest, r)
}

//

type Page struct {
	*Http
	Template *template.Template
	Encoding encoding.Kind
}

func (p *Page) render(w ResponseWriter, r *Request, c *converter.Converter, notice *converter.Notice) {
	kinds := encoding.Kinds()
	encodings := make([]EncodingEntry, len(kinds))
	for n, k := range kinds {
		encodings[n] = EncodingEntry{Kind: k, Info: encoding.Describe(k)}
	}

	ctx := NewTemplateContext(r).
		With(TemplateContextKeyPrefix, p.Config.Prefix).
		With(TemplateContextKeyTheme, string(RequestPreferencesGet(p.Config.Preferences, r).Theme)).
		With(TemplateContextKeyConverter, c).
		With(TemplateContextKeyInfo, c.Info()).
		With(TemplateContextKeyEncodings, encodings).
		With(TemplateContextKeyNotice, notice)

	w.Header().Set(HeaderContentType, MimeTextHtml)
	err := p.Template.ExecuteTemplate(w, TemplateNamePage, ctx)
	if err != nil {
		l := RequestLogGet(r)
		l.Error().Err(err).Msg("failed to render page")
	}
}

func (p *Page) HandleGet(w ResponseWriter, r *Request) {
	p.render(w, r, converter.New(converter.WithEncoding(p.Encoding)), nil)
}

func (p *Page) HandlePost(w ResponseWriter, r *Request) {
	err := r.ParseForm()
	if err != nil {
		WriteError(w, r, StatusBadRequest, errors.Wrap(err, "failed to parse form"))
		return
	}

	kind := p.Encoding
	if raw := r.PostForm.Get("encoding"); raw != "" {
		kind, err = encoding.ParseKind(raw)
		if err != nil {
			WriteError(w, r, StatusBadRequest, err)
			return
		}
	}

	c := converter.New(
		converter.WithInput(r.PostForm.Get("input")),
		converter.WithOutput(r.PostForm.Get("output")),
		converter.WithEncoding(kind),
	)

	var notice converter.Notice
	switch PageAction(r.PostForm.Get("action")) {
	case PageActionConvert:
		notice = c.Convert()
		switch {
		case notice.Title == converter.NoticeEmptyInput:
			p.countConversion(kind, ConversionResultEmpty)
		case notice.Title == converter.NoticeInvalidInput:
			p.countConversion(kind, ConversionResultInvalid)
		case notice.Destructive():
			p.countConversion(kind, ConversionResultError)
		default:
			p.countConversion(kind, ConversionResultOk)
		}
	case PageActionClear:
		notice = c.Clear()
	case PageActionSwap:
		notice = c.Swap()
	default:
		WriteError(w, r, StatusBadRequest, errors.Errorf(
			"unsupported action %q", r.PostForm.Get("action"),
		))
		return
	}

	p.render(w, r, c, &notice)
}

func (p *Page) HandleThemeToggle(w ResponseWriter, r *Request) {
	theme := RequestPreferencesGet(p.Config.Preferences, r).Theme.Toggle()
	err := p.saveTheme(w, r, theme)
	if err != nil {
		l := RequestLogGet(r)
		l.Warn().Err(err).Msg("failed to save theme")
	}

	w.Header().Set(HeaderLocation, p.Config.Prefix+"/")
	w.WriteHeader(StatusSeeOther)
}
