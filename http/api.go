package http

import (
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/corpix/textenc/converter"
	"github.com/corpix/textenc/encoding"
	"github.com/corpix/textenc/errors"
	"github.com/corpix/textenc/preference"
)

type (
	EncodingEntry struct {
		Kind encoding.Kind `json:"kind"`
		encoding.Info
	}
	ConversionRequest struct {
		Text     string `json:"text"`
		Encoding string `json:"encoding"`
	}
	ValidateResponse struct {
		Valid bool `json:"valid"`
	}
	EncodeResponse struct {
		Output   string        `json:"output"`
		Encoding encoding.Kind `json:"encoding"`
		encoding.Info
	}
	ThemeRequest struct {
		Theme string `json:"theme"`
	}
	ThemeResponse struct {
		Theme preference.Theme `json:"theme"`
	}
)

const (
	QrSizeDefault = 256
	QrSizeMax     = 1024
)

var ErrInvalidInput = errors.New(converter.NoticeInvalidInput)

func normalizeKind(s string) encoding.Kind {
	return encoding.Kind(strings.ToLower(strings.TrimSpace(s)))
}

func (h *Http) countConversion(kind encoding.Kind, result string) {
	if !kind.Valid() {
		kind = "unknown"
	}
	h.Conversions.WithLabelValues(string(kind), result).Inc()
}

// encode validates before encoding and returns the status code matching the failure.
func (h *Http) encode(text string, rawKind string) (string, encoding.Kind, int, error) {
	kind, err := encoding.ParseKind(rawKind)
	if err != nil {
		h.countConversion(normalizeKind(rawKind), ConversionResultError)
		return "", kind, StatusBadRequest, err
	}
	if !encoding.Validate(text, kind) {
		h.countConversion(kind, ConversionResultInvalid)
		return "", kind, StatusUnprocessableEntity, ErrInvalidInput
	}

	output, err := encoding.Encode(text, kind)
	if err != nil {
		h.countConversion(kind, ConversionResultError)
		return "", kind, StatusInternalServerError, err
	}
	h.countConversion(kind, ConversionResultOk)
	return output, kind, StatusOK, nil
}

//

func (h *Http) HandleEncodings(w ResponseWriter, r *Request) {
	kinds := encoding.Kinds()
	res := make([]EncodingEntry, len(kinds))
	for n, k := range kinds {
		res[n] = EncodingEntry{Kind: k, Info: encoding.Describe(k)}
	}
	WriteJson(w, r, StatusOK, res)
}

func (h *Http) HandleValidate(w ResponseWriter, r *Request) {
	req := &ConversionRequest{}
	err := ReadJson(r, req)
	if err != nil {
		WriteError(w, r, StatusBadRequest, err)
		return
	}

	WriteJson(w, r, StatusOK, ValidateResponse{
		Valid: encoding.Validate(req.Text, normalizeKind(req.Encoding)),
	})
}

func (h *Http) HandleEncode(w ResponseWriter, r *Request) {
	req := &ConversionRequest{}
	err := ReadJson(r, req)
	if err != nil {
		WriteError(w, r, StatusBadRequest, err)
		return
	}

	output, kind, code, err := h.encode(req.Text, req.Encoding)
	if err != nil {
		WriteError(w, r, code, err)
		return
	}

	WriteJson(w, r, StatusOK, EncodeResponse{
		Output:   output,
		Encoding: kind,
		Info:     encoding.Describe(kind),
	})
}

func (h *Http) HandleEncodeQr(w ResponseWriter, r *Request) {
	q := r.URL.Query()

	size := QrSizeDefault
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > QrSizeMax {
			WriteError(w, r, StatusBadRequest, errors.Errorf(
				"size should be an integer in range 1..%d, got %q",
				QrSizeMax, raw,
			))
			return
		}
		size = n
	}

	rawKind := q.Get("encoding")
	if rawKind == "" {
		rawKind = string(encoding.KindDefault)
	}
	output, _, code, err := h.encode(q.Get("text"), rawKind)
	if err != nil {
		WriteError(w, r, code, err)
		return
	}
	if output == "" {
		WriteError(w, r, StatusBadRequest, errors.New(converter.NoticeEmptyInput))
		return
	}

	png, err := qrcode.Encode(output, qrcode.Medium, size)
	if err != nil {
		WriteError(w, r, StatusBadRequest, errors.Wrap(err, "failed to render qr code"))
		return
	}

	w.Header().Set(HeaderContentType, MimeImagePng)
	w.Header().Set(HeaderCacheControl, "no-store")
	_, err = w.Write(png)
	if err != nil {
		l := RequestLogGet(r)
		l.Warn().Err(err).Msg("failed to write qr code")
	}
}

//

func (h *Http) saveTheme(w ResponseWriter, r *Request, theme preference.Theme) error {
	p := RequestPreferencesGet(h.Config.Preferences, r)
	p.Theme = theme
	if h.Preferences == nil {
		return nil
	}
	return h.Preferences.Save(w, r, p)
}

func (h *Http) HandleThemeGet(w ResponseWriter, r *Request) {
	p := RequestPreferencesGet(h.Config.Preferences, r)
	WriteJson(w, r, StatusOK, ThemeResponse{Theme: p.Theme})
}

func (h *Http) HandleThemePut(w ResponseWriter, r *Request) {
	req := &ThemeRequest{}
	err := ReadJson(r, req)
	if err != nil {
		WriteError(w, r, StatusBadRequest, err)
		return
	}
	theme, err := preference.ParseTheme(req.Theme)
	if err != nil {
		WriteError(w, r, StatusBadRequest, err)
		return
	}

	err = h.saveTheme(w, r, theme)
	if err != nil {
		WriteError(w, r, StatusInternalServerError, err)
		return
	}
	WriteJson(w, r, StatusOK, ThemeResponse{Theme: theme})
}

func (h *Http) HandleThemeToggle(w ResponseWriter, r *Request) {
	theme := RequestPreferencesGet(h.Config.Preferences, r).Theme.Toggle()
	err := h.saveTheme(w, r, theme)
	if err != nil {
		WriteError(w, r, StatusInternalServerError, err)
		return
	}
	WriteJson(w, r, StatusOK, ThemeResponse{Theme: theme})
}
