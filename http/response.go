package http

import (
	"encoding/json"
	"io"

	"github.com/corpix/textenc/errors"
)

const MaxRequestBodySize = 1 << 20

type ErrorResponse struct {
	Error string `json:"error"`
}

func ReadJson(r *Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodySize))
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if err != nil {
		return errors.Wrap(err, "failed to decode request body")
	}
	return nil
}

func WriteJson(w ResponseWriter, r *Request, code int, v interface{}) {
	w.Header().Set(HeaderContentType, MimeApplicationJson)
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		l := RequestLogGet(r)
		l.Warn().Err(err).Msg("failed to write response")
	}
}

func WriteError(w ResponseWriter, r *Request, code int, err error) {
	l := RequestLogGet(r)
	l.Debug().Err(err).Int("code", code).Msg("request failed")

	WriteJson(w, r, code, ErrorResponse{Error: err.Error()})
}
