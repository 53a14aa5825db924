package http

import (
	"fmt"

	"github.com/corpix/textenc/errors"
)

var ErrInternal = errors.New("internal server error")

// Recover turns a handler panic into a json 500 response, the panic
// value is logged but never sent to the client.
func Recover(h Handler) Handler {
	return HandlerFunc(func(w ResponseWriter, r *Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}

			err, ok := v.(error)
			if !ok {
				err = errors.New(fmt.Sprint(v))
			}
			l := RequestLogGet(r)
			l.Error().Stack().Err(err).Msg("panic recovered")

			WriteJson(w, r, StatusInternalServerError, ErrorResponse{Error: ErrInternal.Error()})
		}()
		h.ServeHTTP(w, r)
	})
}
