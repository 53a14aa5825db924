package http

import (
	"context"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"

	"github.com/corpix/textenc/log"
)

const RequestIdMaxLength = 128

var (
	ContextKeyRequestId = new(ContextKey)
	ContextKeyLog       = new(ContextKey)
)

type TraceConfig struct {
	SkipPaths map[string]struct{} `yaml:"skip-paths"`
}

func (c *TraceConfig) Default() {
	if c.SkipPaths == nil {
		c.SkipPaths = map[string]struct{}{}
	}
}

//

// requestIdValid accepts client supplied ids made of printable ascii
// without spaces, so they are safe to echo into logs and headers.
func requestIdValid(id string) bool {
	if id == "" || len(id) > RequestIdMaxLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

func RequestIdGet(r *Request) string {
	if id, ok := r.Context().Value(ContextKeyRequestId).(string); ok {
		return id
	}
	if id := r.Header.Get(HeaderRequestId); requestIdValid(id) {
		return id
	}
	return uuid.New().String()
}

func RequestIdSet(r *Request, id string) *Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeyRequestId, id))
}

func RequestLogGet(r *Request) log.Logger {
	if l, ok := r.Context().Value(ContextKeyLog).(log.Logger); ok {
		return l
	}
	return log.With().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Logger()
}

func RequestLogSet(r *Request, l log.Logger) *Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeyLog, l))
}

//

// Trace assigns a request id, echoes it in the response and logs
// every request outside of SkipPaths with a level matching its status.
func Trace(c *TraceConfig) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(w ResponseWriter, r *Request) {
			id := RequestIdGet(r)
			l := RequestLogGet(r).With().
				Str("request-id", id).
				Str("remote", r.RemoteAddr).
				Logger()

			r = RequestLogSet(RequestIdSet(r, id), l)
			w.Header().Set(HeaderRequestId, id)

			if _, skip := c.SkipPaths[r.URL.Path]; skip {
				next.ServeHTTP(w, r)
				return
			}

			m := httpsnoop.CaptureMetrics(next, w, r)

			var e *log.Event
			switch {
			case m.Code >= StatusInternalServerError:
				e = l.Error()
			case m.Code >= StatusBadRequest:
				e = l.Warn()
			default:
				e = l.Info()
			}
			e.Int("code", m.Code).
				Int64("written", m.Written).
				Dur("duration", m.Duration).
				Str("user-agent", r.UserAgent()).
				Msg("request")
		})
	}
}
