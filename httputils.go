package pmadmin

import (
	"errors"
	"net/http"
)

// responseWriter remembers the status sent to the client.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.written {
		return
	}
	rw.statusCode = code
	rw.written = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.written = true
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Written() bool {
	return rw.written
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// StatusError is a failure that must be answered with Status.
type StatusError struct {
	Status int
	Err    error
}

func NewStatusError(status int, err error) *StatusError {
	return &StatusError{Status: status, Err: err}
}

func (e *StatusError) Error() string {
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func writeError(w http.ResponseWriter, err error) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		http.Error(w, statusErr.Error(), statusErr.Status)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
