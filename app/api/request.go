package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// ErrEmptyBody is returned by DecodeJSON when the body is empty or null.
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON decodes a single JSON value from the request body. Unknown
// fields are ignored.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request) (*T, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)

	var dst *T
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBody
		}
		return nil, err
	}
	if dst == nil {
		return nil, ErrEmptyBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("body must only contain a single JSON value")
	}
	return dst, nil
}

// BindJSON decodes the body into T, writing the 400 response itself when the
// body is empty, null or malformed. It reports whether decoding succeeded.
func BindJSON[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	input, err := DecodeJSON[T](w, r)
	if errors.Is(err, ErrEmptyBody) {
		StatusResponse(w, http.StatusBadRequest)
		return nil, false
	}
	if err != nil {
		ms := NewModelState()
		ms.AddError(KeyBody, "The request body is not valid JSON.")
		ValidationResponse(w, ms)
		return nil, false
	}
	return input, true
}

// ReadBody reads the raw request body, capped at 1 MiB.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return io.ReadAll(r.Body)
}

// PathID parses the {id} route parameter. Routes only match digits, so an
// error here means the value overflowed.
func PathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
