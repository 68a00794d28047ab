/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates the logic for parsing JSON and Multipart Form data, and integrates
error handling to ensure data format correctness and size constraints, facilitating
subsequent business logic processing.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"accountd/internal/pkg/errs"
)

// MaxFormMemory defines the maximum amount of memory (4 MB) ParseMultipartForm
// will use to store non-file fields. File fields exceeding this limit are stored in temporary files.
const MaxFormMemory int64 = 4 << 20 // 4 MB

// BindJSON attempts to bind the JSON data from the HTTP request body to the destination struct dst.
// Unknown fields in the body are rejected, which is what enforces field allow-lists wholesale:
// the decode fails before any field is applied.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

// SetupMultipart caps the request body at maxBytes and parses Multipart Form data.
func SetupMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	err := r.ParseMultipartForm(MaxFormMemory)

	if err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}

		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}
