/*
Package resp provides helper functions for constructing and sending HTTP JSON responses.

Success responses carry the payload directly (e.g. {"user": ..., "token": ...});
error responses carry an {"error": ..., "code": ...} body whose HTTP status comes
from the errs package.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"accountd/internal/pkg/errs"
	"accountd/internal/pkg/logx"
)

// errorBody is the JSON structure returned to clients for every failed request.
type errorBody struct {
	// Error is the client-friendly error message.
	Error string `json:"error"`

	// Code is the business error code (see errs package).
	Code int `json:"code"`
}

// RespondJSON sets the Content-Type, writes the HTTP status, and sends the JSON payload.
// A nil payload writes the status line with an empty body.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if payload == nil {
		w.WriteHeader(httpStatus)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondError sends an HTTP response containing custom error information.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondJSON(w, r, customErr.Status, errorBody{
		Error: customErr.Message,
		Code:  customErr.Code,
	})
}
