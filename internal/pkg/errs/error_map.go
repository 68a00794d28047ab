/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process uploaded data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Account and Profile Business Logic Errors
	ErrInvalidUserData:    {Code: ErrInvalidUserData, Message: "Invalid account data: %s.", Status: http.StatusBadRequest},
	ErrEmailTaken:         {Code: ErrEmailTaken, Message: "This email address is already registered.", Status: http.StatusConflict},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect email or password.", Status: http.StatusBadRequest},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrInvalidUpdates:     {Code: ErrInvalidUpdates, Message: "Invalid updates.", Status: http.StatusBadRequest},
	ErrAvatarNotFound:     {Code: ErrAvatarNotFound, Message: "Avatar not found.", Status: http.StatusNotFound},
	ErrAvatarInvalid:      {Code: ErrAvatarInvalid, Message: "Avatar must be a jpg, jpeg, or png image.", Status: http.StatusBadRequest},
	ErrAvatarTooLarge:     {Code: ErrAvatarTooLarge, Message: "Avatar image is too large.", Status: http.StatusBadRequest},

	// 3xxx: Authentication Errors
	ErrUnauthorized: {Code: ErrUnauthorized, Message: "Please authenticate.", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:       {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrStorageFailed: {Code: ErrStorageFailed, Message: "Avatar storage failed. Please try again.", Status: http.StatusInternalServerError},
}
