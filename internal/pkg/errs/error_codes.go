/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart or URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Account and Profile Business Logic Errors
const (
	// ErrInvalidUserData indicates that a signup or profile payload failed validation.
	ErrInvalidUserData = 2001

	// ErrEmailTaken indicates that the requested email address is already registered.
	ErrEmailTaken = 2002

	// ErrInvalidCredentials indicates a failed login. The message deliberately does not
	// distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = 2003

	// ErrUserNotFound indicates that the requested account does not exist.
	ErrUserNotFound = 2004

	// ErrInvalidUpdates indicates a profile update touching fields outside the allow-list.
	ErrInvalidUpdates = 2005

	// ErrAvatarNotFound indicates that the requested user has no stored avatar.
	ErrAvatarNotFound = 2101

	// ErrAvatarInvalid indicates an avatar upload that is not a decodable jpg/jpeg/png image.
	ErrAvatarInvalid = 2102

	// ErrAvatarTooLarge indicates an avatar upload exceeding the size limit.
	ErrAvatarTooLarge = 2103
)

// 3xxx: Authentication Errors
const (
	// ErrUnauthorized indicates a missing, malformed, expired, or revoked bearer token.
	ErrUnauthorized = 3001
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrStorageFailed indicates a failure talking to the avatar object storage.
	ErrStorageFailed = 5001
)
