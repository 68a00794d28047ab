package handler

import (
	"net/http"

	"accountd/internal/app/token"
	"accountd/internal/pkg/errs"
	"accountd/internal/pkg/logx"
	"accountd/internal/pkg/req"
	"accountd/internal/pkg/resp"
)

// HandleGetProfile returns the authenticated user's safe view.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := token.SessionFromContext(r)
		if sess == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		resp.RespondJSON(w, r, http.StatusOK, sess.User.Public())
	}
}

// UpdateProfileInput is the PATCH /users/me body. Pointer fields distinguish
// "absent" from "set to zero value"; any field outside this allow-list fails
// the strict JSON decode, rejecting the request before anything is applied.
type UpdateProfileInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Age      *int    `json:"age"`
}

// HandleUpdateProfile applies an allow-listed partial update to the
// authenticated user. A password field triggers exactly one re-hash.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := token.SessionFromContext(r)
		if sess == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input UpdateProfileInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidUpdates))
			return
		}

		u := sess.User
		if input.Name != nil {
			u.Name = *input.Name
		}
		if input.Email != nil {
			u.Email = *input.Email
		}
		if input.Age != nil {
			u.Age = *input.Age
		}
		if input.Password != nil {
			if err := deps.Accounts.SetPassword(u, *input.Password); err != nil {
				respondAccountError(w, r, err)
				return
			}
		}

		if err := deps.Accounts.Save(r.Context(), u); err != nil {
			respondAccountError(w, r, err)
			return
		}

		resp.RespondJSON(w, r, http.StatusOK, u.Public())
	}
}

// HandleDeleteAccount removes the authenticated user's record (sessions
// cascade with it), queues the cancellation email, and cleans up the stored
// avatar object best-effort.
func HandleDeleteAccount(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := token.SessionFromContext(r)
		if sess == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		u := sess.User
		if err := deps.Accounts.Remove(r.Context(), u); err != nil {
			logx.Error(err, "failed to delete account", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if u.AvatarKey != "" {
			deleteObjectAsync(deps, u.AvatarKey)
		}

		deps.Notifier.AccountCanceled(u.Email, u.Name)

		resp.RespondJSON(w, r, http.StatusOK, u.Public())
	}
}
