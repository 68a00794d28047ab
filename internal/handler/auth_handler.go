/*
Package handler provides HTTP handler functions for account signup,
authentication, session management, profiles, and avatars.
*/
package handler

import (
	"errors"
	"net/http"

	"accountd/internal/app/account"
	"accountd/internal/app/token"
	"accountd/internal/pkg/errs"
	"accountd/internal/pkg/logx"
	"accountd/internal/pkg/req"
	"accountd/internal/pkg/resp"
)

// respondAccountError maps credential store failures to their HTTP representation.
func respondAccountError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *account.ValidationError
	switch {
	case errors.As(err, &vErr):
		resp.RespondError(w, r, errs.NewError(errs.ErrInvalidUserData, vErr.Reason))
	case errors.Is(err, account.ErrEmailTaken):
		resp.RespondError(w, r, errs.NewError(errs.ErrEmailTaken))
	case errors.Is(err, account.ErrNotFound):
		resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
	default:
		logx.Error(err, "unexpected credential store failure")
		resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
	}
}

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      *int   `json:"age"`
}

// HandleSignup creates a new account, queues the welcome email, and issues
// the first session token.
func HandleSignup(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SignupInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		age := 0
		if input.Age != nil {
			age = *input.Age
		}

		u, err := deps.Accounts.Create(r.Context(), account.Candidate{
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
			Age:      age,
		})
		if err != nil {
			respondAccountError(w, r, err)
			return
		}

		// Fire-and-forget; delivery failures never reach the caller.
		deps.Notifier.Welcome(u.Email, u.Name)

		tokenString, err := deps.Tokens.Generate(r.Context(), u)
		if err != nil {
			logx.Error(err, "failed to issue token after signup", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondJSON(w, r, http.StatusCreated, map[string]any{
			"user":  u.Public(),
			"token": tokenString,
		})
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and issues a new session token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, err := deps.Accounts.FindByCredentials(r.Context(), input.Email, input.Password)
		if err != nil {
			if errors.Is(err, account.ErrInvalidCredentials) {
				logx.Warn("login rejected", "email", account.NormalizeEmail(input.Email))
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
				return
			}

			logx.Error(err, "login: credential lookup failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		tokenString, err := deps.Tokens.Generate(r.Context(), u)
		if err != nil {
			logx.Error(err, "failed to issue token after login", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondJSON(w, r, http.StatusOK, map[string]any{
			"user":  u.Public(),
			"token": tokenString,
		})
	}
}

// HandleLogout revokes only the session token used for this request.
// Other sessions of the same user stay valid.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := token.SessionFromContext(r)
		if sess == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if err := deps.Tokens.Revoke(r.Context(), sess.User, sess.Token); err != nil {
			logx.Error(err, "logout: failed to revoke session token", "user_id", sess.User.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondJSON(w, r, http.StatusOK, nil)
	}
}

// HandleLogoutAll revokes every session token of the authenticated user.
func HandleLogoutAll(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := token.SessionFromContext(r)
		if sess == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if err := deps.Tokens.RevokeAll(r.Context(), sess.User); err != nil {
			logx.Error(err, "logoutAll: failed to clear session tokens", "user_id", sess.User.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondJSON(w, r, http.StatusOK, nil)
	}
}
