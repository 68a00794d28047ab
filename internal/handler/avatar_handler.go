package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"accountd/internal/app/avatar"
	"accountd/internal/app/storage"
	"accountd/internal/app/token"
	"accountd/internal/pkg/errs"
	"accountd/internal/pkg/logx"
	"accountd/internal/pkg/req"
	"accountd/internal/pkg/resp"
)

// multipartOverhead leaves room for the multipart boundary and headers on
// top of the avatar size limit when capping the request body.
const multipartOverhead int64 = 64 << 10

// deleteObjectAsync removes a stored avatar object without blocking the
// response path. Failures are logged and ignored.
func deleteObjectAsync(deps *AppDeps, key string) {
	go func(k string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := deps.Storage.Delete(ctx, k); err != nil {
			logx.Warn("Failed to delete stale avatar object", "key", k, "error", err)
		}
	}(key)
}

// HandleUploadAvatar accepts a multipart image upload, normalizes it to the
// fixed-size PNG, and stores it under a fresh object key. The previous
// object, if any, is deleted best-effort after the user record is saved.
func HandleUploadAvatar(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := token.SessionFromContext(r)
		if sess == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if customErr := req.SetupMultipart(w, r, avatar.MaxUploadSize+multipartOverhead); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		file, header, err := r.FormFile("avatar")
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		defer file.Close()

		if !avatar.AllowedExtension(header.Filename) {
			resp.RespondError(w, r, errs.NewError(errs.ErrAvatarInvalid))
			return
		}

		data, err := io.ReadAll(io.LimitReader(file, avatar.MaxUploadSize+1))
		if err != nil {
			logx.Error(err, "failed to read avatar upload", "user_id", sess.User.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if int64(len(data)) > avatar.MaxUploadSize {
			resp.RespondError(w, r, errs.NewError(errs.ErrAvatarTooLarge))
			return
		}

		normalized, err := avatar.Normalize(data)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAvatarInvalid))
			return
		}

		key := fmt.Sprintf("avatars/%s/%s.png", sess.User.ID, uuid.New().String())
		if err := deps.Storage.Put(r.Context(), key, avatar.ContentType, normalized); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrStorageFailed))
			return
		}

		oldKey := sess.User.AvatarKey
		sess.User.AvatarKey = key

		if err := deps.Accounts.Save(r.Context(), sess.User); err != nil {
			logx.Error(err, "failed to persist avatar key", "user_id", sess.User.ID)
			deleteObjectAsync(deps, key)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if oldKey != "" {
			deleteObjectAsync(deps, oldKey)
		}

		resp.RespondJSON(w, r, http.StatusOK, nil)
	}
}

// HandleDeleteAvatar unsets the stored avatar. Clearing an account that has
// no avatar is a no-op success.
func HandleDeleteAvatar(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := token.SessionFromContext(r)
		if sess == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		oldKey := sess.User.AvatarKey
		if oldKey == "" {
			resp.RespondJSON(w, r, http.StatusOK, nil)
			return
		}

		sess.User.AvatarKey = ""
		if err := deps.Accounts.Save(r.Context(), sess.User); err != nil {
			logx.Error(err, "failed to clear avatar key", "user_id", sess.User.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		deleteObjectAsync(deps, oldKey)

		resp.RespondJSON(w, r, http.StatusOK, nil)
	}
}

// HandleGetAvatar serves a user's avatar publicly. Both a missing user and a
// missing avatar answer 404, so the route does not reveal which ids exist.
func HandleGetAvatar(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		u, err := deps.Accounts.FindByID(r.Context(), id)
		if err != nil || u.AvatarKey == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrAvatarNotFound))
			return
		}

		data, err := deps.Storage.Get(r.Context(), u.AvatarKey)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrAvatarNotFound))
				return
			}
			resp.RespondError(w, r, errs.NewError(errs.ErrStorageFailed))
			return
		}

		w.Header().Set("Content-Type", avatar.ContentType)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
