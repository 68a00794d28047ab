package handler_test

import (
	"bytes"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"accountd/internal/app/avatar"
)

func TestUploadAndFetchAvatar(t *testing.T) {
	env := newTestEnv(t)
	id, tok := env.signup(t, "Denis", "test@test.com", "TestPass!")

	rec := env.uploadAvatar(t, tok, "profile.png", fixturePNG(t, 600, 400))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 1, env.storage.count())

	// Anyone can fetch the avatar; it comes back as the normalized square PNG.
	fetch := env.doJSON(t, http.MethodGet, "/users/"+id+"/avatar", "", nil)
	require.Equal(t, http.StatusOK, fetch.Code)
	require.Equal(t, avatar.ContentType, fetch.Header().Get("Content-Type"))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(fetch.Body.Bytes()))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, avatar.Size, cfg.Width)
	require.Equal(t, avatar.Size, cfg.Height)
}

func TestUploadAvatarReplacesPreviousObject(t *testing.T) {
	env := newTestEnv(t)
	_, tok := env.signup(t, "Denis", "test@test.com", "TestPass!")

	require.Equal(t, http.StatusOK, env.uploadAvatar(t, tok, "one.png", fixturePNG(t, 300, 300)).Code)
	require.Equal(t, http.StatusOK, env.uploadAvatar(t, tok, "two.png", fixturePNG(t, 500, 200)).Code)

	// The stale object is deleted off the request path.
	require.Eventually(t, func() bool {
		return env.storage.count() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestUploadAvatarRejectsBadExtension(t *testing.T) {
	env := newTestEnv(t)
	_, tok := env.signup(t, "Denis", "test@test.com", "TestPass!")

	rec := env.uploadAvatar(t, tok, "notes.txt", fixturePNG(t, 100, 100))
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	require.Equal(t, 0, env.storage.count())
}

func TestUploadAvatarRejectsNonImageData(t *testing.T) {
	env := newTestEnv(t)
	_, tok := env.signup(t, "Denis", "test@test.com", "TestPass!")

	rec := env.uploadAvatar(t, tok, "fake.png", []byte("this is not image data"))
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	require.Equal(t, 0, env.storage.count())
}

func TestUploadAvatarRejectsOversizedFile(t *testing.T) {
	env := newTestEnv(t)
	_, tok := env.signup(t, "Denis", "test@test.com", "TestPass!")

	big := make([]byte, avatar.MaxUploadSize+16)
	rec := env.uploadAvatar(t, tok, "huge.png", big)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	require.Equal(t, 0, env.storage.count())
}

func TestUploadAvatarRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartBody(t, "profile.png", fixturePNG(t, 100, 100))
	req := httptest.NewRequest(http.MethodPost, "/users/me/avatar", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetAvatarNotFound(t *testing.T) {
	env := newTestEnv(t)
	id, _ := env.signup(t, "Denis", "test@test.com", "TestPass!")

	// A user without an avatar and an unknown id both answer 404.
	require.Equal(t, http.StatusNotFound, env.doJSON(t, http.MethodGet, "/users/"+id+"/avatar", "", nil).Code)
	require.Equal(t, http.StatusNotFound, env.doJSON(t, http.MethodGet, "/users/no-such-user/avatar", "", nil).Code)
}

func TestDeleteAvatar(t *testing.T) {
	env := newTestEnv(t)
	id, tok := env.signup(t, "Denis", "test@test.com", "TestPass!")

	require.Equal(t, http.StatusOK, env.uploadAvatar(t, tok, "profile.png", fixturePNG(t, 300, 300)).Code)

	rec := env.doJSON(t, http.MethodDelete, "/users/me/avatar", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Equal(t, http.StatusNotFound, env.doJSON(t, http.MethodGet, "/users/"+id+"/avatar", "", nil).Code)
	require.Eventually(t, func() bool {
		return env.storage.count() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDeleteAvatarWithoutOneIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	_, tok := env.signup(t, "Denis", "test@test.com", "TestPass!")

	rec := env.doJSON(t, http.MethodDelete, "/users/me/avatar", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
