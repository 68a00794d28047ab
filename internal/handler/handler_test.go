package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"accountd/internal/app/account"
	"accountd/internal/app/account/memory"
	"accountd/internal/app/mailer"
	"accountd/internal/app/storage"
	"accountd/internal/app/token"
	"accountd/internal/configs"
	"accountd/internal/handler"
)

// fakeStorage is an in-memory StorageService used in place of S3.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Put(ctx context.Context, key, contentType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.objects[key] = cp
	return nil
}

func (s *fakeStorage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

var _ storage.StorageService = (*fakeStorage)(nil)

// recordingSender captures queued notification emails.
type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (s *recordingSender) Send(ctx context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) messages() []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]mailer.Message, len(s.sent))
	copy(out, s.sent)
	return out
}

type testEnv struct {
	router   http.Handler
	accounts *account.Store
	tokens   *token.Service
	storage  *fakeStorage
	sender   *recordingSender
	notifier *mailer.Notifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	accounts := account.NewStore(memory.New())
	tokens := token.NewService("handler-test-secret", accounts)
	store := newFakeStorage()
	sender := &recordingSender{}
	notifier := mailer.NewNotifier(sender, 64)
	t.Cleanup(func() {
		notifier.Shutdown(context.Background())
	})

	deps := &handler.AppDeps{
		Config:   &configs.AppConfig{Environment: "development", Port: 8080},
		Accounts: accounts,
		Tokens:   tokens,
		Storage:  store,
		Notifier: notifier,
	}

	return &testEnv{
		router:   handler.Router(deps),
		accounts: accounts,
		tokens:   tokens,
		storage:  store,
		sender:   sender,
		notifier: notifier,
	}
}

// doJSON sends a JSON request through the router. An empty token leaves the
// Authorization header unset; a nil body sends no payload.
func (e *testEnv) doJSON(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// signup registers a user through the HTTP surface and returns its public id
// and first session token.
func (e *testEnv) signup(t *testing.T, name, email, password string) (string, string) {
	t.Helper()

	rec := e.doJSON(t, http.MethodPost, "/users", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "signup response missing user object")

	id, _ := user["id"].(string)
	tok, _ := body["token"].(string)
	require.NotEmpty(t, id)
	require.NotEmpty(t, tok)
	return id, tok
}

func fixturePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// multipartBody builds a multipart form with a single "avatar" file field.
func multipartBody(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (e *testEnv) uploadAvatar(t *testing.T, bearer, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, filename, data)
	req := httptest.NewRequest(http.MethodPost, "/users/me/avatar", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+bearer)

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
