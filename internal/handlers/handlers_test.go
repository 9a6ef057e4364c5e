package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/partage-labs/partage/internal/chatlog"
	"github.com/partage-labs/partage/internal/hours"
	"github.com/partage-labs/partage/internal/presence"
	"github.com/partage-labs/partage/internal/pubsub"
	"github.com/partage-labs/partage/internal/session"
	"github.com/partage-labs/partage/internal/storage"
	"github.com/partage-labs/partage/internal/store"
)

// nopPublisher satisfies pubsub.Publisher where the test does not care about
// the bus.
type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, msg pubsub.Message) error { return nil }
func (nopPublisher) Close() error                                          { return nil }

// env wires the handlers onto a routed echo instance backed by in-memory
// state, mirroring the production route table minus the service-hours gate.
type env struct {
	e        *echo.Echo
	store    *store.Store
	registry *presence.Registry
	log      *chatlog.Log
	blobs    *storage.AferoStore
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st := store.New(afero.NewMemMapFs(), "data")
	_, err := st.Load()
	require.NoError(t, err)

	registry := presence.NewRegistry()
	log := chatlog.New()
	coordinator := session.NewCoordinator(st, registry, log, nopPublisher{})

	blobs := storage.NewAferoStore(afero.NewMemMapFs())

	e := echo.New()
	e.Validator = NewValidator()

	auth := NewAuthHandler(st, coordinator)
	chat := NewChatHandler(log, coordinator)
	files := NewFileHandler(st, blobs)
	users := NewPresenceHandler(registry, st)
	utils := NewUtilsHandler()
	status := NewStatusHandler(hours.NewGate(0, 24))

	e.POST("/api/register", auth.Register)
	e.POST("/api/login", auth.Login)
	e.POST("/api/logout", auth.Logout)
	e.GET("/api/chat/messages", chat.Messages)
	e.POST("/api/chat/send", chat.Send)
	e.GET("/api/files", files.ListMine)
	e.GET("/api/files/shared", files.ListShared)
	e.POST("/api/upload", files.Upload)
	e.PUT("/api/files/:id", files.Update)
	e.DELETE("/api/files/:id", files.Delete)
	e.GET("/api/download/:id", files.Download)
	e.GET("/api/users/online", users.OnlineUsers)
	e.POST("/api/utils/format-size", utils.FormatSize)
	e.GET("/api/status", status.Status)

	return &env{e: e, store: st, registry: registry, log: log, blobs: blobs}
}

func (env *env) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *env) doUpload(t *testing.T, userID, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("user_id", userID))
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// registerUser creates an account through the API and returns its id.
func (env *env) registerUser(t *testing.T, name, email, password string) string {
	t.Helper()
	rec := env.doJSON(t, http.MethodPost, "/api/register", map[string]string{
		"name":             name,
		"email":            email,
		"password":         password,
		"confirm_password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	id, ok := user["id"].(string)
	require.True(t, ok)
	return id
}
