package httpstore_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"pathsync/core/backend"
	"pathsync/core/backend/backendtest"
	"pathsync/core/backend/httpstore"
	"pathsync/core/backend/memory"
	"pathsync/core/backend/mocks"
	"pathsync/core/codec"
	"pathsync/core/middleware/auth"
	"pathsync/core/path"
	"pathsync/feature/store"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// serve starts a store server over b and returns its base URL.
func serve(t *testing.T, b backend.Backend[string], apiKey string) string {
	t.Helper()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})
	app.Use(auth.New(auth.Config{ApiKey: apiKey}))
	require.NoError(t, store.NewFeature(b, nil).Load(app))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func TestBackendContract(t *testing.T) {
	backendtest.Run(t, func(t *testing.T) backend.Backend[string] {
		url := serve(t, memory.New[string](), "secret")
		return httpstore.New(url, "secret", codec.String())
	})
}

func TestJSONItems(t *testing.T) {
	type doc struct {
		Title string `json:"title"`
	}

	ctx := context.Background()
	server := memory.New[string]()
	client := httpstore.New(serve(t, server, ""), "", codec.JSON[doc]())

	p := path.NewFilePath(path.NewFolderPath("docs"), "readme")
	_, _, err := backend.Insert(ctx, client, p, doc{Title: "Read me"})
	require.NoError(t, err)

	raw, found, err := server.Get(ctx, p)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"title":"Read me"}`, raw)

	got, found, err := client.Get(ctx, p)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, doc{Title: "Read me"}, got)
}

func TestUnauthorized(t *testing.T) {
	url := serve(t, memory.New[string](), "secret")
	client := httpstore.New(url, "wrong", codec.String())

	_, found, err := client.Get(context.Background(), path.NewFilePath(path.Root(), "item"))
	require.Error(t, err)
	assert.False(t, found)

	var apiErr *httpstore.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fiber.StatusUnauthorized, apiErr.Status)
}

func TestBackendFailureIsNotAbsence(t *testing.T) {
	failing := new(mocks.Backend)
	failing.On("Get", mock.Anything, mock.Anything).Return("", false, errors.New("disk on fire"))
	failing.On("List", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("disk on fire"))

	client := httpstore.New(serve(t, failing, ""), "", codec.String())
	ctx := context.Background()

	_, found, err := client.Get(ctx, path.NewFilePath(path.Root(), "item"))
	require.Error(t, err)
	assert.False(t, found)

	var apiErr *httpstore.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fiber.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, store.CodeBackendError, apiErr.Code)
	assert.Contains(t, apiErr.Message, "disk on fire")

	_, err = client.List(ctx, path.Recursive, path.Root())
	assert.ErrorAs(t, err, &apiErr)
}

func TestUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	url := "http://" + ln.Addr().String()
	require.NoError(t, ln.Close())

	client := httpstore.New(url, "", codec.String())
	_, found, err := client.Get(context.Background(), path.NewFilePath(path.Root(), "item"))
	assert.Error(t, err)
	assert.False(t, found)
}
