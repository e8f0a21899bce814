package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHTTPClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"slow":"down"}`))
	}))
	defer srv.Close()

	client := NewHTTPClient()
	code, body, headers, err := client.Get(context.Background(), srv.URL, http.Header{"Accept": []string{"application/json"}})

	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.JSONEq(t, `{"slow":"down"}`, string(body))
	assert.Equal(t, "3", headers.Get("Retry-After"))
}

func TestHTTPClient_GetCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := NewHTTPClient().Get(ctx, srv.URL, nil)
	assert.Error(t, err)
}

func TestHTTPClient_SetClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClientI(ctrl)
	mock.EXPECT().Get(gomock.Any(), "http://example", gomock.Any()).Return(http.StatusOK, []byte("ok"), nil, nil)

	client := NewHTTPClient()
	client.SetClient(mock)

	code, body, _, err := client.Get(context.Background(), "http://example", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", string(body))
}
