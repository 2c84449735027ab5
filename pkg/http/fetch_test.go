package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>upstream down</html>")
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := ReadBody(srv.Client(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.Status)
	assert.False(t, resp.OK())
	assert.Equal(t, "<html>upstream down</html>", string(resp.Body))
	assert.Equal(t, "<html>...", resp.Snippet(6))
}

func TestReadBody_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)

	_, err = ReadBody(http.DefaultClient, req)
	assert.Error(t, err)
}

func TestReadBody_Limit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("a", MaxBodySize+100))
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := ReadBody(srv.Client(), req)
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Len(t, resp.Body, MaxBodySize)
}
