package upload

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadReturnsHostedLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Client-ID test-client", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "banner.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"link":"https://i.imgur.com/abc.png"},"success":true}`))
	}))
	defer srv.Close()

	c := NewClientWithEndpoint("test-client", srv.URL)
	link, err := c.Upload(context.Background(), "banner.png", strings.NewReader("fake-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://i.imgur.com/abc.png", link)
}

func TestUploadRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClientWithEndpoint("test-client", srv.URL)
	_, err := c.Upload(context.Background(), "banner.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestUploadHostFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClientWithEndpoint("test-client", srv.URL)
	_, err := c.Upload(context.Background(), "banner.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUploadFail)
}

func TestUploadHostReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"link":""},"success":false}`))
	}))
	defer srv.Close()

	c := NewClientWithEndpoint("test-client", srv.URL)
	_, err := c.Upload(context.Background(), "banner.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUploadFail)
}
