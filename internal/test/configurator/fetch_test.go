package configurator_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"custom-case-backend/internal/configurator"
)

func TestHTTPImageFetcher_FetchImage(t *testing.T) {
	img := solidImage(6, 9, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	fetcher := configurator.NewHTTPImageFetcher()
	fetched, err := fetcher.FetchImage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 9), fetched.Bounds())
}

func TestHTTPImageFetcher_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := configurator.NewHTTPImageFetcher()
	_, err := fetcher.FetchImage(context.Background(), server.URL)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestHTTPImageFetcher_NotAnImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer server.Close()

	fetcher := configurator.NewHTTPImageFetcher()
	_, err := fetcher.FetchImage(context.Background(), server.URL)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestHTTPImageFetcher_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	fetcher := configurator.NewHTTPImageFetcher()
	_, err := fetcher.FetchImage(ctx, server.URL)
	assert.Error(t, err)
}
