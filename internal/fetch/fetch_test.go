package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(retries uint64) *HTTPFetcher {
	return NewHTTP(nil, Options{Timeout: 5 * time.Second, Retries: retries, RetryWait: time.Millisecond})
}

func TestFetchText_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pandora-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	f := NewHTTP(srv.Client(), Options{UserAgent: "pandora-test"})
	got, err := f.FetchText(context.Background(), srv.URL+"/a.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestFetchJSON_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"teams":["acme","beta"]}`))
	}))
	defer srv.Close()

	var v struct {
		Teams []string `json:"teams"`
	}
	require.NoError(t, newTestFetcher(0).FetchJSON(context.Background(), srv.URL, &v))
	assert.Equal(t, []string{"acme", "beta"}, v.Teams)
}

func TestFetchJSON_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var v map[string]any
	err := newTestFetcher(0).FetchJSON(context.Background(), srv.URL, &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse JSON")
}

func TestFetch_NotFoundIsPermanent(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestFetcher(1).FetchText(context.Background(), srv.URL+"/missing.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits), "4xx must not be retried")
}

func TestFetch_RetriesServerErrorOnce(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("second time lucky"))
	}))
	defer srv.Close()

	got, err := newTestFetcher(1).FetchText(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "second time lucky", got)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestFetch_GivesUpAfterRetries(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestFetcher(1).FetchText(context.Background(), srv.URL)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.StatusCode)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{URL: "https://x/y", StatusCode: 404}
	assert.Equal(t, "GET https://x/y: HTTP 404 Not Found", err.Error())
}
