package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("PROVIDER NAME,STATE\nMayo Clinic,MN\nCleveland Clinic,OH\n"))
	}))
	defer ts.Close()

	dir := Bootstrap(context.Background(), ts.URL, 5*time.Second, testLogger())
	defer dir.Close()

	require.Equal(t, 2, dir.Len())

	rows, err := dir.Search(context.Background(), "mayo")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MN", rows[0]["STATE"])
}

func TestBootstrapNoURL(t *testing.T) {
	dir := Bootstrap(context.Background(), "", time.Second, testLogger())
	assert.Equal(t, 0, dir.Len())
}

func TestBootstrapServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	dir := Bootstrap(context.Background(), ts.URL, time.Second, testLogger())
	assert.Equal(t, 0, dir.Len())
}

func TestBootstrapUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	dir := Bootstrap(context.Background(), url, time.Second, testLogger())
	assert.Equal(t, 0, dir.Len())
}
