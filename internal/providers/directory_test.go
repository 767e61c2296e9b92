package providers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prescottcassy/insurance-assistant/internal/dataset"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func providerTable(n int) *dataset.Table {
	t := &dataset.Table{Headers: []string{"PROVIDER NAME", "STATE", "SPECIALTY"}}
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, dataset.Row{
			"PROVIDER NAME": fmt.Sprintf("Clinic %d", i),
			"STATE":         "OH",
			"SPECIALTY":     "Cardiology",
		})
	}
	return t
}

func TestLoadAndSearch(t *testing.T) {
	ctx := context.Background()
	dir, err := Load(ctx, providerTable(3), testLogger())
	require.NoError(t, err)
	defer dir.Close()

	assert.Equal(t, 3, dir.Len())

	rows, err := dir.Search(ctx, "clinic 1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Clinic 1", rows[0]["PROVIDER NAME"])
}

func TestSearchCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	dir, err := Load(ctx, providerTable(2), testLogger())
	require.NoError(t, err)
	defer dir.Close()

	rows, err := dir.Search(ctx, "CARDIOLOGY")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSearchCapsResults(t *testing.T) {
	ctx := context.Background()
	dir, err := Load(ctx, providerTable(9), testLogger())
	require.NoError(t, err)
	defer dir.Close()

	rows, err := dir.Search(ctx, "clinic")
	require.NoError(t, err)
	assert.Len(t, rows, MaxResults)
}

func TestSearchNoMatch(t *testing.T) {
	ctx := context.Background()
	dir, err := Load(ctx, providerTable(2), testLogger())
	require.NoError(t, err)
	defer dir.Close()

	rows, err := dir.Search(ctx, "dermatology")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSearchEmptyQuery(t *testing.T) {
	ctx := context.Background()
	dir, err := Load(ctx, providerTable(2), testLogger())
	require.NoError(t, err)
	defer dir.Close()

	rows, err := dir.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestEmptyDirectory(t *testing.T) {
	dir := Empty(testLogger())

	rows, err := dir.Search(context.Background(), "clinic")
	assert.NoError(t, err)
	assert.Nil(t, rows)
	assert.Equal(t, 0, dir.Len())
	assert.NoError(t, dir.Close())
}

func TestLoadNilTable(t *testing.T) {
	dir, err := Load(context.Background(), nil, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, dir.Len())
}

func TestNilDirectory(t *testing.T) {
	var dir *Directory

	rows, err := dir.Search(context.Background(), "clinic")
	assert.NoError(t, err)
	assert.Nil(t, rows)
	assert.Equal(t, 0, dir.Len())
	assert.NoError(t, dir.Close())
}
