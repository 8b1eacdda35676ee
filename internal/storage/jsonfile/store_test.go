package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flex_reviews/internal/domain"
)

const sampleJSON = `[
  {"id": "7453", "listingMapId": "123456", "comment": "great stay", "privateComment": "spotless", "score": {"general": 9.5}},
  {"id": 8932, "listingMapId": "987421", "comment": null}
]`

func newStore(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return New(path)
}

func TestReadAll(t *testing.T) {
	s := newStore(t, sampleJSON)

	records, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "7453", records[0]["id"])
	assert.Equal(t, 8932.0, records[1]["id"])
}

func TestReadAll_MissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.json"))

	_, err := s.ReadAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceIO)
}

func TestReadAll_MalformedJSON(t *testing.T) {
	s := newStore(t, `{"not": "an array"`)

	_, err := s.ReadAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceIO)
}

func TestWriteAllRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "reviews.json"))
	in := []map[string]any{{"id": "1", "comment": "hello"}}

	require.NoError(t, s.WriteAll(context.Background(), in))

	out, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "hello", out[0]["comment"])
}

func TestUpdateApproval(t *testing.T) {
	s := newStore(t, sampleJSON)

	found, err := s.UpdateApproval(context.Background(), "7453", true)
	require.NoError(t, err)
	assert.True(t, found)

	records, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, true, records[0]["approved"])
	// the rest of the record is untouched
	assert.Equal(t, "spotless", records[0]["privateComment"])
	assert.Equal(t, "great stay", records[0]["comment"])
	_, hasFlag := records[1]["approved"]
	assert.False(t, hasFlag)
}

func TestUpdateApproval_NumericID(t *testing.T) {
	s := newStore(t, sampleJSON)

	// the raw record stores id 8932 as a number; canonical ids are strings
	found, err := s.UpdateApproval(context.Background(), "8932", true)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestUpdateApproval_UnknownID(t *testing.T) {
	s := newStore(t, sampleJSON)

	found, err := s.UpdateApproval(context.Background(), "missing", true)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateApproval_CanceledContext(t *testing.T) {
	s := newStore(t, sampleJSON)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.UpdateApproval(ctx, "7453", true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	s := newStore(t, sampleJSON)
	_, err := s.UpdateApproval(context.Background(), "7453", true)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(s.Path()), entries[0].Name())
}
