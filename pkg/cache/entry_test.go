package cache

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryEncodeDecodeRoundTrip(t *testing.T) {
	e := &Entry{
		Status:       200,
		ETag:         `"v1"`,
		LastModified: "Tue, 02 Jan 2024 03:04:05 GMT",
		StoredAt:     1700000000000,
		Headers:      http.Header{"Content-Type": {"application/json"}, "Link": {"<next>; rel=\"next\""}},
		Body:         []byte(`{"id":1}`),
		TTLCategory:  "merge_request",
	}

	raw, err := e.encode()
	require.NoError(t, err)

	got, err := decode(raw)
	require.NoError(t, err)

	assert.Equal(t, e.Status, got.Status)
	assert.Equal(t, e.ETag, got.ETag)
	assert.Equal(t, e.LastModified, got.LastModified)
	assert.Equal(t, e.StoredAt, got.StoredAt)
	assert.Equal(t, e.Body, got.Body)
	assert.Equal(t, e.TTLCategory, got.TTLCategory)
	assert.Equal(t, "application/json", got.Headers.Get("Content-Type"))
	assert.Empty(t, got.Headers.Get(ttlCategoryHeader), "synthetic ttl header must not leak to callers")
}

func TestDecodeTruncatedReturnsError(t *testing.T) {
	e := &Entry{Status: 200, Body: []byte("hello")}
	raw, err := e.encode()
	require.NoError(t, err)

	_, err = decode(raw[:len(raw)-3])
	assert.Error(t, err)
}

func TestDecodeBadVersionReturnsError(t *testing.T) {
	_, err := decode([]byte{99, 0, 0})
	assert.Error(t, err)
}

func TestHasValidator(t *testing.T) {
	assert.True(t, (&Entry{ETag: `"v1"`}).HasValidator())
	assert.True(t, (&Entry{LastModified: "x"}).HasValidator())
	assert.False(t, (&Entry{}).HasValidator())
}
