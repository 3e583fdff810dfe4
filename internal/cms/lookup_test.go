package cms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestLookupNestedPaths(t *testing.T) {
	doc := decodeJSON(t, `{"entity":{"fieldTopics":[{"entity":{"name":"Housing"}},{"entity":{"name":"Burial"}}]}}`)

	got, ok := Lookup(doc, "entity.fieldTopics[1].entity.name")
	require.True(t, ok)
	assert.Equal(t, "Burial", got)

	got, ok = Lookup(doc, `entity["fieldTopics"].0.entity.name`)
	require.True(t, ok)
	assert.Equal(t, "Housing", got)
}

func TestLookupMissing(t *testing.T) {
	doc := decodeJSON(t, `{"a":[1,2]}`)
	for _, path := range []string{"b", "a[2]", "a.x", "a[0].c"} {
		_, ok := Lookup(doc, path)
		assert.False(t, ok, path)
	}
	_, ok := Lookup(nil, "a")
	assert.False(t, ok)
}

func TestLookupTypedMapsAndSlices(t *testing.T) {
	doc := map[string][]string{"tags": {"a", "b"}}
	got, ok := Lookup(doc, "tags[1]")
	require.True(t, ok)
	assert.Equal(t, "b", got)
}

func TestDecodeAndToGeneric(t *testing.T) {
	raw := decodeJSON(t, `[{"url":{"path":"/a"},"links":[{"url":{"path":"/a/b"}}]}]`)
	links, err := Decode[[]Link](raw)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "/a/b", links[0].Links[0].URL.Path)

	back, err := ToGeneric(links[0].Links[0])
	require.NoError(t, err)
	m, ok := back.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"path": "/a/b", "routed": false}, m["url"])
}

func TestSlice(t *testing.T) {
	s, ok := Slice([]map[string]any{{"a": 1}})
	require.True(t, ok)
	assert.Len(t, s, 1)

	_, ok = Slice("nope")
	assert.False(t, ok)
}
