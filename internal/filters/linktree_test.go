package filters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentbuild/internal/cms"
)

const menuJSON = `[
  {"label": "Top", "url": {"path": "/top"}, "links": [
    {"label": "Second", "url": {"path": "/top/second"}, "links": [
      {"label": "Third", "url": {"path": "/top/second/third"}, "links": [
        {"label": "Fourth", "url": {"path": "/top/second/third/fourth"}, "links": [
          {"label": "Fifth", "url": {"path": "/deep/five"}, "links": [
            {"label": "Sixth", "url": {"path": "/deep/six"}}
          ]}
        ]}
      ]}
    ]},
    {"label": "Group", "url": {"path": ""}, "links": [
      {"label": "Grouped", "url": {"path": "/top/grouped"}}
    ]}
  ]},
  {"label": "Other", "url": {"path": "/other"}}
]`

func depthOf(t *testing.T, raw string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestFindCurrentPathDepth(t *testing.T) {
	s := New(Options{})
	menu := generic(t, menuJSON)

	got, err := s.FindCurrentPathDepth(menu, "/other")
	require.NoError(t, err)
	assert.JSONEq(t, `{"depth": 1}`, got)

	got, err = s.FindCurrentPathDepth(menu, "/top/second")
	require.NoError(t, err)
	assert.JSONEq(t, `{"depth": 2}`, got)

	got, err = s.FindCurrentPathDepth(menu, "/top/second/third")
	require.NoError(t, err)
	res := depthOf(t, got)
	assert.Equal(t, 3.0, res["depth"])
	assert.Equal(t, "Second", res["links"].(map[string]any)["label"])

	got, err = s.FindCurrentPathDepth(menu, "/deep/five")
	require.NoError(t, err)
	res = depthOf(t, got)
	assert.Equal(t, 5.0, res["depth"])
	assert.Equal(t, "Fourth", res["links"].(map[string]any)["label"])

	got, err = s.FindCurrentPathDepth(menu, "/deep/six")
	require.NoError(t, err)
	assert.Equal(t, "false", got, "paths below five levels are not searched")

	got, err = s.FindCurrentPathDepth(menu, "/missing")
	require.NoError(t, err)
	assert.Equal(t, "false", got)
}

func TestFindCurrentPathDepthRecursive(t *testing.T) {
	s := New(Options{})
	menu := generic(t, menuJSON)

	got, err := s.FindCurrentPathDepthRecursive(menu, "/deep/six")
	require.NoError(t, err)
	res := depthOf(t, got)
	assert.Equal(t, 6.0, res["depth"])
	assert.Equal(t, "Fifth", res["parent"].(map[string]any)["label"])
	assert.Equal(t, "Sixth", res["link"].(map[string]any)["label"])

	got, err = s.FindCurrentPathDepthRecursive(menu, "/top")
	require.NoError(t, err)
	res = depthOf(t, got)
	assert.Equal(t, 1.0, res["depth"])
	assert.NotContains(t, res, "parent")
}

func TestFindCurrentPathDepthRecursiveSkipsDecorativeParent(t *testing.T) {
	s := New(Options{})

	got, err := s.FindCurrentPathDepthRecursive(generic(t, menuJSON), "/top/grouped")
	require.NoError(t, err)
	res := depthOf(t, got)
	assert.Equal(t, 2.0, res["depth"])
	assert.Equal(t, "Top", res["parent"].(map[string]any)["label"])
	assert.Equal(t, "Grouped", res["link"].(map[string]any)["label"])
}

func TestFindCurrentPathDepthRecursiveNotFound(t *testing.T) {
	s := New(Options{})

	got, err := s.FindCurrentPathDepthRecursive(generic(t, menuJSON), "/nope")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)

	got, err = s.FindCurrentPathDepthRecursive(nil, "/nope")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

const richMenuJSON = `[
  {"text": "A", "url": {"path": "/a", "routed": false}, "links": [
    {"text": "B", "url": {"path": "/a/b", "routed": false}, "entity": {"id": 7}, "weight": 3, "links": [
      {"text": "C", "url": {"path": "/a/b/c", "routed": true}, "entity": {"id": 8}}
    ]}
  ]}
]`

func TestLinkTreeFiltersKeepMenuFields(t *testing.T) {
	s := New(Options{})
	menu := generic(t, richMenuJSON)

	got, err := s.FindCurrentPathDepth(menu, "/a/b/c")
	require.NoError(t, err)
	assert.JSONEq(t, `{"depth": 3, "links": {
	  "text": "B", "url": {"path": "/a/b", "routed": false}, "entity": {"id": 7}, "weight": 3,
	  "links": [{"text": "C", "url": {"path": "/a/b/c", "routed": true}, "entity": {"id": 8}}]
	}}`, got)

	got, err = s.FindCurrentPathDepthRecursive(menu, "/a/b/c")
	require.NoError(t, err)
	res := depthOf(t, got)
	parent := res["parent"].(map[string]any)
	assert.Equal(t, "B", parent["text"])
	assert.Equal(t, map[string]any{"id": 7.0}, parent["entity"])
	assert.Equal(t, map[string]any{"path": "/a/b", "routed": false}, parent["url"])
	link := res["link"].(map[string]any)
	assert.Equal(t, "C", link["text"])
	assert.Equal(t, map[string]any{"id": 8.0}, link["entity"])
}

func TestLinkTreeFiltersAcceptTypedMenus(t *testing.T) {
	s := New(Options{})
	menu := []cms.Link{{Text: "Top", URL: cms.URL{Path: "/top"}, Links: []cms.Link{
		{Text: "Child", URL: cms.URL{Path: "/top/child", Routed: true}},
	}}}

	got, err := s.FindCurrentPathDepthRecursive(menu, "/top/child")
	require.NoError(t, err)
	res := depthOf(t, got)
	assert.Equal(t, 2.0, res["depth"])
	assert.Equal(t, "Top", res["parent"].(map[string]any)["text"])

	_, err = s.FindCurrentPathDepth("not a menu", "/top")
	require.ErrorIs(t, err, ErrInvalidArgument)
}
