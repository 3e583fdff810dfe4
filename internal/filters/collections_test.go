package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(t *testing.T, items []any, path string) []any {
	t.Helper()
	s := New(Options{})
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = s.GetValueFromObjPath(it, path)
	}
	return out
}

func TestSliceArrayFromStart(t *testing.T) {
	s := New(Options{})
	arr := []any{"a", "b", "c"}

	assert.Equal(t, []any{"b", "c"}, s.SliceArrayFromStart(arr, 1))
	assert.Equal(t, []any{"c"}, s.SliceArrayFromStart(arr, -1))
	assert.Equal(t, []any{"a", "b", "c"}, s.SliceArrayFromStart(arr, -10))
	assert.Equal(t, []any{}, s.SliceArrayFromStart(arr, 5))
}

func TestSortObjectsBy(t *testing.T) {
	s := New(Options{})
	entities := generic(t, `[
		{"name": "b", "weight": 2},
		{"name": "none"},
		{"name": "a", "weight": 10},
		{"name": "c", "weight": 1}
	]`)

	sorted := s.SortObjectsBy(entities, "weight")
	assert.Equal(t, []any{"c", "b", "a", "none"}, titles(t, sorted, "name"))

	sorted = s.SortObjectsBy(entities, "name")
	assert.Equal(t, []any{"a", "b", "c", "none"}, titles(t, sorted, "name"))
}

func TestObjectPathFilters(t *testing.T) {
	s := New(Options{})
	obj := generic(t, `{"entity": {"fieldTopics": [{"entity": {"name": "Health"}}]}}`)

	assert.Equal(t, "Health", s.GetValueFromObjPath(obj, "entity.fieldTopics[0].entity.name"))
	assert.Nil(t, s.GetValueFromObjPath(obj, "entity.missing"))

	list := []any{obj, map[string]any{"title": "second"}}
	assert.Equal(t, "second", s.GetValueFromArrayObjPath(list, 1, "title"))
	assert.Nil(t, s.GetValueFromArrayObjPath(list, 2, "title"))
}

func TestSortEntityMetatags(t *testing.T) {
	s := New(Options{})
	tags := generic(t, `[
		{"key": "title", "value": "t"},
		{"key": "description", "value": "d"},
		{"key": "Image", "value": "i"}
	]`)

	sorted, ok := s.SortEntityMetatags(tags).([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"description", "Image", "title"}, titles(t, sorted, "key"))
	assert.Nil(t, s.SortEntityMetatags(nil))
}

func TestFormatVaParagraphs(t *testing.T) {
	s := New(Options{})
	paragraphs := generic(t, `[
		{"entity": {"fieldSectionHeader": "Other topics and questions"}},
		{"entity": {"fieldSectionHeader": "Health care"}},
		{"entity": {"fieldSectionHeader": "VA account and profile"}},
		{"entity": {"fieldSectionHeader": "Disability"}}
	]`)

	got := s.FormatVaParagraphs(paragraphs)
	assert.Equal(t, []any{
		"VA account and profile", "Disability", "Health care", "Other topics and questions",
	}, titles(t, got, "entity.fieldSectionHeader"))

	got = s.FormatVaParagraphs(generic(t, `[{"entity": {"fieldSectionHeader": "Zebra"}}, {"entity": {"fieldSectionHeader": "Apple"}}]`))
	assert.Equal(t, []any{"Apple", "Zebra"}, titles(t, got, "entity.fieldSectionHeader"))
}

func TestGetTagsList(t *testing.T) {
	s := New(Options{})
	fieldTags := generic(t, `{"entity": {
		"fieldTopics": [{"entity": {"name": "Payments"}}, {"entity": {"name": "Claims"}}],
		"fieldAudienceBeneficiares": {"entity": {"name": "Veterans"}},
		"fieldNonBeneficiares": null
	}}`)

	got := s.GetTagsList(fieldTags)
	assert.Equal(t, []any{"Claims", "Payments", "Veterans"}, titles(t, got, "name"))
	assert.Equal(t, []any{"Topics", "Topics", "Audience"}, titles(t, got, "categoryLabel"))
	assert.Empty(t, s.GetTagsList(generic(t, `{"entity": {}}`)))
}

func TestDeriveCLPTotalSections(t *testing.T) {
	s := New(Options{})

	assert.Equal(t, int64(10), s.DeriveCLPTotalSections(10, true, map[string]any{}, true, true, true, true, []any{"x"}))
	assert.Equal(t, int64(8), s.DeriveCLPTotalSections(10, nil, true, true, true, false, true, []any{"x"}))
	assert.Equal(t, int64(3), s.DeriveCLPTotalSections(10, nil, nil, nil, nil, nil, nil, nil))
}

func TestFeatureSingleValueFieldLink(t *testing.T) {
	link := []any{map[string]any{"url": map[string]any{"path": "/x"}}}

	off := New(Options{})
	assert.Equal(t, link, off.FeatureSingleValueFieldLink(link))

	on := New(Options{CMSFlags: map[string]bool{FlagSingleValueFieldLink: true}})
	assert.Equal(t, link[0], on.FeatureSingleValueFieldLink(link))
	assert.Nil(t, on.FeatureSingleValueFieldLink(nil))
}
