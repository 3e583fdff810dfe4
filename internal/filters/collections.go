package filters

import (
	"sort"

	"contentbuild/internal/cms"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SliceArrayFromStart returns the elements of arr from startIndex on. A
// negative index counts from the end.
func (s *Set) SliceArrayFromStart(arr any, startIndex any) []any {
	list, _ := cms.Slice(arr)
	start, _ := toInt(startIndex)
	n := int64(len(list))
	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	}
	if start >= n {
		return []any{}
	}
	return append([]any(nil), list[start:]...)
}

// SortObjectsBy returns a copy of entities stably sorted by the value at path.
// Entities lacking the path sort last.
func (s *Set) SortObjectsBy(entities any, path string) []any {
	list, _ := cms.Slice(entities)
	out := append([]any(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := cms.Lookup(out[i], path)
		b, bok := cms.Lookup(out[j], path)
		return compareValues(a, b, aok, bok) < 0
	})
	return out
}

// GetValueFromObjPath resolves path against obj; nil when it does not resolve.
func (s *Set) GetValueFromObjPath(obj any, path string) any {
	v, _ := cms.Lookup(obj, path)
	return v
}

// GetValueFromArrayObjPath resolves path against entities[index].
func (s *Set) GetValueFromArrayObjPath(entities any, index any, path string) any {
	list, _ := cms.Slice(entities)
	i, ok := toInt(index)
	if !ok || i < 0 || i >= int64(len(list)) {
		return nil
	}
	v, _ := cms.Lookup(list[i], path)
	return v
}

// SortEntityMetatags orders metatags by key using locale-aware collation.
func (s *Set) SortEntityMetatags(items any) any {
	list, ok := cms.Slice(items)
	if !ok || items == nil {
		return nil
	}
	out := append([]any(nil), list...)
	c := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := cms.Lookup(out[i], "key")
		b, _ := cms.Lookup(out[j], "key")
		return c.CompareString(toString(a), toString(b)) < 0
	})
	return out
}

// Section headers pinned to the start and end of the VA paragraph list.
const (
	firstSectionHeader = "VA account and profile"
	lastSectionHeader  = "Other topics and questions"
)

// FormatVaParagraphs orders Q&A section paragraphs: the account section first,
// the catch-all section last and the rest alphabetically by header. Missing
// pinned sections are omitted.
func (s *Set) FormatVaParagraphs(vaParagraphs any) []any {
	list, _ := cms.Slice(vaParagraphs)
	var first, last any
	others := make([]any, 0, len(list))
	for _, p := range list {
		h, _ := cms.Lookup(p, "entity.fieldSectionHeader")
		switch toString(h) {
		case firstSectionHeader:
			if first == nil {
				first = p
			}
		case lastSectionHeader:
			if last == nil {
				last = p
			}
		default:
			others = append(others, p)
		}
	}
	sort.SliceStable(others, func(i, j int) bool {
		a, aok := cms.Lookup(others[i], "entity.fieldSectionHeader")
		b, bok := cms.Lookup(others[j], "entity.fieldSectionHeader")
		return compareValues(a, b, aok, bok) < 0
	})
	out := make([]any, 0, len(list))
	if first != nil {
		out = append(out, first)
	}
	out = append(out, others...)
	if last != nil {
		out = append(out, last)
	}
	return out
}

// GetTagsList flattens the topic and audience tags of a fieldTags reference
// into one list sorted by name. Each tag gains a categoryLabel of "Topics" or
// "Audience".
func (s *Set) GetTagsList(fieldTags any) []any {
	var tags []any
	topics, _ := cms.Lookup(fieldTags, "entity.fieldTopics")
	topicList, _ := cms.Slice(topics)
	for _, t := range topicList {
		e, _ := cms.Lookup(t, "entity")
		tags = append(tags, labelled(e, "Topics"))
	}
	for _, field := range []string{"entity.fieldAudienceBeneficiares.entity", "entity.fieldNonBeneficiares.entity"} {
		if e, ok := cms.Lookup(fieldTags, field); ok && e != nil {
			tags = append(tags, labelled(e, "Audience"))
		}
	}
	return s.SortObjectsBy(tags, "name")
}

func labelled(entity any, category string) map[string]any {
	out := map[string]any{}
	if m, ok := entity.(map[string]any); ok {
		for k, v := range m {
			out[k] = v
		}
	}
	out["categoryLabel"] = category
	return out
}

// DeriveCLPTotalSections counts the sections a campaign landing page renders:
// maxSections less one for every panel that is switched off, and one more when
// there are no benefit categories.
func (s *Set) DeriveCLPTotalSections(maxSections any, video, spotlight, stories, resources, events, faq, benefitCategories any) int64 {
	total, _ := toInt(maxSections)
	for _, panel := range []any{video, spotlight, stories, resources, events, faq} {
		if !truthy(panel) {
			total--
		}
	}
	if isEmpty(benefitCategories) {
		total--
	}
	return total
}

// FeatureSingleValueFieldLink unwraps a single-value field link when the CMS
// has switched fieldLink to a single value.
func (s *Set) FeatureSingleValueFieldLink(fieldLink any) any {
	if !truthy(fieldLink) || !s.cmsFlags[FlagSingleValueFieldLink] {
		return fieldLink
	}
	if list, ok := cms.Slice(fieldLink); ok {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return fieldLink
}
