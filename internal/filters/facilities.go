package filters

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"contentbuild/internal/cms"
)

// FacilityIds joins the facility locator ids of facilities with commas.
func (s *Set) FacilityIds(facilities any) (string, error) {
	list, err := cms.Decode[[]cms.Facility](facilities)
	if err != nil {
		return "", fmt.Errorf("facilityIds: %w", err)
	}
	ids := make([]string, len(list))
	for i, f := range list {
		ids[i] = f.FieldFacilityLocatorAPIID
	}
	return strings.Join(ids, ","), nil
}

// facilityWidgetID converts a locator id such as "vha_402qa" into the id used
// by the facility locator api, "vha_402QA".
func facilityWidgetID(locatorID string) (string, error) {
	parts := strings.Split(locatorID, "_")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: malformed facility locator id %q", ErrInvalidArgument, locatorID)
	}
	return "vha_" + strings.ToUpper(parts[1]), nil
}

// WidgetFacilitiesList builds the JSON object consumed by the facilities list
// widget: each facility's image keyed by its locator api id, with the facility
// entityUrl attached as exported.
func (s *Set) WidgetFacilitiesList(facilities any) (string, error) {
	list, err := cms.Decode[[]cms.Facility](facilities)
	if err != nil {
		return "", fmt.Errorf("widgetFacilitiesList: %w", err)
	}
	raw, err := genericList(facilities)
	if err != nil {
		return "", fmt.Errorf("widgetFacilitiesList: %w", err)
	}
	out := make(map[string]map[string]any, len(list))
	for i, f := range list {
		id, err := facilityWidgetID(f.FieldFacilityLocatorAPIID)
		if err != nil {
			return "", fmt.Errorf("widgetFacilitiesList: %w", err)
		}
		entry := map[string]any{}
		if f.FieldMedia != nil {
			for k, v := range f.FieldMedia.Entity.Image {
				entry[k] = v
			}
		}
		if u, ok := cms.Lookup(raw[i], "entityUrl"); ok {
			entry["entityUrl"] = u
		}
		out[id] = entry
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("widgetFacilitiesList: %w", err)
	}
	return string(encoded), nil
}

// WidgetFacilityDetail returns the JSON encoded locator api id of a single
// facility.
func (s *Set) WidgetFacilityDetail(facility string) (string, error) {
	id, err := facilityWidgetID(facility)
	if err != nil {
		return "", fmt.Errorf("widgetFacilityDetail: %w", err)
	}
	return `"` + id + `"`, nil
}

// SortMainFacility orders facilities by ascending numeric entityId. It
// returns nil for nil input.
func (s *Set) SortMainFacility(items any) any {
	list, ok := cms.Slice(items)
	if !ok || items == nil {
		return nil
	}
	out := append([]any(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := cms.Lookup(out[i], "entityId")
		b, _ := cms.Lookup(out[j], "entityId")
		af, _ := toFloat(a)
		bf, _ := toFloat(b)
		return af < bf
	})
	return out
}

// RegionBasePath returns the first segment of a region entity path:
// "/pittsburgh-health-care/stories" gives "pittsburgh-health-care".
func (s *Set) RegionBasePath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// HealthServiceApiId returns fieldHealthServiceApiId of a service taxonomy
// term, or nil.
func (s *Set) HealthServiceApiId(serviceTaxonomy any) any {
	v, _ := cms.Lookup(serviceTaxonomy, "fieldHealthServiceApiId")
	return v
}

// FeatureFieldRegionalHealthService returns the entity of a node's regional
// health service, or nil when the node has none. Clinical health services
// are never consulted.
func (s *Set) FeatureFieldRegionalHealthService(entity any) any {
	v, ok := cms.Lookup(entity, "fieldRegionalHealthService")
	if !ok || !truthy(v) {
		return nil
	}
	e, _ := cms.Lookup(v, "entity")
	return e
}

// Phone is the normalised form of a CMS phone number.
type Phone struct {
	Label     string `json:"label,omitempty"`
	Number    string `json:"number"`
	Extension string `json:"extension,omitempty"`
}

var phoneText = regexp.MustCompile(`(?i)^\s*(?:([^:]*?):\s*)?([\d\-\.\(\) ]*\d)\s*(?:(?:x|ext\.?|extension)\s*(\d+))?\s*$`)

// PhoneNumberArrayToObject normalises a list of phone numbers into
// {label, number, extension} objects. Elements are either strings of the form
// "Label: 555-555-5555 x123" or phone paragraphs carrying fieldPhoneLabel,
// fieldPhoneNumber and fieldPhoneExtension on their entity. Unrecognised
// elements are skipped.
func (s *Set) PhoneNumberArrayToObject(phones any) []Phone {
	list, _ := cms.Slice(phones)
	out := make([]Phone, 0, len(list))
	for _, item := range list {
		switch t := item.(type) {
		case string:
			m := phoneText.FindStringSubmatch(t)
			if m == nil {
				s.log.Debug("unrecognised phone number")
				continue
			}
			out = append(out, Phone{Label: strings.TrimSpace(m[1]), Number: strings.TrimSpace(m[2]), Extension: m[3]})
		default:
			src := item
			if e, ok := cms.Lookup(item, "entity"); ok {
				src = e
			}
			num, _ := cms.Lookup(src, "fieldPhoneNumber")
			if toString(num) == "" {
				continue
			}
			label, _ := cms.Lookup(src, "fieldPhoneLabel")
			ext, _ := cms.Lookup(src, "fieldPhoneExtension")
			out = append(out, Phone{Label: toString(label), Number: toString(num), Extension: toString(ext)})
		}
	}
	return out
}
