// Package cms describes the content entity shapes exported by the CMS that the
// template filters operate on, and moves values between the generic form the
// templating engine hands around and those typed shapes.
package cms

// URL is the url object attached to menu links and breadcrumbs.
type URL struct {
	Path   string `json:"path"`
	Routed bool   `json:"routed"`
}

// Link is one node of a menu link tree. Links nest to at most a handful of
// levels in practice. Filters walk menus in their generic form so that fields
// not declared here reach templates unchanged.
type Link struct {
	Label       string         `json:"label,omitempty"`
	Text        string         `json:"text,omitempty"`
	Description string         `json:"description,omitempty"`
	Expanded    bool           `json:"expanded,omitempty"`
	URL         URL            `json:"url"`
	Entity      map[string]any `json:"entity,omitempty"`
	Links       []Link         `json:"links,omitempty"`
}

// Breadcrumb is a single entry of an entity breadcrumb trail.
type Breadcrumb struct {
	URL  URL    `json:"url"`
	Text string `json:"text"`
}

// EntityURL is the entityUrl block carried by every routed node.
type EntityURL struct {
	Path       string       `json:"path"`
	Breadcrumb []Breadcrumb `json:"breadcrumb,omitempty"`
}

// Image is the image derivative attached to a media entity.
type Image struct {
	Alt    string `json:"alt,omitempty"`
	Title  string `json:"title,omitempty"`
	URL    string `json:"url,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Media is the fieldMedia reference of a facility.
type Media struct {
	Entity struct {
		Image map[string]any `json:"image"`
	} `json:"entity"`
}

// Facility is the subset of a health care facility node used by the facility
// filters.
type Facility struct {
	EntityID                  string     `json:"entityId,omitempty"`
	Title                     string     `json:"title,omitempty"`
	FieldFacilityLocatorAPIID string     `json:"fieldFacilityLocatorApiId"`
	FieldMedia                *Media     `json:"fieldMedia,omitempty"`
	EntityURL                 *EntityURL `json:"entityUrl,omitempty"`
}

// Metatag is one entityMetatags entry.
type Metatag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
