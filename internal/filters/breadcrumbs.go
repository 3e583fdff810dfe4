package filters

import (
	"fmt"

	"contentbuild/internal/cms"
)

const resourcesPath = "/resources"

// DeriveLastBreadcrumbFromPath appends a routed crumb for currentPath titled
// text, or replaces the last crumb with it when replaceLastItem is set. The
// input slice is left untouched.
func (s *Set) DeriveLastBreadcrumbFromPath(breadcrumbs any, text, currentPath string, replaceLastItem bool) ([]cms.Breadcrumb, error) {
	crumbs, err := cms.Decode[[]cms.Breadcrumb](breadcrumbs)
	if err != nil {
		return nil, fmt.Errorf("deriveLastBreadcrumbFromPath: %w", err)
	}
	last := cms.Breadcrumb{URL: cms.URL{Path: currentPath, Routed: true}, Text: text}
	if replaceLastItem && len(crumbs) > 0 {
		crumbs[len(crumbs)-1] = last
		return crumbs, nil
	}
	return append(crumbs, last), nil
}

// DeriveLcBreadcrumbs builds the trail of a learning center page: any existing
// /resources crumb is replaced by an unrouted "Resources and support" crumb,
// followed by the page itself when pageTitle is set.
func (s *Set) DeriveLcBreadcrumbs(breadcrumbs any, text, currentPath string, pageTitle any) ([]cms.Breadcrumb, error) {
	crumbs, err := cms.Decode[[]cms.Breadcrumb](breadcrumbs)
	if err != nil {
		return nil, fmt.Errorf("deriveLcBreadcrumbs: %w", err)
	}
	out := make([]cms.Breadcrumb, 0, len(crumbs)+2)
	for _, c := range crumbs {
		if c.URL.Path != resourcesPath {
			out = append(out, c)
		}
	}
	out = append(out, cms.Breadcrumb{URL: cms.URL{Path: resourcesPath}, Text: "Resources and support"})
	if truthy(pageTitle) {
		out = append(out, cms.Breadcrumb{URL: cms.URL{Path: currentPath, Routed: true}, Text: text})
	}
	return out, nil
}
