package filters

import (
	"regexp"
	"strings"

	"contentbuild/internal/cms"

	"github.com/dlclark/regexp2"
)

// IsPage reports whether path contains page.
func (s *Set) IsPage(path, page string) bool {
	return strings.Contains(path, page)
}

var (
	rootPage = regexp.MustCompile(`^/[\w-]+$`)
	// facilityRootPage matches the Pittsburgh system page and its direct
	// content pages, excluding the listing sections.
	facilityRootPage = regexp2.MustCompile(
		`^(?:/pittsburgh-health-care)+$|^(?:/pittsburgh-health-care)/((?!stories|events|locations|press-releases|health-services|jobs-careers).)*$`,
		regexp2.ECMAScript)
)

// IsRootPage reports whether path is a top level page.
func (s *Set) IsRootPage(path string) bool {
	if rootPage.MatchString(path) {
		return true
	}
	ok, err := facilityRootPage.MatchString(path)
	if err != nil {
		s.log.Debug("isRootPage match failed")
		return false
	}
	return ok
}

// IsAboutItem reports whether path is one of the entries of an about menu.
// Outreach pages never are.
func (s *Set) IsAboutItem(menuArray any, path string) bool {
	if strings.Contains(path, "outreach") {
		return false
	}
	items, _ := cms.Slice(menuArray)
	for _, item := range items {
		if p, ok := cms.Lookup(item, "path"); ok && toString(p) == path {
			return true
		}
	}
	return false
}

// IsPitt reports whether path belongs to the Pittsburgh health care system.
func (s *Set) IsPitt(path string) bool {
	return strings.Contains(path, "pittsburgh-health-care")
}

// IsChildPageOf reports whether the breadcrumb trail of childPageEntityURL
// contains a crumb titled parentPage, ignoring case.
func (s *Set) IsChildPageOf(childPageEntityURL any, parentPage string) bool {
	u, err := cms.Decode[cms.EntityURL](childPageEntityURL)
	if err != nil {
		return false
	}
	for _, b := range u.Breadcrumb {
		if strings.EqualFold(b.Text, parentPage) {
			return true
		}
	}
	return false
}
