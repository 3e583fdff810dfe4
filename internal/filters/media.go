package filters

import (
	"net/url"
	"regexp"
	"strings"
)

// cmsFileHosts are the CMS origins whose uploaded files are mirrored onto the
// site under /img and /files.
var cmsFileHosts = []string{
	"http://va-gov-cms.lndo.site/sites/default/files",
	"http://dev.cms.va.gov/sites/default/files",
	"http://staging.cms.va.gov/sites/default/files",
	"http://prod.cms.va.gov/sites/default/files",
	"https://prod.cms.va.gov/sites/default/files",
	"http://cms.va.gov/sites/default/files",
	"https://cms.va.gov/sites/default/files",
}

var (
	imageHref    = regexp.MustCompile(`href="(.*?)(png|jpg|jpeg|svg|gif)"`)
	documentHref = regexp.MustCompile(`href="(.*?)(doc|docx|pdf|txt)"`)
)

// DrupalToVaPath rewrites links to CMS hosted files inside href attributes so
// they point at the copies served by the site.
func (s *Set) DrupalToVaPath(content any) any {
	str, ok := content.(string)
	if !ok || str == "" {
		return content
	}
	str = imageHref.ReplaceAllStringFunc(str, func(m string) string { return rewriteHosts(m, "/img") })
	return documentHref.ReplaceAllStringFunc(str, func(m string) string { return rewriteHosts(m, "/files") })
}

func rewriteHosts(s, prefix string) string {
	for _, host := range cmsFileHosts {
		s = strings.Replace(s, host, prefix, 1)
	}
	return s
}

// VideoThumbnail returns the YouTube thumbnail for a watch url. Urls without a
// v= parameter yield "".
func (s *Set) VideoThumbnail(data string) string {
	parts := strings.Split(data, "v=")
	if len(parts) < 2 {
		return ""
	}
	return "https://img.youtube.com/vi/" + parts[1] + "/sddefault.jpg"
}

// CreateEmbedYouTubeVideoURL normalises a YouTube link into its embed form.
// Anything that is not a YouTube link, or does not parse, comes back as is.
func (s *Set) CreateEmbedYouTubeVideoURL(raw any) any {
	str, ok := raw.(string)
	if !ok || str == "" || !strings.Contains(str, "youtu") {
		return raw
	}
	u, err := url.Parse(str)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	return "https://www.youtube.com/embed" + strings.Replace(u.EscapedPath(), "/embed", "", 1)
}
