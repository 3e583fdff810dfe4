package filters

import (
	"encoding/json"
	"fmt"

	"contentbuild/internal/cms"
)

// maxMenuDepth bounds FindCurrentPathDepth.
const maxMenuDepth = 5

// PathDepth is the result of FindCurrentPathDepth. Links is the immediate
// parent menu object of the match, exactly as the CMS exported it, and is
// only reported from depth 3 on.
type PathDepth struct {
	Depth int `json:"depth"`
	Links any `json:"links,omitempty"`
}

// FindCurrentPathDepth locates currentPath in a menu link tree at most five
// levels deep. It returns the JSON encoded PathDepth, or "false" when the path
// is not found.
func (s *Set) FindCurrentPathDepth(linksArray any, currentPath string) (string, error) {
	links, err := genericList(linksArray)
	if err != nil {
		return "", fmt.Errorf("findCurrentPathDepth: %w", err)
	}
	res, ok := searchDepth(links, currentPath, nil, 1)
	if !ok {
		return "false", nil
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("findCurrentPathDepth: %w", err)
	}
	return string(raw), nil
}

func searchDepth(links []any, path string, parent any, depth int) (PathDepth, bool) {
	if depth > maxMenuDepth {
		return PathDepth{}, false
	}
	for _, link := range links {
		if linkPath(link) == path {
			res := PathDepth{Depth: depth}
			if depth >= 3 {
				res.Links = parent
			}
			return res, true
		}
		if res, ok := searchDepth(childLinks(link), path, link, depth+1); ok {
			return res, true
		}
	}
	return PathDepth{}, false
}

// LinkPosition is the result of FindCurrentPathDepthRecursive. Parent and
// Link are the untouched menu objects.
type LinkPosition struct {
	Depth  int `json:"depth"`
	Parent any `json:"parent,omitempty"`
	Link   any `json:"link"`
}

// FindCurrentPathDepthRecursive searches the whole link tree depth first for
// currentPath. The parent reported is the nearest ancestor with a path:
// ancestors with an empty path only group links visually, so the grandparent
// is reported instead and the depth reduced by one. Returns "{}" when the path
// is not found.
func (s *Set) FindCurrentPathDepthRecursive(linksArray any, currentPath string) (string, error) {
	links, err := genericList(linksArray)
	if err != nil {
		return "", fmt.Errorf("findCurrentPathDepthRecursive: %w", err)
	}
	var trail []any
	pos, ok := findLink(links, currentPath, 1, &trail)
	if !ok {
		return "{}", nil
	}
	raw, err := json.Marshal(pos)
	if err != nil {
		return "", fmt.Errorf("findCurrentPathDepthRecursive: %w", err)
	}
	return string(raw), nil
}

func findLink(links []any, path string, depth int, trail *[]any) (LinkPosition, bool) {
	for _, link := range links {
		*trail = append(*trail, link)
		if linkPath(link) == path {
			return position(*trail, depth, link), true
		}
		if children := childLinks(link); len(children) > 0 {
			if pos, ok := findLink(children, path, depth+1, trail); ok {
				return pos, true
			}
		}
		*trail = (*trail)[:len(*trail)-1]
	}
	return LinkPosition{}, false
}

func position(trail []any, depth int, link any) LinkPosition {
	at := func(i int) any {
		if i < 0 {
			return nil
		}
		return trail[i]
	}
	parent := at(len(trail) - 2)
	if parent != nil && linkPath(parent) == "" {
		parent = at(len(trail) - 3)
		depth--
	}
	return LinkPosition{Depth: depth, Parent: parent, Link: link}
}

func linkPath(link any) string {
	p, ok := cms.Lookup(link, "url.path")
	if !ok {
		return ""
	}
	return toString(p)
}

func childLinks(link any) []any {
	v, ok := cms.Lookup(link, "links")
	if !ok {
		return nil
	}
	children, _ := cms.Slice(v)
	return children
}
