// Package a11y runs axe accessibility checks over the pages of a crawl plan.
package a11y

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rulesets understood by axe's runOnly tag filter.
const (
	RulesetSection508 = "section508"
	RulesetWCAG2A     = "wcag2a"
)

// Options scopes one check. Empty Rules means the wcag2a ruleset.
type Options struct {
	Scope string   `json:"scope"`
	Rules []string `json:"rules,omitempty"`
}

// Ruleset names the ruleset the options select.
func (o Options) Ruleset() string {
	if len(o.Rules) == 0 {
		return RulesetWCAG2A
	}
	return strings.Join(o.Rules, ",")
}

// RulesFor picks the ruleset for url: section508 when it ends with any of
// the only508 suffixes, wcag2a otherwise.
func RulesFor(url string, only508 []string) Options {
	for _, suffix := range only508 {
		if strings.HasSuffix(url, suffix) {
			return Options{Scope: url, Rules: []string{RulesetSection508}}
		}
	}
	return Options{Scope: url}
}

// Node is one offending element.
type Node struct {
	Target []string `json:"target"`
	HTML   string   `json:"html"`
}

// Violation is one failed axe rule.
type Violation struct {
	ID          string `json:"id"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
	Help        string `json:"help"`
	HelpURL     string `json:"helpUrl"`
	Nodes       []Node `json:"nodes"`
}

// Result is the outcome of checking one page. Err is set when the page could
// not be checked at all.
type Result struct {
	URL        string        `json:"url"`
	Ruleset    string        `json:"ruleset"`
	Violations []Violation   `json:"violations,omitempty"`
	Duration   time.Duration `json:"duration"`
	Err        string        `json:"error,omitempty"`
}

// Passed reports whether the page was checked and had no violations.
func (r Result) Passed() bool {
	return r.Err == "" && len(r.Violations) == 0
}

// Checker checks a single page.
type Checker interface {
	Check(ctx context.Context, url string, opts Options) (Result, error)
}

// Report is one crawl run.
type Report struct {
	ID         uuid.UUID `json:"id"`
	BaseURL    string    `json:"baseUrl"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Results    []Result  `json:"results"`
}

// Failures returns the results that errored or found violations.
func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed() {
			out = append(out, res)
		}
	}
	return out
}

// ViolationCount totals violations over all pages.
func (r Report) ViolationCount() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Violations)
	}
	return n
}
