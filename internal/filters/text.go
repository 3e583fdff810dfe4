package filters

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToTitleCase lowercases phrase and upper-cases the first letter of every
// space separated word.
func (s *Set) ToTitleCase(phrase string) string {
	words := strings.Split(strings.ToLower(phrase), " ")
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

func upperFirst(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if size == 0 {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

var startCaser = cases.Title(language.AmericanEnglish, cases.NoLower)

// StartCase splits s into words on anything that is not a letter or digit
// and joins them capitalised with single spaces: "1600 pennsylvania ave-nw"
// becomes "1600 Pennsylvania Ave Nw".
func (s *Set) StartCase(str string) string {
	words := strings.FieldsFunc(str, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, w := range words {
		words[i] = startCaser.String(w)
	}
	return strings.Join(words, " ")
}

// HashReference turns a heading into an anchor id.
func (s *Set) HashReference(str string) string {
	return strings.Join(strings.Split(strings.ToLower(str), " "), "-")
}

// RemoveUnderscores replaces the first underscore with a space.
func (s *Set) RemoveUnderscores(data any) any {
	str, ok := data.(string)
	if !ok || str == "" {
		return data
	}
	return strings.Replace(str, "_", " ", 1)
}

// FileSize renders a byte count in megabytes with two decimals.
func (s *Set) FileSize(data any) string {
	n, _ := toFloat(data)
	return fmt.Sprintf("%.2fMB", n/1000000)
}

// FileExt returns whatever follows the last dot of a file name.
func (s *Set) FileExt(data string) string {
	parts := strings.Split(data, ".")
	return parts[len(parts)-1]
}

// BreakIntoSingles renders a data attribute prefix for data.
func (s *Set) BreakIntoSingles(data any) string {
	if data == nil {
		return ""
	}
	return "data-" + toString(data) + " "
}

// BreakTerms joins a list of terms with ", ".
func (s *Set) BreakTerms(data any) string {
	list, ok := toStrings(data)
	if !ok {
		return ""
	}
	return strings.Join(list, ", ")
}

var benefitTermNames = map[string]string{
	"general":    "General benefits information",
	"burial":     "Burials and memorials",
	"careers":    "Careers and employment",
	"disability": "Disability",
	"education":  "Education and training",
	"family":     "Family member benefits",
	"healthcare": "Health care",
	"housing":    "Housing assistance",
	"insurance":  "Life insurance",
	"pension":    "Pension",
	"service":    "Service member benefits",
	"records":    "Records",
}

// BenefitTerms maps a benefit hub machine name to its display label.
func (s *Set) BenefitTerms(data any) string {
	if name, ok := benefitTermNames[toString(data)]; ok {
		return name
	}
	return benefitTermNames["general"]
}

// NumToWord spells out an integer in English words.
// Values beyond the safe integer range are rejected.
func (s *Set) NumToWord(numConvert any) (string, error) {
	f, ok := toFloat(numConvert)
	if !ok {
		return "", fmt.Errorf("numToWord: %w: %v is not a number", ErrInvalidArgument, numConvert)
	}
	if math.Abs(f) > maxSafeInteger {
		return "", fmt.Errorf("numToWord: %w: %v is not a safe integer", ErrInvalidArgument, numConvert)
	}
	return numberToWords(int64(f)), nil
}

// Modulo returns item % 2.
func (s *Set) Modulo(item any) int64 {
	n, _ := toInt(item)
	return n % 2
}

// GenericModulo returns i % n; a zero divisor yields 0.
func (s *Set) GenericModulo(i, n any) int64 {
	a, _ := toInt(i)
	b, _ := toInt(n)
	if b == 0 {
		return 0
	}
	return a % b
}

// AccessibleNumber spaces out the digits of a phone number so screen readers
// announce them one by one; dashes become pauses.
func (s *Set) AccessibleNumber(data any) any {
	str, ok := data.(string)
	if !ok || str == "" {
		return nil
	}
	chars := strings.Split(str, "")
	return strings.ReplaceAll(strings.Join(chars, " "), " -", ".")
}

// phonePattern matches US phone numbers that are neither inside a tag nor
// already the text of an anchor.
var phonePattern = regexp2.MustCompile(`((\d{3}-))?\d{3}-\d{3}-\d{4}(?!([^<]*>)|(((?!<a).)*</a>))`, regexp2.ECMAScript)

// OutputLinks turns bare phone numbers in an HTML fragment into tel: links.
func (s *Set) OutputLinks(data any) (any, error) {
	str, ok := data.(string)
	if !ok || str == "" {
		return data, nil
	}
	out, err := phonePattern.ReplaceFunc(str, func(m regexp2.Match) string {
		n := m.String()
		return `<a target="_blank" href="tel:` + n + `">` + n + `</a>`
	}, -1, -1)
	if err != nil {
		return nil, fmt.Errorf("outputLinks: %w", err)
	}
	return out, nil
}

// Replace replaces every match of the regular expression oldVal in str with
// newVal. Patterns use JavaScript syntax.
func (s *Set) Replace(str, oldVal, newVal string) (string, error) {
	re, err := regexp2.Compile(oldVal, regexp2.ECMAScript)
	if err != nil {
		return "", fmt.Errorf("replace: %w: %v", ErrInvalidArgument, err)
	}
	out, err := re.Replace(str, newVal, -1, -1)
	if err != nil {
		return "", fmt.Errorf("replace: %w", err)
	}
	return out, nil
}

// JSONToObj decodes a JSON document.
func (s *Set) JSONToObj(jsonString string) (any, error) {
	var out any
	if err := json.Unmarshal([]byte(jsonString), &out); err != nil {
		return nil, fmt.Errorf("jsonToObj: %w", err)
	}
	return out, nil
}

// DetectLang derives the page language from its url suffix.
func (s *Set) DetectLang(url any) string {
	str, _ := url.(string)
	switch {
	case strings.HasSuffix(str, "-esp"):
		return "es"
	case strings.HasSuffix(str, "-tag"):
		return "tl"
	}
	return "en"
}

var leadingInt = regexp.MustCompile(`^\s*[-+]?\d+`)

// GetPagerPage extracts N from a "page-N" pager segment; 0 when absent.
func (s *Set) GetPagerPage(page string) int {
	_, rest, found := strings.Cut(page, "page-")
	if !found {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(leadingInt.FindString(rest)))
	if err != nil {
		return 0
	}
	return n
}

func toStrings(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, len(t))
		for i := range t {
			out[i] = toString(t[i])
		}
		return out, true
	}
	return nil, false
}
