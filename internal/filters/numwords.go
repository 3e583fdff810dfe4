package filters

import "strings"

// maxSafeInteger is the largest integer a CMS number carries exactly.
const maxSafeInteger = 1<<53 - 1

var (
	smallNumbers = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	tensNames = []string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
	scales    = []struct {
		value uint64
		name  string
	}{
		{1_000_000_000_000_000, "quadrillion"},
		{1_000_000_000_000, "trillion"},
		{1_000_000_000, "billion"},
		{1_000_000, "million"},
		{1_000, "thousand"},
		{100, "hundred"},
	}
)

// numberToWords spells n the way the number-to-words package does:
// "one hundred twenty-three", with commas between scale groups.
func numberToWords(n int64) string {
	if n < 0 {
		// -(n+1) cannot overflow, so math.MinInt64 is spelled like any other.
		return "minus " + spellNumber(uint64(-(n+1))+1)
	}
	return spellNumber(uint64(n))
}

func spellNumber(n uint64) string {
	if n < 20 {
		return smallNumbers[n]
	}
	if n < 100 {
		w := tensNames[n/10]
		if n%10 != 0 {
			w += "-" + smallNumbers[n%10]
		}
		return w
	}
	for _, sc := range scales {
		if n < sc.value {
			continue
		}
		head := spellNumber(n/sc.value) + " " + sc.name
		rem := n % sc.value
		if rem == 0 {
			return head
		}
		sep := " "
		if sc.value >= 1000 {
			sep = ", "
		}
		return head + sep + spellNumber(rem)
	}
	return strings.TrimSpace(smallNumbers[0])
}
