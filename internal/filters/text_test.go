package filters

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseFilters(t *testing.T) {
	s := New(Options{})

	assert.Equal(t, "Hello World Foo", s.ToTitleCase("hello WORLD foo"))
	assert.Equal(t, "1600 Pennsylvania Ave Nw", s.StartCase("1600 pennsylvania ave-nw"))
	assert.Equal(t, "Foo Bar", s.StartCase("__foo__bar__"))
	assert.Equal(t, "hello-world", s.HashReference("Hello World"))
	assert.Equal(t, "a b_c", s.RemoveUnderscores("a_b_c"))
	assert.Nil(t, s.RemoveUnderscores(nil))
}

func TestFileFilters(t *testing.T) {
	s := New(Options{})

	assert.Equal(t, "1.23MB", s.FileSize(1234567))
	assert.Equal(t, "0.00MB", s.FileSize(nil))
	assert.Equal(t, "pdf", s.FileExt("report.final.pdf"))
	assert.Equal(t, "noext", s.FileExt("noext"))
}

func TestTermFilters(t *testing.T) {
	s := New(Options{})

	assert.Equal(t, "", s.BreakIntoSingles(nil))
	assert.Equal(t, "data-burial ", s.BreakIntoSingles("burial"))
	assert.Equal(t, "a, b, c", s.BreakTerms([]any{"a", "b", "c"}))
	assert.Equal(t, "", s.BreakTerms(nil))
	assert.Equal(t, "Burials and memorials", s.BenefitTerms("burial"))
	assert.Equal(t, "Life insurance", s.BenefitTerms("insurance"))
	assert.Equal(t, "General benefits information", s.BenefitTerms("unknown"))
	assert.Equal(t, "General benefits information", s.BenefitTerms(nil))
}

func TestNumToWord(t *testing.T) {
	s := New(Options{})
	cases := []struct {
		in   any
		want string
	}{
		{0, "zero"},
		{7, "seven"},
		{13, "thirteen"},
		{40, "forty"},
		{42, "forty-two"},
		{100, "one hundred"},
		{123, "one hundred twenty-three"},
		{1234, "one thousand, two hundred thirty-four"},
		{2000000, "two million"},
		{-5, "minus five"},
		{"3", "three"},
	}
	for _, tc := range cases {
		got, err := s.NumToWord(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "NumToWord(%v)", tc.in)
	}

	_, err := s.NumToWord("many")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNumToWordRejectsUnsafeIntegers(t *testing.T) {
	s := New(Options{})

	got, err := s.NumToWord(float64(1<<53 - 1))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "nine quadrillion"), got)

	for _, in := range []any{float64(1e19), -1e19, float64(1 << 53), math.Inf(1), math.NaN()} {
		_, err := s.NumToWord(in)
		assert.ErrorIs(t, err, ErrInvalidArgument, "NumToWord(%v)", in)
	}
}

func TestNumberToWordsMinInt64(t *testing.T) {
	got := numberToWords(math.MinInt64)
	assert.True(t, strings.HasPrefix(got, "minus nine thousand, two hundred twenty-three quadrillion, "), got)
	assert.True(t, strings.HasSuffix(got, "eight hundred eight"), got)
	assert.Equal(t, "minus forty-two", numberToWords(-42))
}

func TestModulo(t *testing.T) {
	s := New(Options{})

	assert.Equal(t, int64(1), s.Modulo(3))
	assert.Equal(t, int64(0), s.Modulo(4.0))
	assert.Equal(t, int64(1), s.GenericModulo(7, 3))
	assert.Equal(t, int64(0), s.GenericModulo(7, 0))
}

func TestPhoneFilters(t *testing.T) {
	s := New(Options{})

	assert.Equal(t, "8 0 0. 5 5 5. 1 2 1 2", s.AccessibleNumber("800-555-1212"))
	assert.Nil(t, s.AccessibleNumber(""))

	out, err := s.OutputLinks("Call 800-555-1212 now")
	require.NoError(t, err)
	assert.Equal(t, `Call <a target="_blank" href="tel:800-555-1212">800-555-1212</a> now`, out)

	linked := `<a href="tel:800-555-1212">800-555-1212</a>`
	out, err = s.OutputLinks(linked)
	require.NoError(t, err)
	assert.Equal(t, linked, out)

	out, err = s.OutputLinks(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestReplace(t *testing.T) {
	s := New(Options{})

	out, err := s.Replace("a-b-c", "-", "+")
	require.NoError(t, err)
	assert.Equal(t, "a+b+c", out)

	out, err = s.Replace("2019-05-15", `(\d+)-(\d+)-(\d+)`, "$2/$3/$1")
	require.NoError(t, err)
	assert.Equal(t, "05/15/2019", out)

	_, err = s.Replace("x", "(", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMiscTextFilters(t *testing.T) {
	s := New(Options{})

	obj, err := s.JSONToObj(`{"a": [1, "two"]}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{1.0, "two"}}, obj)
	_, err = s.JSONToObj(`{`)
	assert.Error(t, err)

	assert.Equal(t, "es", s.DetectLang("/health-care-esp"))
	assert.Equal(t, "tl", s.DetectLang("/health-care-tag"))
	assert.Equal(t, "en", s.DetectLang("/health-care"))
	assert.Equal(t, "en", s.DetectLang(nil))

	assert.Equal(t, 3, s.GetPagerPage("/news/page-3"))
	assert.Equal(t, 12, s.GetPagerPage("page-12/"))
	assert.Equal(t, 0, s.GetPagerPage("/news"))
}
