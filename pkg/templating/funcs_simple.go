package templating

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// upper returns s in upper case.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// lower returns s in lower case.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// title capitalizes the first letter of every word in s.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// trim removes leading and trailing whitespace.
func trim(s string) string {
	return strings.TrimSpace(s)
}

// wrap re-flows every line of s so no line is longer than width, breaking
// only between words. Existing line breaks are kept and a word longer than
// width gets a line of its own. A width below 1 returns s unchanged.
func wrap(width int, s string) string {
	if width < 1 {
		return s
	}
	return wordwrap.String(s, width)
}

// add returns a + b.
func add(a, b int) int {
	return a + b
}

// sub returns a - b.
func sub(a, b int) int {
	return a - b
}

// inc returns i + 1.
func inc(i int) int {
	return i + 1
}

// repeat returns a slice of integers from 0 to count-1.
func repeat(count int) []int {
	if count < 0 {
		return []int{}
	}
	s := make([]int, count)
	for i := 0; i < count; i++ {
		s[i] = i
	}
	return s
}
