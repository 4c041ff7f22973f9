package cleaning

import (
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	whitespaceRegex   = regexp2.MustCompile(`\s+`, regexp2.None)
	romanNumeralRegex = regexp2.MustCompile(`[ivxlcdm]{2,}`, regexp2.None)
	punctuationRegex  = regexp2.MustCompile(`[^\w\s']`, regexp2.None)
	sentenceEndRegex  = regexp2.MustCompile(`[.!?]`, regexp2.None)
)

// replaceAll replaces every match of re in text. None of the expressions
// above set a MatchTimeout, so Replace can only fail on a programming error.
func replaceAll(re *regexp2.Regexp, text, replacement string) string {
	out, err := re.Replace(text, replacement, -1, -1)
	if err != nil {
		panic("cleaning: " + err.Error())
	}
	return out
}

// Lowercase maps text to lower case using full Unicode case mapping.
func Lowercase(text string) string {
	return cases.Lower(language.Und).String(text)
}

// MarkSentenceEnds replaces every '.', '!' and '?' with the marker padded
// by a space on each side. The marker must be made of word characters only
// or RemovePunctuation will split it.
func MarkSentenceEnds(text, marker string) string {
	// '$' starts a substitution in regexp2 replacement strings.
	return replaceAll(sentenceEndRegex, text, " "+strings.ReplaceAll(marker, "$", "$$")+" ")
}

// CollapseWhitespace replaces every run of whitespace with a single space.
func CollapseWhitespace(text string) string {
	return replaceAll(whitespaceRegex, text, " ")
}

// RemoveRomanNumerals deletes every run of two or more of the letters
// i, v, x, l, c, d and m. The match is not anchored to words, so it also
// eats ordinary words ("mix") and fragments of them ("li" in "lion").
// Single letters are left alone.
func RemoveRomanNumerals(text string) string {
	return replaceAll(romanNumeralRegex, text, "")
}

// RemovePunctuation replaces every character that is not a word character,
// whitespace or an apostrophe with a space.
func RemovePunctuation(text string) string {
	return replaceAll(punctuationRegex, text, " ")
}

// Normalize runs the full cleaning pipeline in its fixed order: lowercase,
// sentence end marking, whitespace collapsing, Roman numeral stripping and
// punctuation stripping.
func Normalize(text, marker string) string {
	text = Lowercase(text)
	text = MarkSentenceEnds(text, marker)
	text = CollapseWhitespace(text)
	text = RemoveRomanNumerals(text)
	return RemovePunctuation(text)
}

// Tokenize normalizes text and splits it on whitespace.
func Tokenize(text, marker string) []string {
	return strings.Fields(Normalize(text, marker))
}
