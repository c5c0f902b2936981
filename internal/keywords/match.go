package keywords

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into word tokens.
// '+', '#' and inner '.' are kept so that "c++", "c#" and "node.js" survive.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#' && r != '.'
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// ContainsKeyword reports whether keyword occurs in text on token boundaries,
// so "go" matches "Go developer" but not "good".
func ContainsKeyword(text, keyword string) bool {
	return containsTokens(Tokenize(text), Tokenize(keyword))
}

// ContainsAny reports whether any keyword occurs in text on token boundaries
func ContainsAny(text string, keywords []string) bool {
	tokens := Tokenize(text)
	for _, kw := range keywords {
		if containsTokens(tokens, Tokenize(kw)) {
			return true
		}
	}
	return false
}

// FirstToken returns the first whitespace-separated word of text, or ""
func FirstToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], ",;:")
}

func containsTokens(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, tok := range needle {
			if haystack[i+j] != tok {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
