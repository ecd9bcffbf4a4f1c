package highlight

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// punctuation is the ASCII punctuation set trimmed from word edges during
// normalisation.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// timeAnnotation matches the leading shape of a timing note such as
// "(Time: 1.23s". The closing parenthesis is optional because the note is
// assembled from a fixed number of tokens and may be cut before it.
var timeAnnotation = regexp.MustCompile(`^\(?Time:[^)]*\)?`)

// timeAnnotationTokens is the number of raw tokens a timing note spans:
// the parenthesis, the word "Time", the colon, the separating whitespace
// and the value.
const timeAnnotationTokens = 5

// token is one classified lexical unit of a run text. word holds the
// normalised form for word tokens and is empty for whitespace, punctuation
// and timing annotations.
type token struct {
	text string
	word string
}

// tokenize splits s into maximal whitespace runs, word runs (alphanumerics
// with embedded periods) and single other characters. The split is total and
// order-preserving: concatenating the returned tokens reproduces s exactly.
func tokenize(s string) []string {
	var tokens []string
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		j := i + size
		switch {
		case unicode.IsSpace(r):
			for j < len(s) {
				next, n := utf8.DecodeRuneInString(s[j:])
				if !unicode.IsSpace(next) {
					break
				}
				j += n
			}
		case isWordRune(r):
			for j < len(s) {
				next, n := utf8.DecodeRuneInString(s[j:])
				if !isWordRune(next) && next != '.' {
					break
				}
				j += n
			}
		}
		tokens = append(tokens, s[i:j])
		i = j
	}
	return tokens
}

// isWordRune reports whether r belongs to a word run.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// normaliseWord lowercases a token and trims punctuation from both ends.
// An empty result means the token carries no comparable word.
func normaliseWord(s string) string {
	return strings.Trim(strings.ToLower(s), punctuation)
}

// classify walks a raw token sequence and tags each unit. Timing annotations
// are folded into a single opaque token so that their ever-changing values
// never count towards uniqueness.
func classify(tokens []string) []token {
	classified := make([]token, 0, len(tokens))
	for i := 0; i < len(tokens); {
		text := tokens[i]

		// A timing note spans a fixed run of tokens starting at "(".
		if strings.TrimSpace(text) == "(" && i+timeAnnotationTokens-1 < len(tokens) {
			joined := strings.Join(tokens[i:i+timeAnnotationTokens], "")
			if timeAnnotation.MatchString(joined) {
				classified = append(classified, token{text: joined})
				i += timeAnnotationTokens
				continue
			}
		}

		if strings.TrimSpace(text) != "" {
			classified = append(classified, token{text: text, word: normaliseWord(text)})
		} else {
			classified = append(classified, token{text: text})
		}
		i++
	}
	return classified
}
