package escansion

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"
)

// symbolReplacer turns clause punctuation into periods, drops quotes and
// maps foreign vowel letters to their Spanish counterparts.
var symbolReplacer = strings.NewReplacer(
	"(", ". ",
	")", ". ",
	"\u2014", ". ", // em dash
	"\u2013", ". ", // en dash
	"\u2026", ". ", // ellipsis
	";", ". ",
	":", ". ",
	"?", ". ",
	"!", ". ",
	"\u00f5", "o", // õ → o
	"\u00e6", "ae", // æ → ae
	"\u00e0", "a", // à → a
	"\u00e8", "e", // è → e
	"\u00ec", "i", // ì → i
	"\u00f2", "o", // ò → o
	"\u00f9", "u", // ù → u
	"\u00ab", " ", // «
	"\u00bb", " ", // »
	"\u201c", " ", // “
	"\u201d", " ", // ”
	"\u2018", " ", // ‘
	"\u2019", " ", // ’
	`"`, " ",
	"'", " ",
	"-", " ",
)

var (
	reParaComma = regexp.MustCompile(`[Pp]ara,`)

	cleanupReplacements = []struct {
		re  *regexp.Regexp
		rep string
	}{
		{regexp.MustCompile(`\s*\.+([\p{L}\p{N}_])`), ",${1}"},
		{regexp.MustCompile(`\s*,+([\p{L}\p{N}_])`), ",${1}"},
		{regexp.MustCompile(`\[|\]|¿|¡|^\s*[.,]`), ""},
		{regexp.MustCompile(`\s*\.[.\s]+`), ", "},
	}
)

// CleanLine prepares a raw verse line for the annotator: NFC
// normalization, clause punctuation folded into periods and commas,
// quotes and bracketing removed.
// "para," becomes "Ppara," so that the annotator keeps it as a
// preposition; the doubled consonant is removed after scansion.
func CleanLine(line string) string {
	line = norm.NFC.String(line)
	line = reParaComma.ReplaceAllString(line, "Ppara,")
	line = symbolReplacer.Replace(line)
	for _, r := range cleanupReplacements {
		line = r.re.ReplaceAllString(line, r.rep)
	}
	return strings.TrimSpace(line)
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// collapseMultiwords keeps the first word of every surface token and
// gives it the surface text, so that "del" is scanned as one word.
func collapseMultiwords(tokens []Token) []Token {
	seen := make(map[*Surface]bool)
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Parent != nil {
			if seen[t.Parent] {
				continue
			}
			seen[t.Parent] = true
			t.Text = t.Parent.Text
		}
		t.Text = strings.Trim(t.Text, ".")
		out = append(out, t)
	}
	return out
}

// NormalizeTokens removes tokens that do not take part in scansion and
// repairs the tagging artifacts the annotator is known to produce at the
// end of a line. It returns nil when nothing scannable is left.
func NormalizeTokens(tokens []Token) []Token {
	words := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.POS != POSOther {
			words = append(words, t)
		}
	}
	for len(words) > 0 && words[len(words)-1].POS == POSPunctuation {
		last := &words[len(words)-1]
		if hasLetter(last.Text) {
			log.Debug().Str("token", last.Text).Msg("retagging line-final punctuation as adjective")
			last.POS = POSAdjective
			break
		}
		words = words[:len(words)-1]
	}
	if n := len(words); n > 1 {
		a, b := words[n-2], words[n-1]
		if a.Parent != nil && a.Parent == b.Parent && a.Text != b.Text {
			words[n-2].Text = a.parentText()
			words = words[:n-1]
		}
	}
	words = collapseMultiwords(words)
	if len(words) == 0 {
		return nil
	}
	return words
}

// exceptionLevel selects strict diaeresis handling for words spelled
// with a diaeresis vowel.
func exceptionLevel(word string) int {
	if strings.ContainsAny(word, "äëïöü") {
		return 2
	}
	return 1
}
