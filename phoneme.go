package escansion

import (
	"math"
	"strings"
	"unicode"
)

// Phoneme classes used by the scansion rules. Uppercase vowels mark the
// stressed nucleus; glides (j, w, ă, ĕ, ŏ) never carry stress.
const (
	vowels     = "aeiouyAEIOU"
	semivowels = "wjăĕŏʰ"
	glides     = "jwăĕŏʝ"

	aspirate = 'ʰ'
	yod      = 'ʝ'
)

// sonority ranks vowels and glides. When two vowels merge into one
// syllable the one with the higher value keeps the nucleus.
var sonority = map[rune]int{
	'A': 7, 'a': 6, 'ă': 5,
	'O': 4, 'o': 3, 'ŏ': 2,
	'E': 1, 'e': 0, 'ĕ': -1,
	'I': -2, 'i': -3, 'j': -4,
	'U': -5, 'u': -6, 'w': -7,
	'y': -2,
}

const sonorityFloor = -999

type point struct{ x, y float64 }

// trapezium places each vowel or glide on the (backness, openness) plane.
var trapezium = map[rune]point{
	'i': {-1, 1.25}, 'e': {-0.5, 0}, 'a': {0, -1.25}, 'u': {1, 1.25},
	'j': {-1, 1.25}, 'ĕ': {-0.5, 0}, 'ă': {0, -1.25}, 'w': {1, 1.25},
	'y': {-1, 1.25}, 'o': {1, 0}, 'ŏ': {1, 0},
}

// nonSyllabic maps a phoneme to the glide it turns into when it loses
// the nucleus of its syllable.
var nonSyllabic = map[rune]rune{
	'a': 'ă', 'e': 'ĕ', 'i': 'j', 'o': 'ŏ', 'u': 'w',
	'A': 'ă', 'E': 'ĕ', 'I': 'j', 'O': 'ŏ', 'U': 'w',
	'j': 'j', 'w': 'w', 'ă': 'ă', 'ĕ': 'ĕ', 'ŏ': 'ŏ',
	'y': 'ʝ', 'ʝ': 'j',
}

// syllabic maps a glide back to its full vowel.
var syllabic = map[rune]rune{
	'j': 'i', 'w': 'u', 'ă': 'a', 'ĕ': 'e', 'ŏ': 'o', 'ʝ': 'i', 'y': 'i',
	'J': 'I', 'W': 'U',
}

// identity reduces vowels, glides and their stressed forms to the
// underlying vowel quality.
var identity = map[rune]rune{
	'a': 'a', 'A': 'a', 'ă': 'a',
	'e': 'e', 'E': 'e', 'ĕ': 'e',
	'i': 'i', 'I': 'i', 'j': 'i', 'y': 'i', 'ʝ': 'i',
	'o': 'o', 'O': 'o', 'ŏ': 'o',
	'u': 'u', 'U': 'u', 'w': 'u',
}

var stressReplacer = strings.NewReplacer("a", "A", "e", "E", "i", "I", "o", "O", "u", "U")

// IsStressed reports whether r is a stressed nucleus.
func IsStressed(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// IsVocalic reports whether r is a vowel, a glide or the aspirate mark,
// i.e. a phoneme that can take part in a vowel junction.
func IsVocalic(r rune) bool {
	return strings.ContainsRune(vowels, r) || strings.ContainsRune(semivowels, r)
}

func isGlide(r rune) bool {
	return strings.ContainsRune(glides, r)
}

// inCluster reports whether r belongs to a run of vowels and glides.
func inCluster(r rune) bool {
	return r != aspirate && (IsVocalic(r) || r == yod)
}

func sonorityOf(r rune) int {
	if v, ok := sonority[r]; ok {
		return v
	}
	return sonorityFloor
}

// stressedForm returns the uppercase full vowel for r.
func stressedForm(r rune) rune {
	if v, ok := syllabic[r]; ok {
		r = v
	}
	return unicode.ToUpper(r)
}

// vowelForm returns the full vowel for r, keeping its case.
func vowelForm(r rune) rune {
	if v, ok := syllabic[r]; ok {
		return v
	}
	return r
}

// vowelDistance is the Euclidean distance between two vowels on the
// trapezium. Unknown phonemes are treated as coincident.
func vowelDistance(a, b rune) float64 {
	pa, ok := trapezium[unicode.ToLower(a)]
	if !ok {
		return 0
	}
	pb, ok := trapezium[unicode.ToLower(b)]
	if !ok {
		return 0
	}
	return math.Hypot(pa.x-pb.x, pa.y-pb.y)
}

// isLowercase mirrors the usual "all cased letters are lowercase and
// there is at least one" test.
func isLowercase(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}

// Syllable is a phonetic syllable. Stress is encoded by the case of its
// nucleus: an uppercase vowel marks the stressed syllable of a word.
type Syllable string

// First returns the first phoneme of s, or 0 when s is empty.
func (s Syllable) First() rune {
	for _, r := range s {
		return r
	}
	return 0
}

// Last returns the last phoneme of s, or 0 when s is empty.
func (s Syllable) Last() rune {
	rs := []rune(s)
	if len(rs) == 0 {
		return 0
	}
	return rs[len(rs)-1]
}

// Stressed reports whether s holds a stressed nucleus.
func (s Syllable) Stressed() bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Len returns the number of phonemes in s.
func (s Syllable) Len() int {
	return len([]rune(s))
}

func (s Syllable) withoutAspirate() Syllable {
	return Syllable(strings.ReplaceAll(string(s), string(aspirate), ""))
}

// Chain is the syllable sequence of one phonological word. A synaloepha
// across a word boundary fuses two chains into one.
type Chain []Syllable

// StressIndex returns the index of the stressed syllable or -1.
func (c Chain) StressIndex() int {
	for i, s := range c {
		if s.Stressed() {
			return i
		}
	}
	return -1
}

func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}

func cloneChains(chains []Chain) []Chain {
	out := make([]Chain, len(chains))
	for i, c := range chains {
		out[i] = append(Chain(nil), c...)
	}
	return out
}

// SyllableCount returns the number of syllables in chains, without the
// line-final stress correction.
func SyllableCount(chains []Chain) int {
	n := 0
	for _, c := range chains {
		n += len(c)
	}
	return n
}
