package escansion

import (
	"strings"
	"unicode"
)

// Rhyme describes the ending of the last word of a line.
type Rhyme struct {
	// Depth is the position of the stressed syllable counted from the
	// end (0 for the last syllable), or -1 when no syllable is stressed.
	Depth int
	// Offset is the metrical correction for the line ending: +1 for
	// oxytone, 0 for paroxytone, -1 for proparoxytone endings.
	Offset     int
	Assonance  string
	Consonance string
}

// FindRhyme extracts the rhyme of the final word chain.
func FindRhyme(c Chain) Rhyme {
	rh := Rhyme{Depth: -1}
	if len(c) == 0 {
		return rh
	}
	var coda []string
	for d := 0; d < len(c); d++ {
		syl := c[len(c)-1-d]
		i := strings.IndexFunc(string(syl), unicode.IsUpper)
		if i < 0 {
			continue
		}
		rh.Depth = d
		coda = append(coda, string(syl)[i:])
		for _, s := range c[len(c)-d:] {
			coda = append(coda, string(s))
		}
		break
	}
	switch rh.Depth {
	case -1:
		for _, s := range c[max(0, len(c)-2):] {
			coda = append(coda, string(s))
		}
	case 0:
		rh.Offset = 1
	case 2:
		rh.Offset = -1
	}

	assonant := coda
	if len(coda) > 2 {
		assonant = []string{coda[0], coda[len(coda)-1]}
	}
	rh.Assonance = keepRunes(strings.ToLower(strings.Join(assonant, "")), "aeiou")
	rh.Consonance = strings.ToLower(strings.Join(coda, ""))
	return rh
}

// Rhythm returns one '+' per stressed and one '-' per unstressed
// syllable.
func Rhythm(chains []Chain) string {
	var sb strings.Builder
	for _, c := range chains {
		for _, s := range c {
			if s.Stressed() {
				sb.WriteByte('+')
			} else {
				sb.WriteByte('-')
			}
		}
	}
	return sb.String()
}

// Nuclei concatenates the full vowels of chains, keeping their stress.
func Nuclei(chains []Chain) string {
	var sb strings.Builder
	for _, c := range chains {
		for _, s := range c {
			sb.WriteString(keepRunes(string(s), "aeiouAEIOU"))
		}
	}
	return sb.String()
}

// lineLength is the metrical length of chains: the syllable count
// corrected by the stress position of the last word.
func lineLength(chains []Chain) int {
	if len(chains) == 0 {
		return 0
	}
	return SyllableCount(chains) + FindRhyme(chains[len(chains)-1]).Offset
}
