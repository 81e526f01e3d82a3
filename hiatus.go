package escansion

import (
	"regexp"
	"slices"
	"strings"
)

// hiatusStems are word beginnings customarily pronounced with hiatus
// ("cruel", "fiel", "ruina", "diablo", ...), in transcribed form.
var hiatusStems = []string{
	"xueθ", "suab", "kɾuel", "fiel", "ruina", "diabl", "dios", "kae",
	"rios", "biɾtuos", "kɾio", "ʰuid", "poɾfiad",
}

var reVowelPair = regexp.MustCompile(`(?i)[aeioujw][aeioujw]`)

// Hiatus is a diphthong that may be split into two syllables.
type Hiatus struct {
	At Boundary
	// Usual is set when the word customarily takes hiatus.
	Usual bool
}

// FindHiatuses lists the syllables of chains holding a vowel pair that
// may be split, customary hiatus words first and otherwise in reading
// order. Only pairs before the stressed syllable, or touching its
// nucleus, qualify. relaxed widens eligibility to every syllable except
// an unstressed line-final one.
func FindHiatuses(chains []Chain, relaxed bool) []Hiatus {
	var usual, other []Hiatus
	for idx, c := range chains {
		stress := c.StressIndex()
		isUsual := hasAnyPrefix(strings.ToLower(c.joined()), hiatusStems)
		for idy, syl := range c {
			pair := reVowelPair.FindString(string(syl))
			if pair == "" {
				continue
			}
			var ok bool
			switch {
			case relaxed:
				ok = idx+1 < len(chains) || idy+1 < len(c) || !isLowercase(string(syl))
			case stress < 0:
				ok = idy+1 < len(c)
			default:
				ok = idy < stress || strings.ToLower(pair) != pair
			}
			if !ok {
				continue
			}
			h := Hiatus{At: Boundary{Chain: idx, Syllable: idy}, Usual: isUsual}
			if isUsual {
				usual = append(usual, h)
			} else {
				other = append(other, h)
			}
		}
	}
	return append(usual, other...)
}

func (c Chain) joined() string {
	var sb strings.Builder
	for _, s := range c {
		sb.WriteString(string(s))
	}
	return sb.String()
}

// ApplyHiatuses splits up to n of the candidates, in preference order,
// skipping those whose syllable holds no splittable diphthong. Splits
// are carried out from the end of the line backwards so that recorded
// positions stay valid.
func ApplyHiatuses(chains []Chain, cands []Hiatus, n int) []Chain {
	out := cloneChains(chains)
	type split struct {
		at          Boundary
		first, rest Syllable
	}
	var chosen []split
	for _, h := range cands {
		if len(chosen) == n {
			break
		}
		c, i := h.At.Chain, h.At.Syllable
		if c < 0 || c >= len(out) || i < 0 || i >= len(out[c]) {
			continue
		}
		a, b, ok := Split(out[c][i])
		if !ok {
			continue
		}
		chosen = append(chosen, split{h.At, a, b})
	}
	slices.SortFunc(chosen, func(x, y split) int {
		if x.at.Chain != y.at.Chain {
			return y.at.Chain - x.at.Chain
		}
		return y.at.Syllable - x.at.Syllable
	})
	for _, s := range chosen {
		word := out[s.at.Chain]
		out[s.at.Chain] = slices.Concat(word[:s.at.Syllable], Chain{s.first, s.rest}, word[s.at.Syllable+1:])
	}
	return out
}
