package escansion

import (
	"slices"
	"strings"
	"unicode"
)

// Boundary identifies a syllable junction: the syllable at index
// Syllable of chain Chain and whatever follows it, either the next
// syllable of the same chain or the first syllable of the next chain.
type Boundary struct {
	Chain    int `json:"chain"`
	Syllable int `json:"syllable"`
}

// Synaloepha is a candidate vowel merge.
type Synaloepha struct {
	At    Boundary
	Left  Syllable
	Right Syllable
	// Score is higher for more natural merges.
	Score float64
	// Internal marks a junction inside one word (synaeresis).
	Internal bool
}

const (
	// internalPenalty is subtracted from every intra-word candidate.
	internalPenalty = 14
	// openingPenalty applies to "i"/"o" opening the line before a
	// stressed vowel.
	openingPenalty = 8
	// likelyScore is the score above which a synaloepha is counted when
	// estimating the natural length of a line.
	likelyScore = -15
)

var synaloephaVocalic = vowels + semivowels + strings.ToUpper(vowels) + "ʰy"

// FindSynaloephas lists every vowel junction of chains that may be
// merged, best first. Candidates with equal scores keep the order in
// which they were found: word junctions left to right, then junctions
// inside words left to right.
func FindSynaloephas(chains []Chain) []Synaloepha {
	var out []Synaloepha
	for idx := 1; idx < len(chains); idx++ {
		if s, ok := wordJunction(chains, idx); ok {
			out = append(out, s)
		}
	}
	for idx, c := range chains {
		for idy := 1; idy < len(c); idy++ {
			left, right := c[idy-1], c[idy]
			if !IsVocalic(left.Last()) || !IsVocalic(right.First()) {
				continue
			}
			if idx == len(chains)-1 && idy == len(c)-1 && (left.Stressed() || right.Stressed()) {
				continue
			}
			out = append(out, Synaloepha{
				At:       Boundary{Chain: idx, Syllable: idy - 1},
				Left:     left,
				Right:    right,
				Score:    synaloephaScore(left, right, 0) - internalPenalty,
				Internal: true,
			})
		}
	}
	slices.SortStableFunc(out, func(a, b Synaloepha) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return out
}

// wordJunction examines the junction between chains idx-1 and idx.
func wordJunction(chains []Chain, idx int) (Synaloepha, bool) {
	prev, cur := chains[idx-1], chains[idx]
	if len(prev) == 0 || len(cur) == 0 {
		return Synaloepha{}, false
	}
	left, right := prev[len(prev)-1], cur[0]
	l := []rune(left)
	r := []rune(right.withoutAspirate())
	if len(l) == 0 || len(r) == 0 {
		return Synaloepha{}, false
	}
	if !IsVocalic(unicode.ToLower(l[len(l)-1])) || !IsVocalic(unicode.ToLower(r[0])) {
		return Synaloepha{}, false
	}

	var pref float64
	eligible := false
	switch {
	case idx == 1 && isSingle(prev, "i", "o") && IsStressed(r[0]):
		pref -= openingPenalty
		eligible = true
	case isSingle(cur, "e", "i") && len(chains) > idx+2:
		next := chains[idx+1]
		eligible = len(next) > 0 && !IsVocalic(next[0].First())
	default:
		eligible = sonorityAllows(l, r)
	}
	if !eligible {
		return Synaloepha{}, false
	}

	a, b := l[len(l)-1], r[0]
	if unicode.IsLower(a) && unicode.IsLower(b) && a == b {
		switch {
		case isSingle(prev, "o", "y") || isSingle(cur, "o", "y"):
			pref--
		case len(r) > 1 && strings.ContainsRune("jwăĕŏ", r[1]):
			pref -= 2
		}
	}
	return Synaloepha{
		At:    Boundary{Chain: idx - 1, Syllable: len(prev) - 1},
		Left:  left,
		Right: right,
		Score: synaloephaScore(left, right, pref),
	}, true
}

// sonorityAllows accepts a junction when sonority does not rise and then
// fall across it, i.e. the phonemes around the boundary can share one
// peak.
func sonorityAllows(l, r []rune) bool {
	val := sonorityOf(l[len(l)-1])
	prev := val
	if len(l) > 1 {
		if v, ok := sonority[l[len(l)-2]]; ok {
			prev = v
		}
	}
	first := sonorityOf(r[0])
	next := first
	if len(r) > 1 {
		if v, ok := sonority[r[1]]; ok {
			next = v
		}
	}
	return (prev <= val && val <= first) ||
		(prev >= val && val >= first && next <= first) ||
		(prev <= val && val > first && first >= next)
}

func isSingle(c Chain, forms ...string) bool {
	return len(c) == 1 && slices.Contains(forms, string(c[0]))
}

// synaloephaScore rates the merge of left with right. Short clusters,
// close vowels and unstressed pairs score higher.
func synaloephaScore(left, right Syllable, pref float64) float64 {
	lr, rr := []rune(left), []rune(right)
	if len(lr) == 0 || len(rr) == 0 {
		return pref
	}
	first := []rune(right.withoutAspirate())
	if len(first) == 0 {
		return pref
	}
	distance := vowelDistance(lr[len(lr)-1], first[0])

	onset := keepRunes(string(left), synaloephaVocalic)
	coda := keepRunes(string(right), synaloephaVocalic)
	pref -= 2 * (float64(len([]rune(onset))+len([]rune(coda))-2) + distance)
	if strings.HasPrefix(coda, string(aspirate)) {
		pref -= 2
		coda = strings.Trim(coda, string(aspirate))
	}
	switch {
	case isLowercase(coda) && isLowercase(onset):
		pref += 4
	default:
		pref -= 2
		if strings.ContainsAny(coda, "UI") || strings.ContainsAny(onset, "UI") {
			pref--
		}
		if !isLowercase(coda) && !isLowercase(onset) {
			pref -= 8
		}
	}
	if strings.HasPrefix(coda, "y") {
		pref--
	}
	if strings.HasSuffix(onset, "y") {
		pref++
	}
	return pref
}

func keepRunes(s, allowed string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(allowed, r) {
			return r
		}
		return -1
	}, s)
}

// ApplySynaloepha merges the junction described by s and returns the
// new chains. A word junction fuses two chains into one.
func ApplySynaloepha(chains []Chain, s Synaloepha) []Chain {
	out := cloneChains(chains)
	c, i := s.At.Chain, s.At.Syllable
	if c < 0 || c >= len(out) || i < 0 || i >= len(out[c]) {
		return out
	}
	word := out[c]
	if i+1 < len(word) {
		merged := append(Chain(nil), word[:i]...)
		merged = append(merged, Merge(word[i], word[i+1]))
		out[c] = append(merged, word[i+2:]...)
		return out
	}
	if c+1 >= len(out) || len(out[c+1]) == 0 {
		return out
	}
	next := out[c+1]
	merged := append(Chain(nil), word[:i]...)
	merged = append(merged, Merge(word[i], next[0]))
	merged = append(merged, next[1:]...)
	return slices.Concat(out[:c], []Chain{merged}, out[c+2:])
}

// applySynaloephas merges n times, rescanning the candidates after each
// merge so that positions always refer to the current chains.
func applySynaloephas(chains []Chain, n int) []Chain {
	for ; n > 0; n-- {
		cands := FindSynaloephas(chains)
		if len(cands) == 0 {
			break
		}
		chains = ApplySynaloepha(chains, cands[0])
	}
	return chains
}

// likelySynaloephas counts the candidates with a score above the
// estimation threshold.
func likelySynaloephas(cands []Synaloepha) int {
	n := 0
	for _, c := range cands {
		if c.Score > likelyScore {
			n++
		}
	}
	return n
}
