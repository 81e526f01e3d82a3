package escansion

import (
	"slices"

	"github.com/rs/zerolog/log"
)

// DefaultLengths are the verse lengths tried when the caller gives no
// hint, most common first.
var DefaultLengths = []int{6, 7, 8, 11, 10, 9, 14, 12, 5, 15, 4}

// hemistichLimit is the line length above which a stress on the fourth
// or sixth position is treated as a misplaced hemistich.
const hemistichLimit = 9

// CandidateLengths ranks the target lengths to try for a line whose
// estimated length is estimate. Hinted lengths of 7 and 11 pull each
// other in, a hint of 8 prefers the short metres, and the remaining
// hints or defaults follow without duplicates.
func CandidateLengths(estimate int, hints []int, defaults []int) []int {
	if len(defaults) == 0 {
		defaults = DefaultLengths
	}
	var head, rest []int
	if len(hints) == 0 {
		head, rest = []int{estimate}, defaults
	} else {
		rest = hints
		switch h := hints[0]; {
		case h == estimate:
		case h == 8:
			switch {
			case estimate >= 6 && estimate <= 9:
				head = []int{8}
			case estimate < 6:
				head = []int{7, 8, 6, 5, 4, 3}
			default:
				head = []int{11}
			}
		case h == 7 || h == 11:
			if estimate < 9 {
				head = []int{7, 11}
			} else {
				head = []int{11, 7, 8}
			}
		case h == 6 && estimate >= 5 && estimate <= 7:
			head = []int{6, 8, 11, 7}
		default:
			head = append(slices.Clone(hints[:min(2, len(hints))]), 8, 11, 7, 6)
		}
	}
	out := make([]int, 0, len(head)+len(rest))
	for _, n := range slices.Concat(head, rest) {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

// fit is the outcome of fitting a line to one target length.
type fit struct {
	chains    []Chain
	target    int
	count     int
	ambiguity Ambiguity
	split     bool
}

// Fit adjusts chains to the first reachable length of targets. Every
// attempt starts again from chains, which are never modified. When no
// target is reached the last attempt is returned with ok set to false.
func Fit(chains []Chain, targets []int) (out []Chain, count int, ambiguity Ambiguity, ok bool) {
	if len(chains) == 0 {
		return nil, 0, AmbiguityNone, true
	}
	if len(targets) == 0 {
		targets = []int{lineLength(chains)}
	}
	queue := slices.Clone(targets)
	retried := make(map[int]bool)
	var last fit
	for len(queue) > 0 {
		target := queue[0]
		queue = queue[1:]
		last = fitOne(chains, target, retried[target])
		log.Debug().
			Int("target", target).
			Int("count", last.count).
			Int("ambiguity", int(last.ambiguity)).
			Bool("split", last.split).
			Msg("metre attempt")
		if last.count == target {
			return finalize(last.chains), last.count, last.ambiguity, true
		}
		if last.split && !retried[target] {
			retried[target] = true
			queue = slices.Insert(queue, 0, target)
		}
	}
	return finalize(last.chains), last.count, last.ambiguity, false
}

// fitOne makes a single attempt at reaching target. relaxed widens the
// hiatus candidates for a retry of the same target.
func fitOne(orig []Chain, target int, relaxed bool) fit {
	chains := cloneChains(orig)
	natural := lineLength(chains)
	offset := target - natural
	syn := FindSynaloephas(chains)
	f := fit{target: target}

	switch {
	case offset == 0:
		f.ambiguity = AmbiguityNone
	case natural-len(syn) == target:
		f.ambiguity = AmbiguityNone
		chains = applySynaloephas(chains, -offset)
	case natural-len(syn) > target:
		if pos := hemistichAnomaly(chains); pos >= 0 {
			f.ambiguity = AmbiguityHemistich
			chains = shortenWord(chains, pos)
			chains = applySynaloephas(chains, -offset-1)
		} else {
			f.ambiguity = AmbiguityLicence
			chains = applySynaloephas(chains, len(syn))
		}
	default:
		f.ambiguity = AmbiguityLicence
		if offset < 0 {
			chains = applySynaloephas(chains, -offset)
			break
		}
		hiatuses := FindHiatuses(chains, relaxed)
		if !relaxed && natural+len(hiatuses) < target {
			// Post-tonic diphthongs only qualify under the relaxed list.
			hiatuses = FindHiatuses(chains, true)
		}
		if target > 4 && natural+len(hiatuses) >= target {
			chains = ApplyHiatuses(chains, hiatuses, offset)
			f.split = true
		}
	}
	f.chains = chains
	f.count = lineLength(chains)
	return f
}

// hemistichAnomaly returns the index of a word of a long line whose
// stress falls on the fourth or sixth position while at least two of
// its syllables follow, or -1. Adverbs in -mente are exempt.
func hemistichAnomaly(chains []Chain) int {
	if SyllableCount(chains) <= hemistichLimit {
		return -1
	}
	pos := 0
	for idx, c := range chains {
		if pos > 5 {
			break
		}
		for idy, syl := range c {
			at := pos + idy
			if (at == 3 || at == 5) && syl.Stressed() && len(c)-idy > 2 && !isMente(c) {
				return idx
			}
		}
		pos += len(c)
	}
	return -1
}

func isMente(c Chain) bool {
	return len(c) >= 2 && c[len(c)-2] == "mEn" && c[len(c)-1] == "te"
}

// shortenWord drops the penultimate syllable of chain idx.
func shortenWord(chains []Chain, idx int) []Chain {
	c := chains[idx]
	if len(c) < 2 {
		return chains
	}
	chains[idx] = slices.Concat(c[:len(c)-2], c[len(c)-1:])
	return chains
}

var initialGlides = map[Syllable]Syllable{"y": "i", "Y": "I", "ppA": "pA"}

// finalize turns word-initial glides left by the conjunction "y" back
// into vowels and undoes the doubled consonant of "Ppara".
func finalize(chains []Chain) []Chain {
	for _, c := range chains {
		if len(c) == 0 {
			continue
		}
		if r, ok := initialGlides[c[0]]; ok {
			c[0] = r
		}
	}
	return chains
}
