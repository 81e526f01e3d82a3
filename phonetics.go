package escansion

import (
	"regexp"
	"strings"
	"unicode"
)

// Merge fuses the last phoneme of left with the first phoneme of right
// into a single syllable. The aspirate mark of right is dropped. The
// result keeps exactly one nucleus; it is stressed when either input
// was.
func Merge(left, right Syllable) Syllable {
	right = right.withoutAspirate()
	l, r := []rune(left), []rune(right)
	if len(l) == 0 {
		return right
	}
	if len(r) == 0 {
		return left
	}
	a, b := l[len(l)-1], r[0]
	head, tail := string(l[:len(l)-1]), string(r[1:])

	switch {
	case a == b:
		return Syllable(head + string(r))
	case identity[a] != 0 && identity[a] == identity[b]:
		return Syllable(head + string(mergeSameVowel(a, b, head+tail)) + tail)
	}
	if i, j := clusterBounds(l, r); len(l)-i+j >= 3 {
		return Syllable(perceive(l, r, i, j))
	}
	switch {
	case string(left) == "y" || (string(left) == "i" && b == 'u'):
		return Syllable(string(yod) + string(r))
	case sonorityOf(a) > sonorityOf(b):
		if IsStressed(b) {
			a = stressedForm(a)
		}
		return Syllable(head + string(a) + string(nonSyllabic[b]) + tail)
	default:
		if IsStressed(a) {
			b = stressedForm(b)
		}
		return Syllable(head + string(nonSyllabic[a]) + string(b) + tail)
	}
}

// mergeSameVowel picks the survivor when both boundary phonemes have the
// same quality. rest is the syllable around the junction.
func mergeSameVowel(a, b rune, rest string) rune {
	switch {
	case IsStressed(a) || IsStressed(b):
		return stressedForm(a)
	case isGlide(a) || isGlide(b):
		g := a
		if !isGlide(g) {
			g = b
		}
		if hasNucleus(rest) {
			return g
		}
		return vowelForm(g)
	}
	return a
}

func hasNucleus(s string) bool {
	for _, r := range s {
		if strings.ContainsRune("aeiouAEIOU", r) {
			return true
		}
	}
	return false
}

// clusterBounds returns where the vocalic run spanning the junction of l
// and r starts in l and ends in r.
func clusterBounds(l, r []rune) (int, int) {
	i := len(l)
	for i > 0 && inCluster(l[i-1]) {
		i--
	}
	j := 0
	for j < len(r) && inCluster(r[j]) {
		j++
	}
	return i, j
}

// perceive rebuilds a vowel cluster of three or more phonemes around its
// most sonorous member. Every other member becomes a glide.
func perceive(l, r []rune, i, j int) string {
	cluster := append(append([]rune(nil), l[i:]...), r[:j]...)
	stress := false
	best, bestVal := 0, sonorityFloor-1
	for k, ph := range cluster {
		if IsStressed(ph) {
			stress = true
		}
		if v := sonorityOf(unicode.ToLower(vowelForm(ph))); v > bestVal {
			best, bestVal = k, v
		}
	}
	var sb strings.Builder
	sb.WriteString(string(l[:i]))
	for k, ph := range cluster {
		if k == best {
			v := unicode.ToLower(vowelForm(ph))
			if stress {
				v = unicode.ToUpper(v)
			}
			sb.WriteRune(v)
			continue
		}
		g, ok := nonSyllabic[ph]
		if !ok || g == yod {
			g = 'j'
		}
		sb.WriteRune(g)
	}
	sb.WriteString(string(r[j:]))
	return sb.String()
}

var reDiphthong = regexp.MustCompile(`([jw]*)([aeiouAEIOU])([jw]*)`)

// Split breaks the diphthong of s into two syllables. The glide becomes
// a full unstressed vowel; the nucleus and its stress stay in place. It
// reports false when s holds no glide next to its nucleus.
func Split(s Syllable) (Syllable, Syllable, bool) {
	str := string(s)
	loc := reDiphthong.FindStringSubmatchIndex(str)
	if loc == nil {
		return "", "", false
	}
	onset, coda := str[:loc[0]], str[loc[1]:]
	semiconsonant := str[loc[2]:loc[3]]
	nucleus := str[loc[4]:loc[5]]
	semivowel := str[loc[6]:loc[7]]

	switch {
	case semivowel != "":
		g := []rune(semivowel)
		vowel := string(g[:len(g)-1]) + string(syllabic[g[len(g)-1]])
		return Syllable(onset + semiconsonant + nucleus), Syllable(vowel + coda), true
	case semiconsonant != "":
		g := []rune(semiconsonant)
		vowel := string(g[:len(g)-1]) + string(syllabic[g[len(g)-1]])
		return Syllable(onset + vowel), Syllable(nucleus + coda), true
	}
	return "", "", false
}
