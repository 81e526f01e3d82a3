package escansion

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// DefaultStressMarker is the glyph the transcriber is asked to prefix to
// the stressed syllable of a word.
const DefaultStressMarker = "ˈ"

const secondaryStressMarker = "ˌ"

// set is an immutable lookup table of lowercase word forms.
type set map[string]struct{}

func newSet(items ...string) set {
	s := make(set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s set) has(w string) bool {
	_, ok := s[w]
	return ok
}

var (
	// stressedPOS are the categories stressed by default.
	stressedPOS = []PartOfSpeech{
		POSAdverb, POSNoun, POSProperNoun, POSParticle,
		POSInterjection, POSAdjective, POSVerb, POSAuxiliary,
	}

	// unstressable conjunctions, relatives and possessives.
	unstressable = newSet(
		"y", "e", "ni", "o", "u",
		"que", "quien", "quienes",
		"pero", "sino", "mas", "aunque", "aun",
		"pues", "porque", "como", "conque", "si",
		"cual", "cuales", "do",
		"cuanto", "cuanta", "cuantos", "cuantas",
		"donde", "tan", "cuando",
		"mi", "tu", "su", "mis", "tus", "sus",
	)

	interjections = newSet("oh", "ay")

	// alwaysTonic are stressed whatever their tag.
	alwaysTonic = newSet(
		"agora", "yo", "vos", "es", "soy", "voy",
		"sois", "vais", "ti", "nosotros", "vosotros", "ellos",
		"nosotras", "vosotras", "ellas", "ella",
		"todo", "toda", "todos", "todas", "cada",
		"aqueste", "aquesta", "aquestos", "aquestas",
		"aquese", "aquesa", "aquesas", "aquesos",
		"este", "esta", "esto", "estos", "estas",
		"ese", "esos", "esa", "esas", "eso",
		"aquel", "aquella", "aquellos", "aquellas",
		"tuyo", "tuyos", "tuya", "tuyas",
		"suyo", "suya", "suyos", "suyas",
	)

	units = newSet(
		"uno", "una", "dos", "tres", "cuatro", "cinco", "seis",
		"siete", "ocho", "nueve",
	)

	courtesyTitles = newSet(
		"don", "doña", "sor", "fray",
		"santo", "san", "santa", "gran",
	)

	// taggingErrors are forms the tagger wrongly labels as nouns.
	taggingErrors = newSet("mas", "ei")

	cliticForms        = []string{"me", "te", "le", "nos", "les", "lo", "la", "los", "las"}
	clitics            = newSet(cliticForms...)
	shortPossessives   = newSet("mi", "tu", "su", "mis", "tus", "sus")
	unstressedAdverbs  = newSet("tan", "medio", "aun")
	stressedPronouns   = newSet("ti", "mí")
	possessivePrefixes = []string{"nuestr", "vuestr"}
	infinitiveInfixes  = []string{"ar", "er", "ir"}
)

type verdict int

const (
	undecided verdict = iota
	stressed
	unstressed
)

func decide(b bool) verdict {
	if b {
		return stressed
	}
	return unstressed
}

// stressState carries what the right-to-left pass remembers between
// words.
type stressState struct {
	adso bool
	// prev is the tag of the word to the right of the current one.
	prev PartOfSpeech
	// units is set after a stressed unit numeral.
	units bool
	// keepPrev stops the current word from overwriting prev.
	keepPrev bool
}

type wordInfo struct {
	word *Word
	text string
	// pos is the index counted from the end of the line.
	pos   int
	total int
}

// stressRule inspects one word and either decides or passes.
type stressRule struct {
	name  string
	apply func(st *stressState, w wordInfo) verdict
}

var stressRules = []stressRule{
	{"line-final", func(_ *stressState, w wordInfo) verdict {
		if w.pos == 0 {
			return stressed
		}
		return undecided
	}},
	{"numeral-connector", func(st *stressState, w wordInfo) verdict {
		if w.text == "y" && st.prev == POSNumeral {
			st.keepPrev = true
			return unstressed
		}
		return undecided
	}},
	{"closed-list", func(_ *stressState, w wordInfo) verdict {
		if unstressable.has(w.text) {
			return unstressed
		}
		return undecided
	}},
	{"interjection", func(st *stressState, w wordInfo) verdict {
		if !interjections.has(w.text) {
			return undecided
		}
		if !st.adso {
			return stressed
		}
		st.prev = POSNone
		st.keepPrev = true
		return undecided
	}},
	{"written-accent", func(_ *stressState, w wordInfo) verdict {
		if strings.ContainsAny(w.text, "áéíóú") {
			return stressed
		}
		return undecided
	}},
	{"numeral", numeralRule},
	{"determiner", determinerRule},
	{"noun", nounRule},
	{"adverb", adverbRule},
	{"pronoun", pronounRule},
	{"default", func(_ *stressState, w wordInfo) verdict {
		return decide(alwaysTonic.has(w.text) || slices.Contains(stressedPOS, w.word.POS))
	}},
}

// numeralRule stresses only the last unit of a compound numeral, so that
// "treinta y dos" carries a single prominence.
func numeralRule(st *stressState, w wordInfo) verdict {
	if w.word.POS != POSNumeral {
		return undecided
	}
	isUnit := units.has(w.text)
	switch {
	case st.prev != POSNumeral:
		st.units = isUnit
		return stressed
	case isUnit:
		ton := st.units
		st.units = true
		return decide(ton)
	default:
		st.units = false
		return unstressed
	}
}

func determinerRule(st *stressState, w wordInfo) verdict {
	if w.word.POS != POSDeterminer {
		return undecided
	}
	fts := w.word.Feats
	switch {
	case hasAnySuffix(w.text, cliticForms):
		return decide(!clitics.has(w.text))
	case fts.Get("PronType") == "Poss" || fts.Get("Poss") == "Yes":
		switch {
		case shortPossessives.has(w.text):
			return unstressed
		case hasAnyPrefix(w.text, possessivePrefixes):
			return decide(st.prev != POSProperNoun && st.prev != POSNoun && st.prev != POSAdjective)
		}
		return stressed
	case slices.Contains([]string{"Dem", "Ind", "Tot"}, fts.Get("PronType")):
		return stressed
	case fts.Has("Definite"):
		return decide(fts.Get("Definite") != "Def")
	}
	return undecided
}

func nounRule(st *stressState, w wordInfo) verdict {
	if w.word.POS != POSNoun && w.word.POS != POSProperNoun {
		return undecided
	}
	if courtesyTitles.has(w.text) && st.prev == POSProperNoun {
		return unstressed
	}
	return decide(!taggingErrors.has(w.text))
}

func adverbRule(st *stressState, w wordInfo) verdict {
	if w.word.POS != POSAdverb {
		return undecided
	}
	if unstressedAdverbs.has(w.text) {
		return unstressed
	}
	if w.text == "ya" && st.prev == POSSubordinating && w.pos+1 != w.total {
		return unstressed
	}
	return stressed
}

func pronounRule(_ *stressState, w wordInfo) verdict {
	if w.word.POS != POSPronoun {
		return undecided
	}
	fts := w.word.Feats
	pronType := fts.Get("PronType")
	switch {
	case alwaysTonic.has(w.text):
		return stressed
	case containsAny(w.text, infinitiveInfixes):
		return stressed
	case strings.HasSuffix(w.text, "igo"):
		return stressed
	case strings.Contains(pronType, "Int") || strings.Contains(pronType, "Rel"):
		return unstressed
	case hasAnyPrefix(w.text, possessivePrefixes):
		return stressed
	case !strings.Contains(fts.Get("Case"), "Nom") && pronType == "Prs" &&
		!stressedPronouns.has(w.text) && fts.Get("Poss") != "Yes":
		return unstressed
	}
	return stressed
}

func hasAnySuffix(s string, suffixes []string) bool {
	return slices.ContainsFunc(suffixes, func(x string) bool { return strings.HasSuffix(s, x) })
}

func hasAnyPrefix(s string, prefixes []string) bool {
	return slices.ContainsFunc(prefixes, func(x string) bool { return strings.HasPrefix(s, x) })
}

func containsAny(s string, parts []string) bool {
	return slices.ContainsFunc(parts, func(x string) bool { return strings.Contains(s, x) })
}

// AssignStress classifies every word of a line as stressed or unstressed,
// walking from the end of the line, and rewrites the syllables so that
// the stressed vowel is uppercase. Punctuation that carries letters is
// retagged as an adjective first.
func AssignStress(words []Word, adso bool, marker string) {
	if marker == "" {
		marker = DefaultStressMarker
	}
	st := &stressState{adso: adso}
	for i := len(words) - 1; i >= 0; i-- {
		w := &words[i]
		if w.POS == POSPunctuation && hasLetter(w.Text) {
			w.POS = POSAdjective
		}
		info := wordInfo{
			word:  w,
			text:  strings.ToLower(w.Text),
			pos:   len(words) - 1 - i,
			total: len(words),
		}
		st.keepPrev = false
		w.Stressed = false
		for _, rule := range stressRules {
			if v := rule.apply(st, info); v != undecided {
				w.Stressed = v == stressed
				log.Debug().
					Str("word", w.Text).
					Str("rule", rule.name).
					Bool("stressed", w.Stressed).
					Msg("stress")
				break
			}
		}
		MarkStress(w, marker)
		switch {
		case st.keepPrev:
		case info.text == "y":
			st.prev = POSNone
		default:
			st.prev = w.POS
		}
	}
	linkConjunctions(words)
}

// MarkStress strips the transcriber's stress marks and, for a stressed
// word, uppercases the vowels of the marked syllable. A stressed word the
// transcriber left unmarked gets the default Spanish stress. Marking an
// already marked word again changes nothing.
func MarkStress(w *Word, marker string) {
	if marker == "" {
		marker = DefaultStressMarker
	}
	marked := false
	for i, syl := range w.Syllables {
		s := string(syl)
		primary := strings.Contains(s, marker)
		s = strings.ReplaceAll(s, marker, "")
		s = strings.ReplaceAll(s, secondaryStressMarker, "")
		s = strings.TrimSpace(s)
		if primary && w.Stressed && !marked {
			s = stressReplacer.Replace(s)
			marked = true
		}
		w.Syllables[i] = Syllable(s)
	}
	if !w.Stressed || marked || len(w.Syllables) == 0 {
		return
	}
	if Chain(w.Syllables).StressIndex() >= 0 {
		return
	}
	idx := defaultStress(w.Text, len(w.Syllables))
	w.Syllables[idx] = Syllable(stressReplacer.Replace(string(w.Syllables[idx])))
}

// defaultStress applies the orthographic rule for unaccented words:
// words ending in a vowel, n or s are paroxytone, the rest oxytone.
func defaultStress(text string, n int) int {
	if n < 2 {
		return 0
	}
	last, _ := utf8.DecodeLastRuneInString(strings.ToLower(text))
	if strings.ContainsRune("aeiouns", last) {
		return n - 2
	}
	return n - 1
}

// linkConjunctions turns a standalone "y" between two vowels into a glide
// that links both words.
func linkConjunctions(words []Word) {
	for i := 1; i < len(words)-1; i++ {
		if words[i].Text != "y" || len(words[i].Syllables) == 0 {
			continue
		}
		prev, next := words[i-1].Syllables, words[i+1].Syllables
		if len(prev) == 0 || len(next) == 0 {
			continue
		}
		a := []rune(strings.ToLower(string(prev[len(prev)-1].Last())))
		b := []rune(strings.ToLower(string(next[0].First())))
		if len(a) == 1 && len(b) == 1 && strings.ContainsRune("aeiouwj", a[0]) && strings.ContainsRune("aeiouwj", b[0]) {
			words[i].Syllables[0] = "y"
		}
	}
}
