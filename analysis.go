package escansion

// PartOfSpeech is a Universal Dependencies UPOS tag as produced by the
// annotator.
type PartOfSpeech string

const (
	POSAdjective     PartOfSpeech = "ADJ"
	POSAdposition    PartOfSpeech = "ADP"
	POSAdverb        PartOfSpeech = "ADV"
	POSAuxiliary     PartOfSpeech = "AUX"
	POSConjunction   PartOfSpeech = "CCONJ"
	POSDeterminer    PartOfSpeech = "DET"
	POSInterjection  PartOfSpeech = "INTJ"
	POSNoun          PartOfSpeech = "NOUN"
	POSNumeral       PartOfSpeech = "NUM"
	POSParticle      PartOfSpeech = "PART"
	POSPronoun       PartOfSpeech = "PRON"
	POSProperNoun    PartOfSpeech = "PROPN"
	POSPunctuation   PartOfSpeech = "PUNCT"
	POSSubordinating PartOfSpeech = "SCONJ"
	POSSymbol        PartOfSpeech = "SYM"
	POSVerb          PartOfSpeech = "VERB"
	POSOther         PartOfSpeech = "X"
	POSNone          PartOfSpeech = ""
)

// Ambiguity describes how much metrical licence the fitter took.
type Ambiguity int

const (
	// AmbiguityNone: the natural count, or the natural count after every
	// available synaloepha, matched the target.
	AmbiguityNone Ambiguity = 0
	// AmbiguityLicence: only part of the synaloephas were applied, or
	// diphthongs were split by hiatus.
	AmbiguityLicence Ambiguity = 1
	// AmbiguityHemistich: a word was shortened to repair a stress on the
	// fourth or sixth position of a long line.
	AmbiguityHemistich Ambiguity = 2
)

// Verse is the scansion of one line.
type Verse struct {
	// Line is the raw input line.
	Line string `json:"line"`
	// Syllables holds the final syllabification, one chain per
	// phonological word.
	Syllables []Chain `json:"syllables"`
	// Ambiguity is the licence level of the accepted fit.
	Ambiguity Ambiguity `json:"ambiguity"`
	// Count is the metrical syllable count, including the line-final
	// stress correction.
	Count int `json:"count"`
	// Estimate is the natural count minus the likely synaloephas.
	Estimate int `json:"estimate"`
	// Candidates lists the target lengths in the order they were tried.
	Candidates []int `json:"candidates"`
	// Resolved is false when no candidate length could be reached; Count
	// then reports the last attempt.
	Resolved bool `json:"resolved"`
	// Assonance holds the vowels of the rhyme.
	Assonance string `json:"assonance"`
	// Consonance holds the full rhyme from the last stressed vowel.
	Consonance string `json:"consonance"`
	// Rhythm has one '+' or '-' per syllable.
	Rhythm string `json:"rhythm"`
	// Nuclei concatenates the full vowels of the line.
	Nuclei string `json:"nuclei"`
}
