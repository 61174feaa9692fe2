package labels

// Term is one controlled-vocabulary entry.
type Term struct {
	Full string
	Code string
}

// Vocabulary is an ordered table of terms with precomputed comparison keys.
type Vocabulary struct {
	terms []Term
	index map[string]string
}

// NewVocabulary builds a vocabulary. When two terms normalize to the same key
// the first one wins.
func NewVocabulary(terms []Term) *Vocabulary {
	v := &Vocabulary{
		terms: terms,
		index: make(map[string]string, len(terms)),
	}
	for _, t := range terms {
		key := Normalize(t.Full)
		if _, dup := v.index[key]; !dup {
			v.index[key] = t.Code
		}
	}
	return v
}

// Lookup returns the code of the term whose normalized form equals the
// normalized label.
func (v *Vocabulary) Lookup(label string) (string, bool) {
	code, ok := v.index[Normalize(label)]
	return code, ok
}

// Terms returns the table in declaration order.
func (v *Vocabulary) Terms() []Term {
	return append([]Term(nil), v.terms...)
}

// MorphologyTerms are the morphology labels used by the dictionary.
var MorphologyTerms = []Term{
	{"etat d'annexion", "annex"},
	{"pluriel etat libre", "pl_lib"},
	{"pluriel etat d'annexion", "pl_annex"},
	{"féminin etat libre", "fem_lib"},
	{"féminin etat d'annexion", "fem_annex"},
	{"féminin pluriel etat libre", "fem_pl_lib"},
	{"féminin pluriel etat d'annexion", "fem_pl_annex"},
	{"accompli", "accomp"},
	{"accompli négatif", "accomp_neg"},
	{"inaccompli", "inaccomp"},
}

// PartOfSpeechTerms are the grammatical category labels used by the dictionary.
var PartOfSpeechTerms = []Term{
	{"adjectif", "adj"},
	{"adverbe", "adv"},
	{"auxiliaire", "aux"},
	{"complément dʼobjet direct", "cod"},
	{"conjonction", "conj"},
	{"déictique", "deic"},
	{"démonstratif", "dém"},
	{"déterminant", "dét"},
	{"exclamatif", "excl"},
	{"féminin", "fém"},
	{"grammaire", "gram"},
	{"interjection", "interj"},
	{"interrogation", "interrog"},
	{"intransitif", "intr"},
	{"littéralement", "litt"},
	{"locution", "loc"},
	{"masculin", "masc"},
	{"nom", "n"},
	{"nom masculin", "nmasc"},
	{"nom féminin", "nfem"},
	{"nom collectif", "ncol"},
	{"néologisme", "néo"},
	{"onomatopée", "ono"},
	{"numéral", "num"},
	{"particule", "part"},
	{"participe", "pcp"},
	{"personne", "pers"},
	{"pluriel", "pl"},
	{"présentatif", "prés"},
	{"pronom", "pron"},
	{"singulier", "sing"},
	{"transitif", "tr"},
	{"verbe", "v"},
	{"variante", "var"},
	{"subordonnant", "sub"},
}

var (
	MorphologyVocabulary   = NewVocabulary(MorphologyTerms)
	PartOfSpeechVocabulary = NewVocabulary(PartOfSpeechTerms)
)
