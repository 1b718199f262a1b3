// Package intent classifies short user replies as affirmative, negative or
// neither. It is a fixed-vocabulary token check, not sentiment analysis.
package intent

import "github.com/notarialabs/intake/internal/nlp"

type Intent int

const (
	Neither Intent = iota
	Affirmative
	Negative
)

func (i Intent) String() string {
	switch i {
	case Affirmative:
		return "affirmative"
	case Negative:
		return "negative"
	default:
		return "neither"
	}
}

// The two vocabularies are disjoint by construction; Classify checks
// affirmatives first, so a (misconfigured) overlap would resolve that way.
var affirmatives = map[string]bool{
	"si": true, "s": true, "ok": true, "claro": true, "confirmo": true,
	"confirmar": true, "dale": true, "vamos": true, "start": true,
	"comenzar": true, "yes": true,
}

var negatives = map[string]bool{
	"no": true, "n": true, "negativo": true, "cancelar": true,
	"otra": true, "cambiar": true, "not": true, "nope": true,
}

// maxReplyTokens bounds what still counts as a yes/no reply. Longer
// messages are content, not confirmation: a dictated clause like "El
// inquilino no podrá subarrendar" must never read as a "no".
const maxReplyTokens = 4

// Classify tokenizes the text (lowercased, accent-folded, punctuation
// stripped) and reports the first vocabulary any token belongs to.
// Affirmatives are checked across all tokens first. Empty, long or
// unrelated input is Neither.
func Classify(text string) Intent {
	tokens := nlp.Tokens(text)
	if len(tokens) == 0 || len(tokens) > maxReplyTokens {
		return Neither
	}
	for _, tok := range tokens {
		if affirmatives[tok] {
			return Affirmative
		}
	}
	for _, tok := range tokens {
		if negatives[tok] {
			return Negative
		}
	}
	return Neither
}

// IsAffirmative is a convenience wrapper for Classify.
func IsAffirmative(text string) bool { return Classify(text) == Affirmative }

// IsNegative is a convenience wrapper for Classify.
func IsNegative(text string) bool { return Classify(text) == Negative }

// AffirmativeWords returns the canonical affirmative vocabulary.
func AffirmativeWords() []string { return keys(affirmatives) }

// NegativeWords returns the canonical negative vocabulary.
func NegativeWords() []string { return keys(negatives) }

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
