// Package nlp holds the process-wide Spanish text normalizer. The model is
// initialized once on first use; callers that need it must tolerate a nil
// model and fall back to plain token matching.
package nlp

import (
	"bufio"
	"log"
	"os"
	"strings"
	"sync"
)

type Model struct {
	lemmas map[string]string
}

var (
	once  sync.Once
	model *Model
)

// LemmaFileEnv names an optional newline-delimited "form lemma" dictionary
// that extends the built-in table.
const LemmaFileEnv = "INTAKE_LEMMAS"

// Get returns the shared model, loading it on first use. It never fails: a
// missing dictionary file just means the built-in table alone is used.
func Get() *Model {
	once.Do(func() {
		m := &Model{lemmas: builtinLemmas()}
		if path := os.Getenv(LemmaFileEnv); path != "" {
			if err := m.loadLemmaFile(path); err != nil {
				log.Printf("nlp: lemma file %s not loaded: %v", path, err)
			}
		}
		model = m
	})
	return model
}

// Available reports whether the shared model has been initialized.
func Available() bool {
	return model != nil
}

var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u",
)

// Fold lowercases and strips Spanish diacritics, leaving ñ intact.
func Fold(s string) string {
	return strings.ToLower(accentFolder.Replace(s))
}

const punctuation = ".,;:¡!¿?\"'()"

// Tokens splits text into lowercase accent-folded tokens with surrounding
// punctuation removed. Empty tokens are dropped.
func Tokens(s string) []string {
	fields := strings.Fields(Fold(s))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, punctuation)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Lemma reduces a single token to its base form: dictionary lookup first,
// then a plural-stripping heuristic.
func (m *Model) Lemma(word string) string {
	w := strings.Trim(Fold(word), punctuation)
	if w == "" {
		return ""
	}
	if base, ok := m.lemmas[w]; ok {
		return base
	}
	if strings.HasSuffix(w, "es") && len(w) > 4 {
		return w[:len(w)-2]
	}
	if strings.HasSuffix(w, "s") && len(w) > 3 {
		return w[:len(w)-1]
	}
	return w
}

// Lemmas returns the set of base forms for every token in the text.
func (m *Model) Lemmas(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range Tokens(text) {
		if l := m.Lemma(tok); l != "" {
			set[l] = true
		}
	}
	return set
}

func (m *Model) loadLemmaFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		parts := strings.Fields(sc.Text())
		if len(parts) == 2 {
			m.lemmas[Fold(parts[0])] = Fold(parts[1])
		}
	}
	return sc.Err()
}

// builtinLemmas covers the inflections the clause catalog keywords actually
// need; everything else goes through the plural heuristic.
func builtinLemmas() map[string]string {
	return map[string]string{
		"subarriende":  "subarrendar",
		"subarrendara": "subarrendar",
		"subarrendado": "subarrendar",
		"subarriendos": "subarriendo",
		"alquile":      "alquilar",
		"alquilara":    "alquilar",
		"alquilado":    "alquilar",
		"terceros":     "tercero",
		"mascotas":     "mascota",
		"perros":       "perro",
		"perra":        "perro",
		"gatos":        "gato",
		"gata":         "gato",
		"animales":     "animal",
		"daños":        "daño",
		"dañado":       "daño",
		"dañar":        "daño",
		"rompa":        "romper",
		"roto":         "romper",
		"rompe":        "romper",
		"malogre":      "malograr",
		"malogrado":    "malograr",
		"deterioros":   "deterioro",
		"deteriorado":  "deterioro",
		"reparaciones": "reparacion",
		"reparar":      "reparacion",
		"moras":        "mora",
		"moroso":       "mora",
		"retrasos":     "retraso",
		"retraso":      "retraso",
		"atraso":       "retraso",
		"atrasos":      "retraso",
		"tardanzas":    "tardanza",
		"penalidades":  "penalidad",
		"multas":       "multa",
		"intereses":    "interes",
	}
}
