// Package language holds the per-language lexicon resources used by the
// search pipeline: synonym expansion, transliteration of non-Latin-script
// terms, and predefined query suggestions. The tables are data, not code,
// so new languages can be added without touching the matching logic.
package language

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Lexicon is the full language resource set for the search pipeline.
type Lexicon struct {
	// Synonyms maps a term to additional terms that should also be searched.
	Synonyms map[string][]string `yaml:"synonyms"`

	// Transliterations maps a language code to script-term -> Latin synonyms.
	// A query containing the script term is expanded with every Latin form.
	Transliterations map[string]map[string][]string `yaml:"transliterations"`

	// Suggestions maps a language code to its predefined query suggestions.
	Suggestions map[string][]string `yaml:"suggestions"`
}

// Default returns the built-in lexicon shipped with the service.
func Default() *Lexicon {
	return &Lexicon{
		Synonyms: map[string][]string{
			"dog":     {"puppy", "canine", "pet"},
			"puppy":   {"dog", "pup"},
			"vaccine": {"vaccination", "shot", "immunization"},
			"vet":     {"veterinarian", "veterinary", "doctor"},
			"food":    {"diet", "feeding", "nutrition"},
			"sick":    {"ill", "unwell", "disease"},
			"train":   {"training", "obedience"},
			"groom":   {"grooming", "bath", "haircut"},
			"tick":    {"ticks", "flea", "fleas"},
			"walk":    {"walking", "exercise"},
		},
		Transliterations: map[string]map[string][]string{
			"hi": {
				"कुत्ता": {"dog", "kuttha", "kutta"},
				"टीका":   {"vaccine", "tika", "teeka"},
				"खाना":   {"food", "khana"},
				"बीमार":  {"sick", "bimar", "beemar"},
				"डॉक्टर": {"doctor", "vet", "daktar"},
			},
		},
		Suggestions: map[string][]string{
			"en": {
				"dog vaccination schedule",
				"puppy food recommendations",
				"emergency vet near me",
				"dog grooming tips",
				"tick and flea treatment",
				"dog training basics",
				"healthy dog weight",
				"dog walking routine",
			},
			"hi": {
				"कुत्ते का टीकाकरण",
				"कुत्ते का खाना",
				"आपातकालीन पशु चिकित्सक",
				"कुत्ते की देखभाल",
			},
		},
	}
}

// Load reads a lexicon from a YAML file. Sections missing from the file
// fall back to the built-in defaults.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon %s: %w", path, err)
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon %s: %w", path, err)
	}

	def := Default()
	if lex.Synonyms == nil {
		lex.Synonyms = def.Synonyms
	}
	if lex.Transliterations == nil {
		lex.Transliterations = def.Transliterations
	}
	if lex.Suggestions == nil {
		lex.Suggestions = def.Suggestions
	}

	return &lex, nil
}
