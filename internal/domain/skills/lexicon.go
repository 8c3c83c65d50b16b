// Package skills holds the technology lexicon and the text matcher built on it.
package skills

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// DefaultEntries is the built-in technology vocabulary
var DefaultEntries = []string{
	// languages
	"python", "java", "javascript", "typescript", "c++", "c#", ".net",
	"go", "golang", "rust", "ruby", "php", "swift", "kotlin", "scala",
	"r", "matlab", "perl", "bash", "shell", "powershell",
	// web frameworks
	"django", "flask", "fastapi", "spring", "react", "vue", "angular",
	"express", "node.js", "nodejs", "next.js", "nextjs", "nuxt",
	"laravel", "symfony", "rails", "ruby on rails",
	// databases
	"sql", "mysql", "postgresql", "postgres", "mongodb", "redis",
	"cassandra", "elasticsearch", "dynamodb", "oracle", "sqlite",
	// cloud and devops
	"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "k8s",
	"jenkins", "gitlab", "github actions", "terraform", "ansible",
	"ci/cd", "cicd", "devops",
	// data and ml
	"pandas", "numpy", "scikit-learn", "sklearn", "tensorflow", "pytorch",
	"keras", "machine learning", "deep learning", "nlp", "data science",
	"apache spark", "spark", "hadoop", "kafka",
	// frontend
	"html", "css", "sass", "scss", "less", "bootstrap", "tailwind",
	"webpack", "vite", "npm", "yarn",
	// other
	"git", "linux", "rest api", "graphql", "microservices", "agile",
	"scrum", "api", "rest", "soap",
}

// Lexicon is an immutable, ordered set of canonical skill names with their
// compiled matchers. The zero value matches nothing.
type Lexicon struct {
	entries  []string
	patterns []*regexp.Regexp
}

// NewLexicon lowercases, trims and de-duplicates entries, keeping first-seen order
func NewLexicon(entries []string) (Lexicon, error) {
	seen := make(map[string]struct{}, len(entries))
	lx := Lexicon{
		entries:  make([]string, 0, len(entries)),
		patterns: make([]*regexp.Regexp, 0, len(entries)),
	}

	for _, raw := range entries {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		re, err := compile(name)
		if err != nil {
			return Lexicon{}, fmt.Errorf("skills: compile %q: %w", name, err)
		}
		lx.entries = append(lx.entries, name)
		lx.patterns = append(lx.patterns, re)
	}

	return lx, nil
}

// MustLexicon is NewLexicon for static vocabularies
func MustLexicon(entries []string) Lexicon {
	lx, err := NewLexicon(entries)
	if err != nil {
		panic(err)
	}
	return lx
}

// Default returns the lexicon built from DefaultEntries
func Default() Lexicon {
	return MustLexicon(DefaultEntries)
}

// Entries returns a copy of the canonical names in lexicon order
func (l Lexicon) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len is the number of distinct entries
func (l Lexicon) Len() int {
	return len(l.entries)
}

// Contains reports whether name is a canonical entry
func (l Lexicon) Contains(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range l.entries {
		if e == name {
			return true
		}
	}
	return false
}

// compile anchors word boundaries only on sides that end in a word character,
// so "c++" and ".net" still match literally next to punctuation and spaces.
func compile(name string) (*regexp.Regexp, error) {
	runes := []rune(name)
	var b strings.Builder
	if isWord(runes[0]) {
		b.WriteString(`\b`)
	}
	b.WriteString(regexp.QuoteMeta(name))
	if isWord(runes[len(runes)-1]) {
		b.WriteString(`\b`)
	}
	return regexp.Compile(b.String())
}

func isWord(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}
