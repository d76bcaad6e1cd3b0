// Package names canonicalizes force labels and resolves alias spellings
// ("fg", "tyngde", "F_g") to the canonical expected-force name.
package names

import "strings"

var stripper = strings.NewReplacer(" ", "", "_", "", "^", "", "{", "", "}", "")

// Normalize lower-cases raw and strips spaces, underscores, carets, and braces.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	return stripper.Replace(strings.ToLower(strings.TrimSpace(raw)))
}

// SameLabel compares two labels ignoring case and surrounding whitespace.
// It is the looser comparison used to recognise pre-drawn forces.
func SameLabel(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

// Entry is one canonical name with its alternate spellings.
type Entry struct {
	Name    string
	Aliases []string
}

// Resolver maps normalized spellings to canonical names.
type Resolver struct {
	table map[string]string
}

// NewResolver builds the alias table. Later entries win when two forces
// claim the same normalized spelling.
func NewResolver(entries []Entry) *Resolver {
	r := &Resolver{table: make(map[string]string, len(entries)*4)}
	for _, e := range entries {
		r.table[Normalize(e.Name)] = e.Name
		for _, a := range e.Aliases {
			r.table[Normalize(a)] = e.Name
		}
	}
	return r
}

// Resolve returns the canonical name for drawn, if any.
func (r *Resolver) Resolve(drawn string) (string, bool) {
	key := Normalize(drawn)
	if key == "" || r == nil {
		return "", false
	}
	canon, ok := r.table[key]
	return canon, ok
}

// Matches reports whether drawn names the force called canonical, either
// directly or through one of its aliases.
func (r *Resolver) Matches(drawn, canonical string) bool {
	d := Normalize(drawn)
	if d == "" {
		return false
	}
	if d == Normalize(canonical) {
		return true
	}
	got, ok := r.Resolve(drawn)
	return ok && got == canonical
}
