package diffscraper

import (
	"fmt"
	"strconv"
	"strings"
)

// PredicateKind identifies which structural test a Predicate performs.
type PredicateKind string

// PredicateKind constants. The values double as the function names used by
// Predicate.String and ParsePredicate.
const (
	PredicateStartTag  PredicateKind = "starttag"
	PredicateTagAttr   PredicateKind = "tagattr"
	PredicateClass     PredicateKind = "class"
	PredicateInnerText PredicateKind = "inner_text"
)

// Predicate is a pure test over one token's structural metadata.
type Predicate struct {
	Kind  PredicateKind `json:"kind" toml:"kind"`
	Tag   string        `json:"tag,omitempty" toml:"tag,omitempty"`
	Name  string        `json:"name,omitempty" toml:"name,omitempty"`
	Value string        `json:"value,omitempty" toml:"value,omitempty"`
	Text  string        `json:"text,omitempty" toml:"text,omitempty"`
}

// StartTag matches a start tag with the given name. Self-closing tags are
// not matched.
func StartTag(tag string) Predicate {
	return Predicate{Kind: PredicateStartTag, Tag: tag}
}

// TagAttr matches a tag with the given name carrying the attribute
// name=value. It never matches the class attribute; use Class instead.
func TagAttr(tag, name, value string) Predicate {
	return Predicate{Kind: PredicateTagAttr, Tag: tag, Name: name, Value: value}
}

// Class matches a tag whose class attribute contains substr.
func Class(substr string) Predicate {
	return Predicate{Kind: PredicateClass, Text: substr}
}

// InnerText matches a text token containing word as a whole word, ignoring
// surrounding punctuation. Matching is case-sensitive.
func InnerText(word string) Predicate {
	return Predicate{Kind: PredicateInnerText, Text: word}
}

// Match reports whether the token satisfies the predicate.
func (p Predicate) Match(t Token) bool {
	switch p.Kind {
	case PredicateStartTag:
		return t.Kind == StartTagToken && t.Tag == p.Tag
	case PredicateTagAttr:
		if p.Name == "class" || !t.IsTag() || t.Tag != p.Tag {
			return false
		}
		for _, a := range t.Attrs {
			if a.Name == p.Name && a.Value == p.Value {
				return true
			}
		}
		return false
	case PredicateClass:
		for _, a := range t.Attrs {
			if a.Name == "class" && strings.Contains(a.Value, p.Text) {
				return true
			}
		}
		return false
	case PredicateInnerText:
		if t.Kind != TextToken {
			return false
		}
		for _, w := range Words(t.Data) {
			if w == p.Text {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// String renders the predicate in the call form accepted by ParsePredicate.
func (p Predicate) String() string {
	switch p.Kind {
	case PredicateStartTag:
		return fmt.Sprintf("%s(%q)", p.Kind, p.Tag)
	case PredicateTagAttr:
		return fmt.Sprintf("%s(%q, %q, %q)", p.Kind, p.Tag, p.Name, p.Value)
	default:
		return fmt.Sprintf("%s(%q)", p.Kind, p.Text)
	}
}

// ParsePredicate parses the call form produced by Predicate.String, for
// example `tagattr("div", "id", "main")`.
func ParsePredicate(s string) (Predicate, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Predicate{}, Errorf(EINVALID, "invalid selector %q", s)
	}
	name := strings.TrimSpace(s[:open])
	args, err := parseArgs(s[open+1 : len(s)-1])
	if err != nil {
		return Predicate{}, Errorf(EINVALID, "invalid selector %q: %s", s, err)
	}

	want := 1
	if PredicateKind(name) == PredicateTagAttr {
		want = 3
	}
	if len(args) != want {
		return Predicate{}, Errorf(EINVALID, "selector %s takes %d argument(s), got %d", name, want, len(args))
	}

	switch PredicateKind(name) {
	case PredicateStartTag:
		return StartTag(args[0]), nil
	case PredicateTagAttr:
		return TagAttr(args[0], args[1], args[2]), nil
	case PredicateClass:
		return Class(args[0]), nil
	case PredicateInnerText:
		return InnerText(args[0]), nil
	default:
		return Predicate{}, Errorf(EINVALID, "unknown selector %q", name)
	}
}

// ParsePredicates parses each string with ParsePredicate.
func ParsePredicates(ss []string) ([]Predicate, error) {
	preds := make([]Predicate, 0, len(ss))
	for _, s := range ss {
		p, err := ParsePredicate(s)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

func parseArgs(s string) ([]string, error) {
	var args []string
	s = strings.TrimSpace(s)
	for s != "" {
		quoted, err := strconv.QuotedPrefix(s)
		if err != nil {
			return nil, fmt.Errorf("expected quoted argument at %q", s)
		}
		arg, err := strconv.Unquote(quoted)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		s = strings.TrimSpace(s[len(quoted):])
		if s == "" {
			break
		}
		if s[0] != ',' {
			return nil, fmt.Errorf("expected ',' at %q", s)
		}
		s = strings.TrimSpace(s[1:])
		if s == "" {
			return nil, fmt.Errorf("trailing ','")
		}
	}
	return args, nil
}

// Select evaluates the AND of preds against every token of every invariant
// segment's features. When exactly one token matches it returns that
// segment's index plus offset. Returns ENOTFOUND when nothing matches and
// EAMBIGUOUS when more than one token matches.
func Select(features [][]Token, preds []Predicate, offset int) (int, error) {
	count, found := 0, 0
	for i, tokens := range features {
		for _, t := range tokens {
			if matchAll(preds, t) {
				count++
				found = i
			}
		}
	}
	switch {
	case count == 0:
		return 0, Errorf(ENOTFOUND, "no segment matches %s", formatPredicates(preds))
	case count > 1:
		return 0, Errorf(EAMBIGUOUS, "%d tokens match %s", count, formatPredicates(preds))
	}
	return found + offset, nil
}

func matchAll(preds []Predicate, t Token) bool {
	for _, p := range preds {
		if !p.Match(t) {
			return false
		}
	}
	return true
}

func formatPredicates(preds []Predicate) string {
	ss := make([]string, len(preds))
	for i, p := range preds {
		ss[i] = p.String()
	}
	return "[" + strings.Join(ss, ", ") + "]"
}

// Words splits text on whitespace and trims ASCII punctuation from each
// word. Words that are entirely punctuation are omitted.
func Words(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, isASCIIPunct)
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func isASCIIPunct(r rune) bool {
	return strings.ContainsRune(asciiPunctuation, r)
}
