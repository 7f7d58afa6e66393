package diffscraper

// TokenKind identifies the structural role of a token.
type TokenKind int

// TokenKind constants.
const (
	TextToken TokenKind = iota + 1
	StartTagToken
	EndTagToken
	SelfClosingTagToken
	CommentToken
	DoctypeToken
)

// String returns the lowercase name of the kind.
func (k TokenKind) String() string {
	switch k {
	case TextToken:
		return "text"
	case StartTagToken:
		return "start"
	case EndTagToken:
		return "end"
	case SelfClosingTagToken:
		return "startend"
	case CommentToken:
		return "comment"
	case DoctypeToken:
		return "doctype"
	default:
		return "unknown"
	}
}

// Attr is a single name/value attribute pair on a tag.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Token is an indivisible slice of document text together with the
// structural metadata the tokenizer recognised in it.
type Token struct {
	Kind TokenKind `json:"kind"`

	// Raw is the exact source text. Concatenating the Raw field of every
	// token in order reproduces the tokenized document.
	Raw string `json:"raw"`

	Tag   string `json:"tag,omitempty"`
	Attrs []Attr `json:"attrs,omitempty"`

	// Data holds text content with surrounding whitespace removed.
	Data string `json:"data,omitempty"`
}

// IsTag reports whether the token is a start, end or self-closing tag.
func (t Token) IsTag() bool {
	return t.Kind == StartTagToken || t.Kind == EndTagToken || t.Kind == SelfClosingTagToken
}

// Attr returns the value of the named attribute.
func (t Token) Attr(name string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Tokenizer splits a raw document into tokens. Every call returns a fresh,
// independent token slice.
type Tokenizer interface {
	Tokenize(doc string) ([]Token, error)
}

// Texts returns the Raw text of each token.
func Texts(tokens []Token) []string {
	texts := make([]string, len(tokens))
	for i, t := range tokens {
		texts[i] = t.Raw
	}
	return texts
}
