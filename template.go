package diffscraper

import (
	"context"
	"encoding/hex"
	"time"
)

// DigestSize is the size of a Digest in bytes.
const DigestSize = 8

// Digest is a fixed-size content hash.
type Digest [DigestSize]byte

// ParseDigest decodes a lowercase hex rendering of a Digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != DigestSize {
		return d, Errorf(EINVALID, "invalid digest %q", s)
	}
	copy(d[:], b)
	return d, nil
}

// String returns the lowercase hex rendering of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether every byte of the digest is zero.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(b []byte) error {
	v, err := ParseDigest(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Template is the ordered list of invariant segments shared by a family of
// documents, together with the Merkle root computed over them.
type Template struct {
	Segments []string `json:"invariant_segments"`
	Root     Digest   `json:"merkle_root"`
}

// Validate returns an error if the template contains invalid fields.
func (t *Template) Validate() error {
	if t == nil {
		return Errorf(EINVALID, "template required")
	}
	for i, s := range t.Segments {
		if s == "" {
			return Errorf(EINVALID, "invariant segment %d is empty", i)
		}
	}
	return nil
}

// Data holds the variant segments of one document extracted against a
// template, plus the digests needed to verify reconstruction.
type Data struct {
	Segments     []string `json:"data_segments"`
	TemplateRoot Digest   `json:"merkle_root_template"`
	DataRoot     Digest   `json:"merkle_root_data"`
	OriginalHash Digest   `json:"original_hash"`
}

// Codec serializes templates and data objects.
type Codec interface {
	EncodeTemplate(t *Template) ([]byte, error)
	DecodeTemplate(b []byte) (*Template, error)
	EncodeData(d *Data) ([]byte, error)
	DecodeData(b []byte) (*Data, error)
}

// TemplateRecord is a template registered under a stable identifier.
type TemplateRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Template  *Template `json:"template"`
	Documents int       `json:"documents"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *TemplateRecord) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "template name required")
	}
	if r.Template == nil {
		return Errorf(EINVALID, "template required")
	}
	return r.Template.Validate()
}

// TemplateFilter represents a filter for FindTemplates.
type TemplateFilter struct {
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// TemplateService represents a registry of generated templates.
type TemplateService interface {
	// CreateTemplate registers a template. Registering a template whose
	// root already exists returns ECONFLICT.
	CreateTemplate(ctx context.Context, rec *TemplateRecord) error

	// FindTemplateByID retrieves a template by ID.
	// Returns ENOTFOUND if template does not exist.
	FindTemplateByID(ctx context.Context, id string) (*TemplateRecord, error)

	// FindTemplateByRoot retrieves a template by its Merkle root.
	// Returns ENOTFOUND if template does not exist.
	FindTemplateByRoot(ctx context.Context, root Digest) (*TemplateRecord, error)

	// FindTemplates retrieves templates matching the filter.
	FindTemplates(ctx context.Context, filter TemplateFilter) ([]*TemplateRecord, error)

	// DeleteTemplate permanently removes a template.
	// Returns ENOTFOUND if template does not exist.
	DeleteTemplate(ctx context.Context, id string) error
}

// Generator infers the invariant segments shared by documents.
type Generator interface {
	Generate(ctx context.Context, docs []string) ([]string, error)

	// Update regenerates the segments of an existing template with
	// additional documents.
	Update(ctx context.Context, tmpl *Template, docs []string) ([]string, error)
}
