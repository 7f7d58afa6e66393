package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/diffscraper"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ diffscraper.TemplateService = (*TemplateService)(nil)

// TemplateService implements diffscraper.TemplateService using SQLite.
// Templates are content addressed: at most one record exists per root.
type TemplateService struct {
	db *DB
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(db *DB) *TemplateService {
	return &TemplateService{db: db}
}

// CreateTemplate registers a template with a generated ID and timestamp.
func (s *TemplateService) CreateTemplate(ctx context.Context, rec *diffscraper.TemplateRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	root := rec.Template.Root.String()
	var existing string
	err = tx.QueryRowContext(ctx, "SELECT id FROM templates WHERE root = ?", root).Scan(&existing)
	switch {
	case err == nil:
		return diffscraper.Errorf(diffscraper.ECONFLICT, "template %s already registered as %s", root, existing)
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC().Truncate(time.Second)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO templates (id, name, root, documents, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, rec.Name, root, rec.Documents, createdAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for i, seg := range rec.Template.Segments {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO template_segments (template_id, position, content)
			VALUES (?, ?, ?)
		`, id, i, seg); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	rec.ID = id
	rec.CreatedAt = createdAt
	return nil
}

// FindTemplateByID retrieves a template by ID.
func (s *TemplateService) FindTemplateByID(ctx context.Context, id string) (*diffscraper.TemplateRecord, error) {
	return s.findOne(ctx, "id = ?", id)
}

// FindTemplateByRoot retrieves a template by its Merkle root.
func (s *TemplateService) FindTemplateByRoot(ctx context.Context, root diffscraper.Digest) (*diffscraper.TemplateRecord, error) {
	return s.findOne(ctx, "root = ?", root.String())
}

func (s *TemplateService) findOne(ctx context.Context, where string, arg any) (*diffscraper.TemplateRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, root, documents, created_at FROM templates WHERE "+where, arg)
	rec, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, diffscraper.Errorf(diffscraper.ENOTFOUND, "template not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadSegments(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// FindTemplates retrieves templates matching the filter, newest first.
func (s *TemplateService) FindTemplates(ctx context.Context, filter diffscraper.TemplateFilter) ([]*diffscraper.TemplateRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, root, documents, created_at FROM templates WHERE 1=1")

	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []*diffscraper.TemplateRecord{}
	for rows.Next() {
		rec, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, rec := range recs {
		if err := s.loadSegments(ctx, rec); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

// DeleteTemplate permanently removes a template and its segments.
func (s *TemplateService) DeleteTemplate(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM templates WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return diffscraper.Errorf(diffscraper.ENOTFOUND, "template not found")
	}
	return nil
}

// loadSegments fills rec.Template.Segments in position order.
func (s *TemplateService) loadSegments(ctx context.Context, rec *diffscraper.TemplateRecord) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT content FROM template_segments
		WHERE template_id = ?
		ORDER BY position
	`, rec.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	segments := []string{}
	for rows.Next() {
		var seg string
		if err := rows.Scan(&seg); err != nil {
			return err
		}
		segments = append(segments, seg)
	}
	rec.Template.Segments = segments
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row scanner) (*diffscraper.TemplateRecord, error) {
	var rec diffscraper.TemplateRecord
	var root, createdAt string

	if err := row.Scan(&rec.ID, &rec.Name, &root, &rec.Documents, &createdAt); err != nil {
		return nil, err
	}

	digest, err := diffscraper.ParseDigest(root)
	if err != nil {
		return nil, err
	}
	rec.Template = &diffscraper.Template{Root: digest}

	rec.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
