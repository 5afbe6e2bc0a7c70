package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/saamdocs/docgen-service/internal/document"
)

// Filter narrows a listing. Name is a case-insensitive substring match, Date
// an exact calendar-day match. Page is 1-based.
type Filter struct {
	Name     string
	Date     *time.Time
	Page     int
	PageSize int
}

// Repository is the gorm-backed store for generated documents.
type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a fully assembled record. The insert is atomic; a failure
// leaves no partial row.
func (r *Repository) Create(ctx context.Context, doc *document.GeneratedDocument) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return &document.PersistenceError{Msg: "insert document", Err: err}
	}
	return nil
}

// GetByDocID fetches a record by its provider document id.
func (r *Repository) GetByDocID(ctx context.Context, docID string) (*document.GeneratedDocument, error) {
	var doc document.GeneratedDocument
	err := r.db.WithContext(ctx).Where("doc_id = ?", docID).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, document.ErrNotFound
		}
		return nil, &document.PersistenceError{Msg: "get document", Err: err}
	}
	return &doc, nil
}

// List returns one page of records ordered by creation time descending, plus
// the total count before pagination.
func (r *Repository) List(ctx context.Context, f Filter) ([]document.GeneratedDocument, int64, error) {
	q := r.db.WithContext(ctx).Model(&document.GeneratedDocument{})

	if f.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Date != nil {
		q = q.Where("date = ?", *f.Date)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, &document.PersistenceError{Msg: "count documents", Err: err}
	}

	var docs []document.GeneratedDocument
	err := q.Order("created_at DESC, id DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&docs).Error
	if err != nil {
		return nil, 0, &document.PersistenceError{Msg: "list documents", Err: err}
	}
	return docs, total, nil
}

// AttachProviderInfo records the external identifiers after a successful
// upload. Content and the original fields are never touched.
func (r *Repository) AttachProviderInfo(ctx context.Context, id uint, googleDocID, docURL string) error {
	res := r.db.WithContext(ctx).Model(&document.GeneratedDocument{}).
		Where("id = ?", id).
		Updates(map[string]any{"google_doc_id": googleDocID, "doc_url": docURL})
	if res.Error != nil {
		return &document.PersistenceError{Msg: "attach provider info", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return document.ErrNotFound
	}
	return nil
}
