package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saamdocs/docgen-service/internal/cache"
	"github.com/saamdocs/docgen-service/internal/document"
	"github.com/saamdocs/docgen-service/internal/document/repository"
	"github.com/saamdocs/docgen-service/internal/document/template"
	"github.com/saamdocs/docgen-service/internal/provider"
	"github.com/saamdocs/docgen-service/pkg/logger"
	"github.com/saamdocs/docgen-service/pkg/metrics"
)

const (
	listCacheOp     = "documents:list"
	listCachePrefix = listCacheOp + ":"

	defaultListTTL = 5 * time.Minute
)

// Store is the persistence surface the service depends on.
type Store interface {
	Create(ctx context.Context, doc *document.GeneratedDocument) error
	GetByDocID(ctx context.Context, docID string) (*document.GeneratedDocument, error)
	List(ctx context.Context, f repository.Filter) ([]document.GeneratedDocument, int64, error)
	AttachProviderInfo(ctx context.Context, id uint, googleDocID, docURL string) error
}

// Archiver receives a best-effort copy of rendered content.
type Archiver interface {
	Put(ctx context.Context, key, content string) error
}

// Service runs the generation pipeline (validate, render, provider, persist,
// cache invalidation) and the cached read path.
type Service struct {
	store    Store
	provider provider.Provider
	cache    cache.Cache
	archive  Archiver
	listTTL  time.Duration
}

type Option func(*Service)

// WithArchive enables archiving of rendered content.
func WithArchive(a Archiver) Option {
	return func(s *Service) { s.archive = a }
}

// WithListTTL overrides the TTL of cached list responses.
func WithListTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.listTTL = d
		}
	}
}

func New(store Store, p provider.Provider, c cache.Cache, opts ...Option) *Service {
	s := &Service{store: store, provider: p, cache: c, listTTL: defaultListTTL}
	for _, o := range opts {
		o(s)
	}
	return s
}

// GenerateRequest carries the raw generation inputs.
type GenerateRequest struct {
	Name         string
	Date         string
	Amount       float64
	TemplateType string
}

// Generate validates the request, renders the template, creates the remote
// document and persists the record. The first validation/template/provider
// error aborts the pipeline before any row is written; no partially filled
// record ever reaches the store.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*document.GeneratedDocument, error) {
	if req.TemplateType == "" {
		req.TemplateType = document.TemplateReceipt
	}

	if err := document.Validate(req.Name, req.Date, req.Amount, req.TemplateType); err != nil {
		return nil, err
	}

	content, err := template.Render(req.TemplateType, template.Fields{
		Name:   req.Name,
		Date:   req.Date,
		Amount: req.Amount,
	})
	if err != nil {
		return nil, err
	}

	remote, err := s.provider.CreateDocument(ctx, req.Name, content)
	if err != nil {
		metrics.ProviderCalls.WithLabelValues("create_document", "error").Inc()
		var perr *provider.Error
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &provider.Error{Op: "create_document", Msg: "failed to create document", Err: err}
	}
	metrics.ProviderCalls.WithLabelValues("create_document", "success").Inc()

	date, err := document.ParseDate(req.Date)
	if err != nil {
		// unreachable after Validate; kept to avoid persisting a zero date
		return nil, err
	}

	doc := &document.GeneratedDocument{
		Name:         req.Name,
		Date:         date,
		Amount:       req.Amount,
		TemplateType: req.TemplateType,
		DocID:        remote.DocID,
		DocURL:       remote.DocURL,
		Content:      content,
	}
	if err := s.store.Create(ctx, doc); err != nil {
		return nil, err
	}
	metrics.DocumentsGenerated.WithLabelValues(req.TemplateType).Inc()

	s.invalidateListCache(ctx)

	if s.archive != nil {
		key := archiveKey(doc)
		if err := s.archive.Put(ctx, key, content); err != nil {
			logger.Warnf("archive upload for %q failed: %v", key, err)
		}
	}

	return doc, nil
}

// ListQuery carries listing parameters as received from the transport layer.
type ListQuery struct {
	Name     string
	Date     string
	Page     int
	PageSize int
}

// List returns one page of documents, newest first, memoized in the cache
// with a key derived from the full argument set.
func (s *Service) List(ctx context.Context, q ListQuery) (*document.Page, error) {
	if q.Page < 1 {
		return nil, document.NewValidationError("Page number must be positive")
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		return nil, document.NewValidationError("Page size must be between 1 and 100")
	}

	f := repository.Filter{Name: q.Name, Page: q.Page, PageSize: q.PageSize}
	if q.Date != "" {
		d, err := document.ParseDate(q.Date)
		if err != nil {
			return nil, err
		}
		f.Date = &d
	}

	key := cache.Key(listCacheOp, q.Page, q.PageSize, map[string]string{"name": q.Name, "date": q.Date})
	page, err := cache.Wrap(ctx, s.cache, key, s.listTTL, func() (document.Page, error) {
		docs, total, err := s.store.List(ctx, f)
		if err != nil {
			return document.Page{}, err
		}
		items := make([]document.DTO, 0, len(docs))
		for i := range docs {
			items = append(items, docs[i].ToDTO())
		}
		return document.Page{
			Items:    items,
			Total:    total,
			Page:     q.Page,
			PageSize: q.PageSize,
			Pages:    int((total + int64(q.PageSize) - 1) / int64(q.PageSize)),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single record by its provider document id.
func (s *Service) Get(ctx context.Context, docID string) (*document.GeneratedDocument, error) {
	return s.store.GetByDocID(ctx, docID)
}

// SaveToDrive uploads the stored content to the provider as a text file and
// attaches the returned identifiers. A provider failure leaves the record
// unchanged.
func (s *Service) SaveToDrive(ctx context.Context, docID string) (*provider.Document, error) {
	doc, err := s.store.GetByDocID(ctx, docID)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s_%s.txt", doc.Name, doc.Date.Format("20060102"))
	remote, err := s.provider.UploadFile(ctx, filename, doc.Content)
	if err != nil {
		metrics.ProviderCalls.WithLabelValues("upload_file", "error").Inc()
		var perr *provider.Error
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &provider.Error{Op: "upload_file", Msg: "failed to upload document", Err: err}
	}
	metrics.ProviderCalls.WithLabelValues("upload_file", "success").Inc()

	if err := s.store.AttachProviderInfo(ctx, doc.ID, remote.DocID, remote.DocURL); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return remote, nil
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, listCachePrefix); err != nil {
		logger.Errorf("list cache invalidation failed: %v", err)
	}
}

func archiveKey(doc *document.GeneratedDocument) string {
	return fmt.Sprintf("%s/%s_%s.txt", doc.TemplateType, doc.Name, doc.Date.Format("20060102"))
}
