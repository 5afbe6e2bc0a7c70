package document

import "time"

// Template kinds accepted by the generation pipeline.
const (
	TemplateReceipt  = "receipt"
	TemplateInvoice  = "invoice"
	TemplateContract = "contract"
)

// ValidTemplates lists the accepted template kinds in presentation order.
var ValidTemplates = []string{TemplateReceipt, TemplateInvoice, TemplateContract}

// GeneratedDocument is the single persistent entity: one row per generated
// document. Content is the deterministic render of (template_type, name,
// date, amount) at creation time and is never rewritten; the only mutation
// after insert is attaching provider identifiers.
type GeneratedDocument struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Date         time.Time `gorm:"type:date;not null" json:"-"`
	Amount       float64   `gorm:"not null" json:"amount"`
	TemplateType string    `json:"template_type"`
	DocID        string    `json:"doc_id"`
	DocURL       string    `json:"doc_url"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	GoogleDocID  string    `json:"google_doc_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
}

// TableName keeps the canonical table name from the richer schema version.
func (GeneratedDocument) TableName() string { return "generated_documents" }

// DTO is the JSON shape served by the API: dates as YYYY-MM-DD, timestamps
// as RFC3339.
type DTO struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	TemplateType string  `json:"template_type"`
	DocID        string  `json:"doc_id"`
	DocURL       string  `json:"doc_url"`
	Content      string  `json:"content"`
	GoogleDocID  string  `json:"google_doc_id"`
	CreatedAt    string  `json:"created_at"`
}

// ToDTO converts a stored record into its API representation.
func (d *GeneratedDocument) ToDTO() DTO {
	return DTO{
		ID:           d.ID,
		Name:         d.Name,
		Date:         d.Date.Format("2006-01-02"),
		Amount:       d.Amount,
		TemplateType: d.TemplateType,
		DocID:        d.DocID,
		DocURL:       d.DocURL,
		Content:      d.Content,
		GoogleDocID:  d.GoogleDocID,
		CreatedAt:    d.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Page is one page of a document listing.
type Page struct {
	Items    []DTO `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Pages    int   `json:"pages"`
}
