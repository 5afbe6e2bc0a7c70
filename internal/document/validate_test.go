package document

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAccepts(t *testing.T) {
	require.NoError(t, Validate("Jane Doe", "2024-01-01", 100.50, TemplateReceipt))
	require.NoError(t, Validate("Jo", time.Now().UTC().Format("2006-01-02"), 1000000, TemplateContract))
	require.NoError(t, Validate("Jane", "2024-01-01", 0.01, TemplateInvoice))
}

func TestValidateRejects(t *testing.T) {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	cases := []struct {
		name         string
		docName      string
		date         string
		amount       float64
		templateType string
		wantTemplate bool
	}{
		{"short name", "J", "2024-01-01", 100, TemplateReceipt, false},
		{"zero amount", "Jane", "2024-01-01", 0, TemplateReceipt, false},
		{"negative amount", "Jane", "2024-01-01", -5, TemplateReceipt, false},
		{"amount over limit", "Jane", "2024-01-01", 1000000.01, TemplateReceipt, false},
		{"future date", "Jane", tomorrow, 100, TemplateReceipt, false},
		{"bad date format", "Jane", "01-01-2024", 100, TemplateReceipt, false},
		{"unknown template", "Jane", "2024-01-01", 100, "invalid", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.docName, tc.date, tc.amount, tc.templateType)
			require.Error(t, err)
			if tc.wantTemplate {
				var terr *TemplateError
				assert.True(t, errors.As(err, &terr), "expected TemplateError, got %T", err)
			} else {
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr), "expected ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateChecksInputBeforeTemplate(t *testing.T) {
	// invalid name and invalid template: the name rule fires first
	err := Validate("J", "2024-01-01", 100, "invalid")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
}
