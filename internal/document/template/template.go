package template

import (
	"fmt"
	"time"

	"github.com/saamdocs/docgen-service/internal/document"
)

// Fields carries the values embedded into every rendered template.
type Fields struct {
	Name   string
	Date   string
	Amount float64
}

const divider = "----------------------------------------"

// Render produces the text content for the given template kind. Output embeds
// all three fields verbatim (amount with two decimals). Receipts and contracts
// additionally carry a timestamp-derived document number; that value is for
// display only and never used for identity or lookup.
func Render(kind string, f Fields) (string, error) {
	if f.Name == "" || f.Date == "" {
		return "", document.NewTemplateError("Missing required template fields")
	}
	switch kind {
	case document.TemplateReceipt:
		return renderReceipt(f), nil
	case document.TemplateInvoice:
		return renderInvoice(f), nil
	case document.TemplateContract:
		return renderContract(f), nil
	}
	return "", document.NewTemplateError(fmt.Sprintf("Unknown template type: %s", kind))
}

func documentNumber() string {
	return time.Now().Format("20060102150405")
}

func generatedOn() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func renderReceipt(f Fields) string {
	num := documentNumber()
	return fmt.Sprintf(`
RECEIPT
%[1]s

Document Number: %[2]s
Issue Date: %[3]s

RECIPIENT INFORMATION
%[1]s
Name: %[4]s

PAYMENT DETAILS
%[1]s
Amount Paid: $%.2[5]f

CONFIRMATION
%[1]s
This document certifies that %[4]s
has paid the amount of $%.2[5]f
on %[3]s.

%[1]s
Generated on: %[6]s
Document ID: %[2]s
`, divider, num, f.Date, f.Name, f.Amount, generatedOn())
}

func renderInvoice(f Fields) string {
	return fmt.Sprintf(`
INVOICE
%[1]s

Invoice Number: INV-%[2]s
Issue Date: %[3]s

BILL TO
%[1]s
Name: %[4]s

AMOUNT DUE
%[1]s
Total Amount: $%.2[5]f

PAYMENT TERMS
%[1]s
Due upon receipt

%[1]s
Generated on: %[6]s
`, divider, documentNumber(), f.Date, f.Name, f.Amount, generatedOn())
}

func renderContract(f Fields) string {
	num := documentNumber()
	return fmt.Sprintf(`
CONTRACT
%[1]s

Contract Number: CNT-%[2]s
Date: %[3]s

PARTIES
%[1]s
Client: %[4]s

TERMS AND CONDITIONS
%[1]s
1. Payment Terms
   Amount: $%.2[5]f
   Due Date: %[3]s

2. Services
   - Document generation services
   - Digital storage
   - Access to generated documents

3. Agreement
This contract is entered into by %[4]s
for the amount of $%.2[5]f
on %[3]s.

%[1]s
Generated on: %[6]s
Document ID: %[2]s
`, divider, num, f.Date, f.Name, f.Amount, generatedOn())
}
