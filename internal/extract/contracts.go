package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: file -> page texts.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Pages    []string // non-empty pages in document order
	Duration time.Duration
	Warnings []string
}

// Fields is Stage 2 output: the values pulled out of one manifest. Every
// field is optional; a miss leaves it empty.
type Fields struct {
	TripTicket     string `json:"trip_ticket"`     // DT
	FreightInvoice string `json:"freight_invoice"` // CT-e
	ManifestNumber string `json:"manifest_number"` // MDF-e number, 6 digits
	ManifestTime   string `json:"manifest_time"`   // HH:MM:SS
	TrailerPlate   string `json:"trailer_plate"`
	TractorPlate   string `json:"tractor_plate"`
	InvoiceNumbers string `json:"invoice_numbers"` // NF numbers joined by "/"
}

// HasCore reports whether any of the identifying fields (trip ticket, freight
// invoice, manifest number) was found.
func (f Fields) HasCore() bool {
	return f.TripTicket != "" || f.FreightInvoice != "" || f.ManifestNumber != ""
}

// Found lists the names of the non-empty fields, in declaration order.
func (f Fields) Found() []string {
	var out []string
	for _, kv := range f.named() {
		if kv[1] != "" {
			out = append(out, kv[0])
		}
	}
	return out
}

func (f Fields) named() [][2]string {
	return [][2]string{
		{"trip_ticket", f.TripTicket},
		{"freight_invoice", f.FreightInvoice},
		{"manifest_number", f.ManifestNumber},
		{"manifest_time", f.ManifestTime},
		{"trailer_plate", f.TrailerPlate},
		{"tractor_plate", f.TractorPlate},
		{"invoice_numbers", f.InvoiceNumbers},
	}
}
