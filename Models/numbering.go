package Models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentCounter holds the last issued sequence value per document type and
// year. Numbers are drawn by locking the row and incrementing inside the
// caller's transaction, so two concurrent requests cannot draw the same one.
type DocumentCounter struct {
	gorm.Model
	DocType   string `gorm:"size:20;not null;index:idx_doc_counter_type_year,unique"`
	Year      int    `gorm:"not null;index:idx_doc_counter_type_year,unique"`
	LastValue int    `gorm:"not null"`
}

const (
	docTypeQuote   = "quote"
	docTypeOrder   = "order"
	docTypeInvoice = "invoice"
)

// Quote and order sequences start at 111, invoices at 1. The offset is a
// long-standing business convention visible on printed documents, so it is
// kept even though the two schemes disagree.
const (
	quoteOrderSeqStart = 111
	invoiceSeqStart    = 1
)

// nextSequence draws the next number for (docType, year) atomically.
func nextSequence(tx *gorm.DB, docType string, year, start int) (int, error) {
	var counter DocumentCounter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(DocumentCounter{DocType: docType, Year: year}).
		Attrs(DocumentCounter{LastValue: start - 1}).
		FirstOrCreate(&counter).Error
	if err != nil {
		return 0, err
	}

	counter.LastValue++
	if err := tx.Model(&counter).Update("last_value", counter.LastValue).Error; err != nil {
		return 0, err
	}
	return counter.LastValue, nil
}

// NextQuoteNumber returns a number like "AN-2026_111".
func NextQuoteNumber(tx *gorm.DB, now time.Time) (string, error) {
	seq, err := nextSequence(tx, docTypeQuote, now.Year(), quoteOrderSeqStart)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("AN-%d_%d", now.Year(), seq), nil
}

// NextOrderNumber returns a number like "AU-2026_111".
func NextOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	seq, err := nextSequence(tx, docTypeOrder, now.Year(), quoteOrderSeqStart)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("AU-%d_%d", now.Year(), seq), nil
}

// NextInvoiceNumber returns a number like "RE-2026-001". Invoices use a dash
// before the sequence where quotes and orders use an underscore.
func NextInvoiceNumber(tx *gorm.DB, now time.Time) (string, error) {
	seq, err := nextSequence(tx, docTypeInvoice, now.Year(), invoiceSeqStart)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("RE-%d-%03d", now.Year(), seq), nil
}
