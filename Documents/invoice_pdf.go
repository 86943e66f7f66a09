package Documents

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"Handwerk/Format"
	"Handwerk/Models"
)

var invoiceTitles = map[string]string{
	Models.InvoiceTypeAdvance: "ANZAHLUNGSRECHNUNG",
	Models.InvoiceTypeInterim: "ZWISCHENRECHNUNG",
	Models.InvoiceTypeFinal:   "SCHLUSSRECHNUNG",
	Models.InvoiceTypeGeneral: "RECHNUNG",
}

// GenerateInvoicePDF renders an invoice with its staged-billing breakdown.
func GenerateInvoicePDF(company CompanyInfo, invoice *Models.Invoice) ([]byte, error) {
	m := newDocument()

	title := invoiceTitles[invoice.Type]
	if title == "" {
		title = "RECHNUNG"
	}
	addHeader(m, company, title, invoice.Number)
	addCustomerBlock(m, invoice.Customer)

	if invoice.Order != nil {
		m.AddRows(
			row.New(5).Add(col.New(12).Add(
				text.New(fmt.Sprintf("Zu Auftrag %s", invoice.Order.Number), props.Text{Size: 9}),
			)),
			row.New(3),
		)
	}

	addInvoiceBreakdown(m, invoice)

	if company.VatID != "" {
		m.AddRows(
			row.New(8),
			row.New(4).Add(col.New(12).Add(
				text.New("UID: "+company.VatID, props.Text{Size: 7, Color: &props.Color{Red: 100, Green: 100, Blue: 100}}),
			)),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addInvoiceBreakdown(m core.Maroto, invoice *Models.Invoice) {
	addAmountRow := func(label string, amount float64, bold bool) {
		style := amountStyle()
		labelStyle := props.Text{Size: 8, Align: align.Left}
		if bold {
			style = totalValueStyle()
			labelStyle = props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
		}
		m.AddRows(row.New(5).Add(
			col.New(8).Add(text.New(label, labelStyle)),
			col.New(4).Add(text.New(Format.Euro(amount), style)),
		))
	}

	switch invoice.Type {
	case Models.InvoiceTypeAdvance, Models.InvoiceTypeInterim:
		addAmountRow("Auftragssumme (netto)", invoice.BaseAmount, false)
		m.AddRows(row.New(4).Add(col.New(12).Add(
			text.New(fmt.Sprintf("davon %s%%", Format.Number(invoice.Percentage)), props.Text{Size: 8}),
		)))
	case Models.InvoiceTypeFinal:
		addAmountRow("Auftragssumme (netto)", invoice.BaseAmount, false)
		addAmountRow("abzüglich bereits verrechnet", -invoice.PreviousPayments, false)
	}

	addAmountRow("Rechnungsbetrag (netto)", invoice.FinalAmount, false)
	addAmountRow(fmt.Sprintf("zzgl. %s%% USt.", Format.Number(invoice.VatRate)), invoice.VatAmount, false)
	addAmountRow("Gesamtbetrag", invoice.GrossAmount, true)

	if invoice.PaidAmount > 0 {
		m.AddRows(row.New(3))
		addAmountRow("bereits bezahlt", invoice.PaidAmount, false)
		addAmountRow("offener Betrag", invoice.GrossAmount-invoice.PaidAmount, false)
	}

	if invoice.DueDate != nil {
		m.AddRows(
			row.New(6),
			row.New(4).Add(col.New(12).Add(
				text.New("Zahlbar bis "+formatDate(invoice.DueDate), props.Text{Size: 8}),
			)),
		)
	}
}
