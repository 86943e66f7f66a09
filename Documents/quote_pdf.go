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

// GenerateQuotePDF renders a quote. Line item prices are shown with the
// markup folded in, so the printed positions sum to the billed total; the
// markup itself never appears as a separate line for the customer.
func GenerateQuotePDF(company CompanyInfo, quote *Models.Quote, defaultHourlyRate, vatRate float64) ([]byte, error) {
	m := newDocument()

	addHeader(m, company, "ANGEBOT", quote.Number)
	addCustomerBlock(m, quote.Customer)

	if quote.ProjectDescription != "" {
		m.AddRows(
			row.New(5).Add(col.New(12).Add(text.New("Projekt: "+quote.ProjectDescription, props.Text{Size: 9}))),
			row.New(3),
		)
	}

	addQuoteItemsTable(m, quote, defaultHourlyRate)
	addQuoteTotals(m, quote, defaultHourlyRate, vatRate)

	if quote.ValidUntil != nil {
		m.AddRows(
			row.New(6),
			row.New(4).Add(col.New(12).Add(
				text.New("Dieses Angebot ist gültig bis "+formatDate(quote.ValidUntil)+".", props.Text{Size: 8}),
			)),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addQuoteItemsTable(m core.Maroto, quote *Models.Quote, rate float64) {
	m.AddRows(
		row.New(6).Add(
			col.New(1).Add(text.New("Pos", tableHeaderStyle())),
			col.New(6).Add(text.New("Beschreibung", tableHeaderStyle())),
			col.New(2).Add(text.New("Menge", tableHeaderStyle())),
			col.New(3).Add(text.New("Betrag", tableHeaderStyle())),
		),
	)

	for i := range quote.LineItems {
		li := &quote.LineItems[i]
		total := li.CalculatePriceWithMarkup(rate, quote.MarkupPercent)

		qty := ""
		if len(li.SubItems) == 0 {
			qty = Format.Number(li.Quantity)
		}

		m.AddRows(
			row.New(5).Add(
				col.New(1).Add(text.New(fmt.Sprintf("%d", li.Position), cellStyle())),
				col.New(6).Add(text.New(li.Description, cellStyle())),
				col.New(2).Add(text.New(qty, cellStyle())),
				col.New(3).Add(text.New(Format.Euro(total), amountStyle())),
			),
		)

		for j := range li.SubItems {
			sub := &li.SubItems[j]
			m.AddRows(
				row.New(4).Add(
					col.New(1).Add(text.New(sub.SubNumber, props.Text{Size: 7})),
					col.New(11).Add(text.New(subItemLabel(sub), props.Text{Size: 7})),
				),
			)
		}
	}
	m.AddRows(row.New(3))
}

// subItemLabel describes a sub-item in one display line without its price;
// sub-item prices carry the internal purchase rate and stay off the quote.
func subItemLabel(sub *Models.SubItem) string {
	switch sub.Kind {
	case Models.KindLabor:
		return fmt.Sprintf("Arbeitszeit: %s Std.", Format.Number(sub.Hours))
	case Models.KindOrderedPart:
		return fmt.Sprintf("Material: %s (%s)", sub.PartNumber, sub.PartQuantity)
	default:
		return fmt.Sprintf("Sonstiges: %s", sub.Quantity)
	}
}

func addQuoteTotals(m core.Maroto, quote *Models.Quote, rate, vatRate float64) {
	net := quote.CalculatedTotal(rate)
	vat := net * vatRate / 100

	m.AddRows(
		row.New(5).Add(
			col.New(9).Add(text.New("Nettobetrag", totalLabelStyle())),
			col.New(3).Add(text.New(Format.Euro(net), amountStyle())),
		),
		row.New(5).Add(
			col.New(9).Add(text.New(fmt.Sprintf("zzgl. %s%% USt.", Format.Number(vatRate)), props.Text{Size: 8, Align: align.Right})),
			col.New(3).Add(text.New(Format.Euro(vat), amountStyle())),
		),
		row.New(6).Add(
			col.New(9).Add(text.New("Gesamtbetrag", totalLabelStyle())),
			col.New(3).Add(text.New(Format.Euro(net+vat), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		),
	)
}
