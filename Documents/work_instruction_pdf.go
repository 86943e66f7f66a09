package Documents

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"Handwerk/Format"
	"Handwerk/Models"
)

// GenerateWorkInstructionPDF renders the internal job sheet for an order:
// the positions to build, labor hours and the parts to pick up, without any
// customer-facing prices.
func GenerateWorkInstructionPDF(company CompanyInfo, order *Models.Order) ([]byte, error) {
	m := newDocument()

	addHeader(m, company, "ARBEITSANWEISUNG", order.Number)
	addCustomerBlock(m, order.Quote.Customer)

	meta := fmt.Sprintf("Angebot: %s", order.Quote.Number)
	if order.ProjectManager != "" {
		meta += fmt.Sprintf(" | Projektleitung: %s", order.ProjectManager)
	}
	meta += fmt.Sprintf(" | Zeitraum: %s – %s", formatDate(order.StartDate), formatDate(order.EndDate))
	m.AddRows(
		row.New(5).Add(col.New(12).Add(text.New(meta, props.Text{Size: 8}))),
		row.New(3),
	)

	if order.Quote.ProjectDescription != "" {
		m.AddRows(
			row.New(5).Add(col.New(12).Add(
				text.New("Projekt: "+order.Quote.ProjectDescription, props.Text{Size: 9}),
			)),
			row.New(3),
		)
	}

	m.AddRows(row.New(6).Add(
		col.New(1).Add(text.New("Pos", tableHeaderStyle())),
		col.New(7).Add(text.New("Arbeitsschritt", tableHeaderStyle())),
		col.New(4).Add(text.New("Details", tableHeaderStyle())),
	))

	for i := range order.Quote.LineItems {
		li := &order.Quote.LineItems[i]
		m.AddRows(row.New(5).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", li.Position), cellStyle())),
			col.New(7).Add(text.New(li.Description, cellStyle())),
			col.New(4).Add(text.New(lineItemDetail(li), cellStyle())),
		))
		for j := range li.SubItems {
			sub := &li.SubItems[j]
			m.AddRows(row.New(4).Add(
				col.New(1).Add(text.New(sub.SubNumber, props.Text{Size: 7})),
				col.New(11).Add(text.New(subItemLabel(sub), props.Text{Size: 7})),
			))
		}
	}

	if order.Notes != "" {
		m.AddRows(
			row.New(6),
			row.New(5).Add(col.New(12).Add(text.New("Hinweise:", tableHeaderStyle()))),
			row.New(5).Add(col.New(12).Add(text.New(order.Notes, cellStyle()))),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate work instruction PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func lineItemDetail(li *Models.LineItem) string {
	if li.ItemType == Models.ItemTypeLabor {
		var hours float64
		for i := range li.SubItems {
			if li.SubItems[i].Kind == Models.KindLabor {
				hours += li.SubItems[i].Hours
			}
		}
		if hours > 0 {
			return fmt.Sprintf("%s Std.", Format.Number(hours))
		}
		return "Arbeitsposition"
	}
	if len(li.SubItems) == 0 && li.Quantity != 0 {
		return fmt.Sprintf("Menge: %s", Format.Number(li.Quantity))
	}
	return ""
}
