// Package Documents renders quotes, invoices and work instructions as PDF
// byte streams using maroto. Inputs are fully resolved aggregates; nothing
// here touches the database except the company letterhead lookup.
package Documents

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"gorm.io/gorm"

	"Handwerk/Models"
)

// CompanyInfo is the letterhead block printed on every document.
type CompanyInfo struct {
	Name    string
	Address string
	Email   string
	Phone   string
	VatID   string
}

// LoadCompanyInfo reads the letterhead from the settings store.
func LoadCompanyInfo(db *gorm.DB) CompanyInfo {
	return CompanyInfo{
		Name:    Models.GetSetting(db, Models.SettingCompanyName, "Handwerk GmbH"),
		Address: Models.GetSetting(db, Models.SettingCompanyAddress, ""),
		Email:   Models.GetSetting(db, Models.SettingCompanyEmail, ""),
		Phone:   Models.GetSetting(db, Models.SettingCompanyPhone, ""),
		VatID:   Models.GetSetting(db, Models.SettingCompanyVatID, ""),
	}
}

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Seite {current} von {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	return maroto.New(cfg)
}

// addHeader prints the letterhead on the left and the document title with
// its number on the right.
func addHeader(m core.Maroto, company CompanyInfo, title, number string) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(company.Name, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New(title, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	contact := company.Address
	if company.Email != "" {
		contact = fmt.Sprintf("%s | %s", contact, company.Email)
	}
	if company.Phone != "" {
		contact = fmt.Sprintf("%s | %s", contact, company.Phone)
	}
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(contact, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Nr. %s", number), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

// addCustomerBlock prints the recipient address.
func addCustomerBlock(m core.Maroto, customer Models.Customer) {
	m.AddRows(
		row.New(5).Add(
			col.New(12).Add(text.New("KUNDE", props.Text{
				Size:  7,
				Style: fontstyle.Bold,
				Color: &props.Color{Red: 100, Green: 100, Blue: 100},
			})),
		),
		row.New(5).Add(
			col.New(12).Add(text.New(customer.Name, props.Text{Size: 9, Style: fontstyle.Bold})),
		),
	)
	if customer.Address != "" {
		m.AddRows(row.New(4).Add(
			col.New(12).Add(text.New(customer.Address, props.Text{Size: 8})),
		))
	}
	if customer.Zip != "" || customer.City != "" {
		m.AddRows(row.New(4).Add(
			col.New(12).Add(text.New(fmt.Sprintf("%s %s", customer.Zip, customer.City), props.Text{Size: 8})),
		))
	}
	m.AddRows(row.New(4))
}

func tableHeaderStyle() props.Text {
	return props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
	}
}

func cellStyle() props.Text {
	return props.Text{Size: 8, Align: align.Left}
}

func amountStyle() props.Text {
	return props.Text{Size: 8, Align: align.Right}
}

func totalLabelStyle() props.Text {
	return props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
}

func totalValueStyle() props.Text {
	return props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02.01.2006")
}
