package email

import (
	"fmt"
	"html"
	"strings"

	"gorm.io/gorm"

	"Handwerk/Format"
	"Handwerk/Models"
)

// PurchaseDraft is the pre-filled purchase request the operator sends from
// their own mail client. It is never dispatched automatically.
type PurchaseDraft struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	HTMLBody  string `json:"html_body"`
	PlainBody string `json:"plain_body"`
}

// BuildPurchaseDraft renders subject, HTML body and plain body for one
// supplier's part bucket. The supplier record only contributes the address;
// the bucket itself is keyed by the free-text supplier name on the sub-items.
func BuildPurchaseDraft(db *gorm.DB, order Models.SupplierOrder, supplier Models.Supplier) PurchaseDraft {
	companyName := Models.GetSetting(db, Models.SettingCompanyName, "")
	subject := fmt.Sprintf("Bestellung zu Angebot %s", order.Quote.Number)
	if companyName != "" {
		subject = fmt.Sprintf("%s – %s", subject, companyName)
	}

	var plain strings.Builder
	greeting := "Sehr geehrte Damen und Herren,"
	if supplier.ContactPerson != "" {
		greeting = fmt.Sprintf("Sehr geehrte/r %s,", supplier.ContactPerson)
	}
	plain.WriteString(greeting + "\n\n")
	plain.WriteString("wir bestellen folgende Positionen:\n\n")
	for i, item := range order.Items {
		qty := item.PartQuantity
		if qty == "" {
			qty = "1"
		}
		plain.WriteString(fmt.Sprintf("%d. %s – Menge: %s – %s\n",
			i+1, item.PartNumber, qty, Format.Euro(item.PartPrice)))
	}
	plain.WriteString("\nMit freundlichen Grüßen\n")
	if companyName != "" {
		plain.WriteString(companyName + "\n")
	}

	var htmlBody strings.Builder
	htmlBody.WriteString("<p>" + html.EscapeString(greeting) + "</p>")
	htmlBody.WriteString("<p>wir bestellen folgende Positionen:</p>")
	htmlBody.WriteString("<table border=\"1\" cellpadding=\"4\" cellspacing=\"0\">")
	htmlBody.WriteString("<tr><th>Pos</th><th>Artikelnummer</th><th>Menge</th><th>Preis</th></tr>")
	for i, item := range order.Items {
		qty := item.PartQuantity
		if qty == "" {
			qty = "1"
		}
		htmlBody.WriteString(fmt.Sprintf("<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			i+1, html.EscapeString(item.PartNumber), html.EscapeString(qty),
			html.EscapeString(Format.Euro(item.PartPrice))))
	}
	htmlBody.WriteString("</table>")
	htmlBody.WriteString("<p>Mit freundlichen Grüßen<br>" + html.EscapeString(companyName) + "</p>")

	return PurchaseDraft{
		To:        supplier.Email,
		Subject:   subject,
		HTMLBody:  htmlBody.String(),
		PlainBody: plain.String(),
	}
}
