// Package report renders the filtered expense collection for download.
package report

import (
	"io"
	"strings"

	"expensereport/internal/core"
	"expensereport/internal/i18n"
)

// Filename is the download name used for every export.
const Filename = "informe_de_gastos.csv"

// ContentType for the export response.
const ContentType = "text/csv; charset=utf-8"

var headerKeys = []string{
	"csv.date",
	"csv.description",
	"csv.category",
	"csv.invoiceNumber",
	"csv.amount",
	"csv.status",
	"csv.receiptAttached",
}

// CSV builds the export text: a localized header line and one line per expense,
// joined by "\n" without a trailing newline. Only the description is quoted,
// with embedded quotes doubled; other fields are written as-is.
func CSV(expenses []core.Expense, tr *i18n.Translator) string {
	lines := make([]string, 0, len(expenses)+1)

	header := make([]string, len(headerKeys))
	for i, k := range headerKeys {
		header[i] = tr.T(k, nil)
	}
	lines = append(lines, strings.Join(header, ","))

	for _, e := range expenses {
		receipt := tr.T("csv.no", nil)
		if e.HasReceipt() {
			receipt = tr.T("csv.yes", nil)
		}
		lines = append(lines, strings.Join([]string{
			e.Date.String(),
			quote(e.Description),
			tr.CategoryLabel(e.Category),
			e.InvoiceNumber,
			e.Amount.Fixed2(),
			tr.Status(e.Status),
			receipt,
		}, ","))
	}
	return strings.Join(lines, "\n")
}

// WriteCSV writes CSV(expenses, tr) to w.
func WriteCSV(w io.Writer, expenses []core.Expense, tr *i18n.Translator) error {
	_, err := io.WriteString(w, CSV(expenses, tr))
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
