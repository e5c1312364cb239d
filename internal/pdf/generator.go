package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/nurpe/procurement/internal/model"
)

const fontName = "Helvetica"

// turkishFolding maps the Turkish letters missing from cp1252 onto their
// closest cp1252 glyphs. Ç, Ö and Ü exist in cp1252 and pass through.
var turkishFolding = strings.NewReplacer(
	"Ğ", "G", "ğ", "g",
	"İ", "I", "ı", "i",
	"Ş", "S", "ş", "s",
)

type Generator struct {
	encoder *encoding.Encoder
}

// NewGenerator renders with the core Helvetica font, which is laid out in cp1252.
func NewGenerator() *Generator {
	return &Generator{encoder: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())}
}

// encode converts UTF-8 text to the byte encoding of the core fonts.
func (g *Generator) encode(value string) string {
	out, err := g.encoder.String(turkishFolding.Replace(value))
	if err != nil {
		return turkishFolding.Replace(value)
	}
	return out
}

func (g *Generator) Generate(comparison model.QuoteComparison) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle("Quote comparison", true)
	pdf.AddPage()
	tr := g.encode

	request := comparison.QuoteRequest
	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, "Quote comparison", "", 1, "C", false, 0, "")

	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Manufacturing method: %s", methodLabel(request.ManufacturingMethod))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Deadline: %s    Status: %s    Responses: %d",
		formatDate(request.Deadline), request.Status, len(comparison.Items)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Rates used: 1 USD = %s TRY, 1 EUR = %s TRY",
		formatAmount(comparison.CurrencyRates.USD, 4),
		formatAmount(comparison.CurrencyRates.EUR, 4),
	), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	headers := []string{"#", "Supplier", "Total", "Cur.", "Price (TRY)", "Delivery", "Terms", "Price", "Deliv.", "Quality", "Payment", "Score"}
	colWidths := []float64{8, 62, 26, 14, 30, 24, 16, 18, 18, 18, 18, 15}
	drawTableRow(pdf, headers, colWidths, true)

	for i, item := range comparison.Items {
		row := []string{
			fmt.Sprintf("%d", i+1),
			tr(truncate(supplierName(item), 34)),
			formatAmount(item.Response.TotalPrice, 2),
			string(item.Response.Currency),
			formatAmount(item.NormalizedPrice, 2),
			formatDate(item.Response.DeliveryDate),
			fmt.Sprintf("%d", item.Response.PaymentTerms),
			formatAmount(item.Scores.Price, 1),
			formatAmount(item.Scores.Delivery, 1),
			formatAmount(item.Scores.Quality, 1),
			formatAmount(item.Scores.Payment, 1),
			formatAmount(item.Scores.Total, 1),
		}
		drawTableRow(pdf, row, colWidths, false)
	}

	pdf.Ln(4)
	pdf.SetFont(fontName, "", 9)
	pdf.MultiCell(0, 5, "Weights: price 40, delivery 30, quality 20, payment terms 10. "+
		"Prices are normalised to TRY before scoring.", "", "L", false)

	if len(comparison.Items) > 0 {
		best := comparison.Items[0]
		pdf.Ln(2)
		pdf.SetFont(fontName, "B", 11)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Recommended: %s (%s points)", supplierName(best), formatAmount(best.Scores.Total, 1))), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if i > 1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, col, "1", 0, align, header, 0, "")
	}
	pdf.Ln(-1)
}

func supplierName(item model.ComparisonItem) string {
	if item.Supplier != nil && strings.TrimSpace(item.Supplier.Name) != "" {
		return item.Supplier.Name
	}
	return "(deleted supplier)"
}

func methodLabel(code string) string {
	if method, ok := model.ManufacturingMethods[code]; ok {
		return fmt.Sprintf("%s - %s", code, method.Name)
	}
	return code
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-1]) + "."
}

func formatAmount(value float64, precision int) string {
	format := fmt.Sprintf("%%.%df", precision)
	return fmt.Sprintf(format, value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006")
}
