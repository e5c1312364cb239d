package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/procurement/internal/model"
)

const (
	SummarySheet = "Summary"
	RankingSheet = "Ranking"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a comparison as a workbook: a summary, the ranked table and
// one sheet per quoting supplier.
func (g *Generator) Generate(comparison model.QuoteComparison) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, err
	}
	g.writeSummary(file, SummarySheet, comparison)

	if _, err := file.NewSheet(RankingSheet); err != nil {
		return nil, err
	}
	if err := g.writeRanking(file, RankingSheet, comparison); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{SummarySheet: {}, RankingSheet: {}}
	for i, item := range comparison.Items {
		sheetName := buildSheetName(i+1, supplierName(item), item.Response.SupplierID, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		g.writeDetail(file, sheetName, i+1, item)
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, comparison model.QuoteComparison) {
	request := comparison.QuoteRequest
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Quote request")
	set("B1", request.ID.String())
	set("A2", "Manufacturing method")
	set("B2", methodLabel(request.ManufacturingMethod))
	set("A3", "Deadline")
	set("B3", formatDate(request.Deadline))
	set("A4", "Status")
	set("B4", string(request.Status))
	set("A5", "Responses")
	set("B5", len(comparison.Items))
	set("A6", "USD/TRY")
	set("B6", comparison.CurrencyRates.USD)
	set("A7", "EUR/TRY")
	set("B7", comparison.CurrencyRates.EUR)

	if len(comparison.Items) > 0 {
		best := comparison.Items[0]
		set("A9", "Recommended supplier")
		set("B9", supplierName(best))
		set("A10", "Total score")
		set("B10", best.Scores.Total)
		set("A11", "Price (TRY)")
		set("B11", formatMoney(best.NormalizedPrice))
	}

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "B", 40)
}

var rankingHeaders = []string{
	"Rank",
	"Supplier",
	"Unit price",
	"Total price",
	"Currency",
	"Price (TRY)",
	"Delivery date",
	"Payment terms (days)",
	"Price score",
	"Delivery score",
	"Quality score",
	"Payment score",
	"Total score",
}

func (g *Generator) writeRanking(file *excelize.File, sheet string, comparison model.QuoteComparison) error {
	for i, header := range rankingHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		_ = file.SetCellValue(sheet, cell, header)
	}

	for i, item := range comparison.Items {
		row := []interface{}{
			i + 1,
			supplierName(item),
			item.Response.UnitPrice,
			item.Response.TotalPrice,
			string(item.Response.Currency),
			item.NormalizedPrice,
			formatDate(item.Response.DeliveryDate),
			item.Response.PaymentTerms,
			item.Scores.Price,
			item.Scores.Delivery,
			item.Scores.Quality,
			item.Scores.Payment,
			item.Scores.Total,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 6)
	_ = file.SetColWidth(sheet, "B", "B", 32)
	_ = file.SetColWidth(sheet, "C", "H", 16)
	_ = file.SetColWidth(sheet, "I", "M", 14)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, rank int, item model.ComparisonItem) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Rank")
	set("B1", rank)
	set("A2", "Supplier")
	set("B2", supplierName(item))
	set("A3", "Submitted")
	set("B3", formatDateTime(item.Response.CreatedAt))
	set("A4", "Notes")
	set("B4", item.Response.Notes)

	if s := item.Supplier; s != nil {
		set("A6", "Contact")
		set("B6", s.ContactPerson)
		set("A7", "Email")
		set("B7", s.Email)
		set("A8", "Phone")
		set("B8", s.Phone)
		set("A10", "Completed orders")
		set("B10", s.Performance.TotalOrders)
		set("A11", "On-time deliveries")
		set("B11", s.Performance.OnTimeDeliveries)
		set("A12", "Quality rejections")
		set("B12", s.Performance.QualityRejections)
		set("A13", "Performance score")
		set("B13", s.Performance.TotalScore)
	} else {
		set("A6", "Supplier record")
		set("B6", "deleted")
	}

	_ = file.SetColWidth(sheet, "A", "A", 22)
	_ = file.SetColWidth(sheet, "B", "B", 40)
}

func supplierName(item model.ComparisonItem) string {
	if item.Supplier != nil && strings.TrimSpace(item.Supplier.Name) != "" {
		return item.Supplier.Name
	}
	return item.Response.SupplierID.String()
}

func methodLabel(code string) string {
	if method, ok := model.ManufacturingMethods[code]; ok {
		return fmt.Sprintf("%s - %s", code, method.Name)
	}
	return code
}

// buildSheetName returns a unique sheet name of at most 31 characters.
func buildSheetName(rank int, name string, id uuid.UUID, used map[string]struct{}) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = id.String()
	}
	base := sanitizeSheetName(fmt.Sprintf("%d - %s", rank, name))
	if len(base) > 31 {
		base = strings.TrimSpace(base[:31])
	}

	candidate := base
	for counter := 2; ; counter++ {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		candidate = trimmed + suffix
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Sheet"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatMoney(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
