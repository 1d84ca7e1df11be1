// Package xlsx renders reports as Excel workbooks.
package xlsx

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
	"github.com/bestcell/bestsystem_backend/internal/utils"
)

const (
	SummarySheet  = "Resumo Mensal"
	CriticalSheet = "Clientes Críticos"

	// ContentType is the MIME type of the generated workbooks.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	moneyFormat = `"R$" #,##0.00`
)

var (
	summaryHeadings  = []any{"Mês", "Vendas", "Valor vendido", "Recebido", "Em aberto", "Em atraso"}
	criticalHeadings = []any{"Cliente", "Parcelas em atraso", "Valor em atraso", "Maior atraso (dias)", "Multa informativa"}
)

// MonthlyReportInput is the data of one export.
type MonthlyReportInput struct {
	From        civil.Date
	To          civil.Date
	GeneratedAt time.Time
	Rows        []domain.MonthlySummaryRow
	Critical    []domain.CriticalCustomer
}

// summaryHeaderRow is the row of the column headings on the summary sheet.
const summaryHeaderRow = 4

// MonthlyReport builds the workbook with the monthly summary and the critical customers sheets.
func MonthlyReport(in MonthlyReportInput) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if _, err := f.NewSheet(CriticalSheet); err != nil {
		return nil, fmt.Errorf("failed to create critical sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	numFmt := moneyFormat
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, err
	}

	if err := writeSummary(f, in, bold, money); err != nil {
		return nil, err
	}
	if err := writeCritical(f, in.Critical, bold, money); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, in MonthlyReportInput, bold, money int) error {
	sheet := SummarySheet
	period := fmt.Sprintf("Período: %s a %s", utils.FormatDateBR(in.From), utils.FormatDateBR(in.To))
	generated := "Gerado em " + in.GeneratedAt.Format("02/01/2006 15:04")

	if err := f.SetCellValue(sheet, "A1", "Resumo mensal de vendas"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A2", period); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "D2", generated); err != nil {
		return err
	}
	if err := setRow(f, sheet, summaryHeaderRow, summaryHeadings); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A4", "F4", bold); err != nil {
		return err
	}

	count := 0
	sold, received, outstanding, overdue := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	row := summaryHeaderRow + 1
	for _, r := range in.Rows {
		values := []any{utils.FormatMonthBR(r.Month), r.SalesCount, money64(r.SoldValue), money64(r.Received), money64(r.Outstanding), money64(r.Overdue)}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		count += r.SalesCount
		sold = sold.Add(r.SoldValue)
		received = received.Add(r.Received)
		outstanding = outstanding.Add(r.Outstanding)
		overdue = overdue.Add(r.Overdue)
		row++
	}

	totals := []any{"Total", count, money64(sold), money64(received), money64(outstanding), money64(overdue)}
	if err := setRow(f, sheet, row, totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell(1, row), cell(6, row), bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell(3, summaryHeaderRow+1), cell(6, row), money); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "F", 16)
}

func writeCritical(f *excelize.File, critical []domain.CriticalCustomer, bold, money int) error {
	sheet := CriticalSheet
	if err := setRow(f, sheet, 1, criticalHeadings); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", bold); err != nil {
		return err
	}
	for i, c := range critical {
		values := []any{c.Customer, c.OverdueParcels, money64(c.OverdueAmount), c.MaxOverdueDays, money64(c.InformationalFines)}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	if len(critical) > 0 {
		if err := f.SetCellStyle(sheet, "C2", cell(3, len(critical)+1), money); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "E2", cell(5, len(critical)+1), money); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "E", 20)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	return f.SetSheetRow(sheet, cell(1, row), &values)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// money64 is lossless for two-place amounts in the range a spreadsheet displays.
func money64(d decimal.Decimal) float64 {
	return domain.RoundMoney(d).InexactFloat64()
}
