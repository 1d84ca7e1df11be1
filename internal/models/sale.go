package models

import "github.com/shopspring/decimal"

// Stored sale types.
const (
	SaleTypeCash        = "avista"
	SaleTypeInstallment = "parcelada"
)

// Sale is a row of the sales table (and, with ArchivedAt set, of sales_archive).
// Dates are kept as YYYY-MM-DD text and timestamps as ISO-8601 text.
type Sale struct {
	ID          string          `db:"id"`
	Customer    string          `db:"cliente"`
	Device      string          `db:"aparelho"`
	DownPayment decimal.Decimal `db:"valor_entrada"`
	SaleType    string          `db:"tipo_venda"`
	TotalValue  decimal.Decimal `db:"valor_total"`
	SaleDate    string          `db:"data_venda"`
	CreatedAt   string          `db:"created_at"`
	ArchivedAt  *string         `db:"archived_at"`
}

// ClosedSale is a row of the sales_closed table.
type ClosedSale struct {
	ID            string          `db:"id"`
	Customer      string          `db:"cliente"`
	Device        string          `db:"aparelho"`
	TotalValue    decimal.Decimal `db:"valor_total"`
	ReceivedValue decimal.Decimal `db:"valor_recebido"`
	LostValue     decimal.Decimal `db:"valor_perdido"`
	SaleDate      string          `db:"data_venda"`
	CreatedAt     string          `db:"created_at"`
	ClosedAt      string          `db:"closed_at"`
	Reason        string          `db:"motivo"`
}
