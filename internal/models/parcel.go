package models

import "github.com/shopspring/decimal"

// Stored adjustment kinds.
const (
	AdjustmentPayment   = "pagamento"
	AdjustmentSurcharge = "acrescimo"
	AdjustmentDiscount  = "desconto"
)

// Parcel is a row of the parcels table.
type Parcel struct {
	ID            string          `db:"id"`
	SaleID        string          `db:"sale_id"`
	Number        int             `db:"parcela_num"`
	OriginalValue decimal.Decimal `db:"valor_original"`
	DueDate       string          `db:"vencimento"`
	CreatedAt     string          `db:"created_at"`
}

// Adjustment is a row of the parcel_adjustments table.
type Adjustment struct {
	ID          string          `db:"id"`
	ParcelID    string          `db:"parcel_id"`
	Kind        string          `db:"tipo"`
	Amount      decimal.Decimal `db:"valor"`
	Description string          `db:"descricao"`
	CreatedAt   string          `db:"created_at"`
}
