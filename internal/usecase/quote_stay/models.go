package quote_stay

import (
	"github.com/m04kA/SMC-StayService/pkg/types"
)

// Request модель запроса расчета стоимости проживания
type Request struct {
	ListingID int64
	CheckIn   types.Date
	CheckOut  types.Date
}

// Response предварительный расчет стоимости и доступность дат
type Response struct {
	ListingID   int64      `json:"listing"`
	CheckIn     types.Date `json:"check_in"`
	CheckOut    types.Date `json:"check_out"`
	Nights      int        `json:"nights"`
	NightlyRate string     `json:"price_per_night"`
	Subtotal    string     `json:"subtotal"`
	TaxAmount   string     `json:"tax_amount"`
	Total       string     `json:"total"`
	Available   bool       `json:"available"`
}
