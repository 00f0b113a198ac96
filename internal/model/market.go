package model

import "github.com/shopspring/decimal"

// Status is the parsed body of the fund status endpoint.
type Status struct {
	NavPerToken decimal.Decimal
	USDValue    decimal.Decimal
}
