package calculator

import (
	"github.com/shopspring/decimal"

	"NavSentinel/internal/model"
)

var thousand = decimal.NewFromInt(1000)

// Thousands converts a raw currency amount into thousands without rounding.
func Thousands(usd decimal.Decimal) decimal.Decimal {
	return usd.Div(thousand)
}

// FundThousands converts a raw currency amount into whole thousands.
func FundThousands(usd decimal.Decimal) decimal.Decimal {
	return Thousands(usd).Round(0)
}

// StakeValue returns the value of stake units at the given NAV.
func StakeValue(nav, stake decimal.Decimal) decimal.Decimal {
	return nav.Mul(stake)
}

// Compare computes the signed deltas of (nav, fund) against (baseNav, baseFund).
// Direction is taken from the NAV move only.
func Compare(nav, fund, baseNav, baseFund, stake decimal.Decimal) model.Deltas {
	return model.Deltas{
		Nav:      nav.Sub(baseNav),
		Stake:    StakeValue(nav, stake).Sub(StakeValue(baseNav, stake)),
		Fund:     fund.Sub(baseFund),
		Positive: nav.GreaterThan(baseNav),
	}
}
