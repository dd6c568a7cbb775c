package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FixedRateConverter implements ports.CurrencyConverter using a fixed
// USD-per-BTC exchange rate set at construction. Round-trips are exact
// under an identity rate; in general they may lose precision, which is
// acceptable because fiat amounts are always the conversion input.
type FixedRateConverter struct {
	usdPerBTC decimal.Decimal
}

// NewFixedRateConverter creates a converter for the given rate.
func NewFixedRateConverter(usdPerBTC decimal.Decimal) (*FixedRateConverter, error) {
	if usdPerBTC.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("exchange rate must be positive, got %s", usdPerBTC)
	}
	return &FixedRateConverter{usdPerBTC: usdPerBTC}, nil
}

// ToBTC converts a USD amount to BTC.
func (c *FixedRateConverter) ToBTC(amountUSD decimal.Decimal) decimal.Decimal {
	return amountUSD.Div(c.usdPerBTC)
}

// ToUSD converts a BTC amount to USD.
func (c *FixedRateConverter) ToUSD(amountBTC decimal.Decimal) decimal.Decimal {
	return amountBTC.Mul(c.usdPerBTC)
}
