// Package currency models the fiat currencies and stablecoins the
// application trades between.
package currency

import "github.com/shopspring/decimal"

// Kind distinguishes fiat currencies from stablecoins.
type Kind uint8

const (
	KindFiat Kind = iota
	KindStablecoin
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindFiat:
		return "fiat"
	case KindStablecoin:
		return "stablecoin"
	default:
		return "unknown"
	}
}

// Currency represents the metadata of a fiat currency or stablecoin.
// The code is identity; the name is display metadata.
type Currency struct {
	code     string
	name     string
	kind     Kind
	decimals int32
}

// New creates a new Currency with the given parameters.
func New(code, name string, kind Kind, decimals int32) *Currency {
	if code == "" {
		panic("currency: empty code")
	}
	if decimals < 0 || decimals > 18 {
		panic("currency: suspicious decimals")
	}

	return &Currency{
		code:     code,
		name:     name,
		kind:     kind,
		decimals: decimals,
	}
}

// Code returns the currency code (e.g., "KGS", "USDT").
func (c *Currency) Code() string {
	return c.code
}

// Name returns the human-readable name (e.g., "Kyrgyzstani Som").
func (c *Currency) Name() string {
	if c.name == "" {
		return c.code
	}
	return c.name
}

// Kind returns whether this is a fiat currency or a stablecoin.
func (c *Currency) Kind() Kind {
	return c.kind
}

// Decimals returns the number of decimal places used for display.
func (c *Currency) Decimals() int32 {
	return c.decimals
}

// IsFiat returns true if this is a fiat currency.
func (c *Currency) IsFiat() bool {
	return c.kind == KindFiat
}

// IsStablecoin returns true if this is a stablecoin.
func (c *Currency) IsStablecoin() bool {
	return c.kind == KindStablecoin
}

// Format renders an amount rounded to the currency's display precision,
// e.g. "86.50 KGS".
func (c *Currency) Format(amount decimal.Decimal) string {
	return amount.StringFixed(c.decimals) + " " + c.code
}

// String returns the currency code.
func (c *Currency) String() string {
	return c.code
}

// Equals compares two currencies by code.
func (c *Currency) Equals(other *Currency) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.code == other.code
}
