package currency

// Well-known currencies (pre-created instances)
var (
	// Fiat
	KGS = New("KGS", "Kyrgyzstani Som", KindFiat, 2)
	RUB = New("RUB", "Russian Ruble", KindFiat, 2)
	USD = New("USD", "US Dollar", KindFiat, 2)
	KZT = New("KZT", "Kazakhstani Tenge", KindFiat, 2)
	EUR = New("EUR", "Euro", KindFiat, 2)

	// Stablecoins
	USDT  = New("USDT", "Tether USD", KindStablecoin, 2)
	USDC  = New("USDC", "USD Coin", KindStablecoin, 2)
	FDUSD = New("FDUSD", "First Digital USD", KindStablecoin, 2)
	DAI   = New("DAI", "Dai", KindStablecoin, 2)
)

// DefaultRegistry returns a registry pre-populated with well-known currencies.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Fiat
	r.Register(KGS)
	r.Register(RUB)
	r.Register(USD)
	r.Register(KZT)
	r.Register(EUR)

	// Stablecoins
	r.Register(USDT)
	r.Register(USDC)
	r.Register(FDUSD)
	r.Register(DAI)

	return r
}
