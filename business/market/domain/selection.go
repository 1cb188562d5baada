package domain

// Exchanges lists the supported P2P exchanges.
var Exchanges = []string{"Binance", "Bybit", "OKX", "MEXC", "Huobi"}

// Selection identifies one P2P market: an exchange, a stablecoin, and a fiat
// currency.
type Selection struct {
	Exchange string
	Coin     string
	Fiat     string
}

// next returns the element after current in ring order.
func next(ring []string, current string) string {
	for i, v := range ring {
		if v == current {
			return ring[(i+1)%len(ring)]
		}
	}
	return ring[0]
}

// NextExchange returns the selection with the next supported exchange.
func (s Selection) NextExchange() Selection {
	s.Exchange = next(Exchanges, s.Exchange)
	return s
}

// NextCoin returns the selection with the next coin from the given ring.
func (s Selection) NextCoin(coins []string) Selection {
	s.Coin = next(coins, s.Coin)
	return s
}

// NextFiat returns the selection with the next fiat from the given ring.
func (s Selection) NextFiat(fiats []string) Selection {
	s.Fiat = next(fiats, s.Fiat)
	return s
}
