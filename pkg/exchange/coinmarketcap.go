package exchange

import (
	"cryptowrap/internal/sign"
	"cryptowrap/pkg/core"
)

// CoinMarketCap professional API. Authenticates with a bare key header,
// every parameter travels in the query string.
var CoinMarketCap = register(&Profile{
	ID:            "coinmarketcap",
	Name:          "CoinMarketCap",
	BaseURL:       "https://pro-api.coinmarketcap.com/v1",
	Signer:        &sign.KeyHeader{Header: "X-CMC_PRO_API_KEY"},
	ParamsInQuery: true,
	Headers:       jsonHeaders(),
	Registry: core.NewRegistry(
		// Basic tier
		get("cryptocurrency_info", "/cryptocurrency/info"),
		get("cryptocurrency_map", "/cryptocurrency/map"),
		get("cryptocurrency_listings_latest", "/cryptocurrency/listings/latest"),
		get("cryptocurrency_quotes_latest", "/cryptocurrency/quotes/latest"),
		get("global_aggregate_metrics_latest", "/global-metrics/quotes/latest"),

		// Hobbyist tier
		get("tools_price_conversion", "/tools/price-conversion"),

		// Startup tier
		get("exchange_info", "/exchange/info"),
		get("exchange_map", "/exchange/map"),
		get("cryptocurrency_ohlcv_latest", "/cryptocurrency/ohlcv/latest"),

		// Standard tier
		get("exchange_listings_latest", "/exchange/listings/latest"),
		get("exchange_quotes_latest", "/exchange/quotes/latest"),
		get("cryptocurrency_market_pairs_latest", "/cryptocurrency/market-pairs/latest"),
		get("cryptocurrency_ohlcv_historical", "/cryptocurrency/ohlcv/historical"),
		get("cryptocurrency_quotes_historical", "/cryptocurrency/quotes/historical"),
		get("exchange_market_pairs_latest", "/exchange/market-pairs/latest"),
		get("exchange_quotes_historical", "/exchange/quotes/historical"),
		get("global_aggregate_metrics_historical", "/global-metrics/quotes/historical"),
	),
})
