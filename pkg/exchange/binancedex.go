package exchange

import "cryptowrap/pkg/core"

// BinanceDEX (Binance Chain) HTTP API. Entirely unauthenticated; several
// endpoints embed an address, transaction hash, or order id in the path.
// The chain API takes broadcast bodies as plain text.
var BinanceDEX = register(&Profile{
	ID:      "binancedex",
	Name:    "BinanceDEX",
	BaseURL: "https://testnet-dex.binance.org",
	AltURL:  "https://dex.binance.org",
	Headers: map[string]string{
		"Accept":          "application/json",
		"Accept-Encoding": "gzip",
		"Content-Type":    "text/plain",
	},
	Registry: core.NewRegistry(
		get("account", "/api/v1/account/{address}"),
		get("account_sequence", "/api/v1/account/{address}/sequence"),
		post("broadcast", "/api/v1/broadcast"),
		get("fees", "/api/v1/fees"),
		get("klines", "/api/v1/klines"),
		get("markets", "/api/v1/markets"),
		get("node_info", "/api/v1/node-info"),
		get("orderbook", "/api/v1/depth"),
		get("orders_closed", "/api/v1/orders/closed"),
		get("order", "/api/v1/orders/{id}"),
		get("orders_open", "/api/v1/orders/open"),
		get("peers", "/api/v1/peers"),
		get("ticker_24h", "/api/v1/ticker/24hr"),
		get("time", "/api/v1/time"),
		get("tokens", "/api/v1/tokens"),
		get("trades", "/api/v1/trades"),
		get("transaction", "/api/v1/tx/{hash}"),
		get("transaction_json", "/api/v1/tx-json/{hash}"),
		get("transactions", "/api/v1/transactions"),
		get("validators", "/api/v1/validators"),
	),
})
