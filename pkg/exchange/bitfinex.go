package exchange

import (
	"strings"
	"time"

	"cryptowrap/internal/sign"
	"cryptowrap/pkg/core"
)

const (
	bitfinexPublicHost = "https://api-pub.bitfinex.com"
	bitfinexAuthHost   = "https://api.bitfinex.com"
)

// Bitfinex REST API v2. Public market data lives on api-pub; calculation
// and authenticated endpoints on the main host. Signs HMAC-SHA384 over
// "/api/" + path + nonce + body. The v2 API answers with bare arrays, so
// payloads are wrapped under a "response" key before decoration.
var Bitfinex = register(&Profile{
	ID:      "bitfinex",
	Name:    "Bitfinex",
	BaseURL: bitfinexAuthHost,
	Signer: &sign.NonceHeader384{
		Window: 5 * time.Second,
	},
	Headers:     withContentTypeJSON(jsonHeaders()),
	WrapPayload: true,
	HostFor:     bitfinexHost,
	Registry: core.NewRegistry(
		// Public
		get("platform_status", "/v2/platform/status"),
		get("tickers", "/v2/tickers"),
		get("ticker", "/v2/ticker/{symbol}"),
		get("trades", "/v2/trades/{symbol}/hist"),
		get("orderbook", "/v2/book/{symbol}/{precision}"),
		get("stats", "/v2/stats1/{key}:{size}:{symbol}/{section}"),
		get("candles", "/v2/candles/trade:{timeframe}:{symbol}/{section}"),

		// Calculation
		post("foreign_exchange_rate", "/v2/calc/fx"),
		post("market_average_price", "/v2/calc/trade/avg"),

		// Private
		post("alert_delete", "/v2/auth/w/alert/price:{symbol}:{price}/del"),
		post("alert_list", "/v2/auth/r/alerts"),
		post("alert_set", "/v2/auth/w/alert/set"),
		post("calculate_available_balance", "/v2/auth/calc/order/avail"),
		post("funding_credits", "/v2/auth/r/funding/credits/{symbol}"),
		post("funding_credits_history", "/v2/auth/r/funding/credits/{symbol}/hist"),
		post("funding_info", "/v2/auth/r/info/funding/{symbol}"),
		post("funding_loans", "/v2/auth/r/funding/loans/{symbol}"),
		post("funding_loans_history", "/v2/auth/r/funding/loans/{symbol}/hist"),
		post("funding_offers", "/v2/auth/r/funding/offers/{symbol}"),
		post("funding_offers_history", "/v2/auth/r/funding/offers/{symbol}/hist"),
		post("funding_trades", "/v2/auth/r/funding/trades/{symbol}/hist"),
		post("ledgers", "/v2/auth/r/ledgers/{symbol}/hist"),
		post("margin_info", "/v2/auth/r/info/margin/{key}"),
		post("order_trades", "/v2/auth/r/order/{symbol}:{order_id}/trades"),
		post("orders", "/v2/auth/r/orders"),
		post("orders_history", "/v2/auth/r/orders/{symbol}/hist"),
		post("performance", "/v2/auth/r/stats/perf::1D/hist"),
		post("positions", "/v2/auth/r/positions"),
		post("positions_audit", "/v2/auth/r/positions/audit"),
		post("positions_history", "/v2/auth/r/positions/hist"),
		post("account_trades", "/v2/auth/r/trades/{symbol}/hist"),
		post("user_info", "/v2/auth/r/info/user"),
		post("user_settings_delete", "/v2/auth/w/settings/del"),
		post("user_settings_read", "/v2/auth/r/settings"),
		post("user_settings_write", "/v2/auth/w/settings/set"),
		post("wallet_movements", "/v2/auth/r/movements/{currency}/hist"),
		post("wallets", "/v2/auth/r/wallets"),
		post("wallets_history", "/v2/auth/r/wallets/hist"),
	),
})

// bitfinexHost routes public market data to api-pub and everything else
// (calc + auth) to the main host.
func bitfinexHost(d core.Descriptor) string {
	if strings.HasPrefix(d.Path, "/v2/auth") || strings.HasPrefix(d.Path, "/v2/calc") {
		return bitfinexAuthHost
	}
	return bitfinexPublicHost
}
