package exchange

import (
	"strings"

	"cryptowrap/internal/sign"
	"cryptowrap/pkg/core"
)

// Binance spot REST API. Signs HMAC-SHA256 over the encoded query string,
// appended as a signature query parameter, but only on /api/v3 and
// /wapi/v3 paths outside the public price/ticker/system-status set. The
// X-MBX-APIKEY header is sent with every request once a key is configured.
var Binance = register(&Profile{
	ID:            "binance",
	Name:          "Binance",
	BaseURL:       "https://api.binance.com",
	Signer:        &sign.SignedQuery{KeyHeader: "X-MBX-APIKEY"},
	SignWhen:      binanceSignWhen,
	ParamsInQuery: true,
	Headers:       jsonHeaders(),
	Registry: core.NewRegistry(
		// Public (/api/v1)
		get("exchange_information", "/api/v1/exchangeInfo"),
		get("klines", "/api/v1/klines"),
		get("orderbook", "/api/v1/depth"),
		get("ping", "/api/v1/ping"),
		get("time", "/api/v1/time"),
		get("trades", "/api/v1/trades"),
		get("trades_aggregate", "/api/v1/aggTrades"),
		get("ticker_24h", "/api/v1/ticker/24hr"),

		// Public (/api/v3)
		get("price", "/api/v3/avgPrice"),
		get("ticker_book", "/api/v3/ticker/bookTicker"),
		get("ticker_price", "/api/v3/ticker/price"),

		// Public (/wapi/v3)
		get("system_status", "/wapi/v3/systemStatus.html"),

		// Private (/api/v1)
		get("trades_history", "/api/v1/historicalTrades"),
		post("user_data_stream_create", "/api/v1/userDataStream"),
		put("user_data_stream_keepalive", "/api/v1/userDataStream"),
		del("user_data_stream_close", "/api/v1/userDataStream"),

		// Private (/api/v3)
		get("account", "/api/v3/account"),
		get("account_trades", "/api/v3/myTrades"),
		get("order_status", "/api/v3/order"),
		post("order_place", "/api/v3/order"),
		del("order_cancel", "/api/v3/order"),
		post("order_test", "/api/v3/order/test"),
		get("orders_all", "/api/v3/allOrders"),
		get("orders_open", "/api/v3/openOrders"),

		// Private (/wapi/v3)
		get("sub_account_list", "/wapi/v3/sub-account/list.html"),
		post("sub_account_transfer", "/wapi/v3/sub-account/transfer.html"),
		get("sub_account_transfer_history", "/wapi/v3/sub-account/transfer/history.html"),
		get("user_account_api_trading_status", "/wapi/v3/apiTradingStatus.html"),
		get("user_account_status", "/wapi/v3/accountStatus.html"),
		get("user_asset_detail", "/wapi/v3/assetDetail.html"),
		get("user_dustlog", "/wapi/v3/userAssetDribbletLog.html"),
		get("user_trade_fee", "/wapi/v3/tradeFee.html"),
		get("user_wallet_deposit_address", "/wapi/v3/depositAddress.html"),
		get("user_wallet_deposit_history", "/wapi/v3/depositHistory.html"),
		post("user_wallet_withdraw", "/wapi/v3/withdraw.html"),
		get("user_wallet_withdrawal_history", "/wapi/v3/withdrawHistory.html"),
	),
})

// binanceSignWhen excludes the endpoints that are public by convention
// even when credentials are configured.
func binanceSignWhen(path string) bool {
	if !strings.Contains(path, "/api/v3") && !strings.Contains(path, "/wapi/v3") {
		return false
	}
	for _, public := range []string{"/avgPrice", "/bookTicker", "/price", "/systemStatus.html"} {
		if strings.Contains(path, public) {
			return false
		}
	}
	return true
}
