package exchange

import (
	"time"

	"cryptowrap/internal/sign"
	"cryptowrap/pkg/core"
)

// BitMEX REST API v1. Signs HMAC-SHA256 over verb + path + expiry + body
// with a five second expiry window; successful responses surface the
// venue's x-ratelimit-* headers.
var BitMEX = register(&Profile{
	ID:      "bitmex",
	Name:    "BitMEX",
	BaseURL: "https://www.bitmex.com/api/v1",
	AltURL:  "https://testnet.bitmex.com/api/v1",
	Signer: &sign.ExpiryHeader{
		Window: 5 * time.Second,
	},
	ParamsInQuery:    true,
	Headers:          jsonHeaders(),
	SurfaceRateLimit: true,
	Registry: core.NewRegistry(
		// Public
		get("announcement", "/announcement"),
		get("announcement_urgent", "/announcement/urgent"),
		get("chat", "/chat"),
		get("chat_channels", "/chat/channels"),
		get("chat_connected", "/chat/connected"),
		get("funding", "/funding"),
		get("instrument", "/instrument"),
		get("instrument_active", "/instrument/active"),
		get("instrument_active_and_indices", "/instrument/activeAndIndices"),
		get("instrument_active_intervals", "/instrument/activeIntervals"),
		get("instrument_composite_index", "/instrument/compositeIndex"),
		get("instrument_indices", "/instrument/indices"),
		get("insurance", "/insurance"),
		get("leaderboard", "/leaderboard"),
		get("liquidation", "/liquidation"),
		get("orderbook_l2", "/orderBook/L2"),
		get("quote", "/quote"),
		get("quote_bucketed", "/quote/bucketed"),
		get("schema_websocket_help", "/schema/websocketHelp"),
		get("settlement", "/settlement"),
		get("stats", "/stats"),
		get("stats_history", "/stats/history"),
		get("stats_history_usd", "/stats/historyUSD"),
		get("trade", "/trade"),
		get("trade_bucketed", "/trade/bucketed"),

		// Private
		get("api_key", "/apiKey"),
		post("api_key_create", "/apiKey"),
		del("api_key_delete", "/apiKey"),
		post("api_key_disable", "/apiKey/disable"),
		post("api_key_enable", "/apiKey/enable"),
		post("chat_send", "/chat"),
		get("execution", "/execution"),
		get("execution_trade_history", "/execution/tradeHistory"),
		get("leaderboard_name", "/leaderboard/name"),
		get("orders", "/order"),
		put("order_amend", "/order"),
		post("order_place", "/order"),
		del("order_cancel", "/order"),
		del("order_cancel_all", "/order/all"),
		put("order_amend_bulk", "/order/bulk"),
		post("order_place_bulk", "/order/bulk"),
		post("order_cancel_all_after", "/order/cancelAllAfter"),
		get("position", "/position"),
		post("position_isolate", "/position/isolate"),
		post("position_leverage", "/position/leverage"),
		post("position_risk_limit", "/position/riskLimit"),
		post("position_transfer_margin", "/position/transferMargin"),
		get("user", "/user"),
		put("user_update", "/user"),
		get("user_affiliate_status", "/user/affiliateStatus"),
		post("user_wallet_cancel_withdrawal", "/user/cancelWithdrawal"),
		get("user_check_referral_code", "/user/checkReferralCode"),
		get("user_commission", "/user/commission"),
		post("user_communication_token", "/user/communicationToken"),
		post("user_confirm_email", "/user/confirmEmail"),
		post("user_confirm_enable_tfa", "/user/confirmEnableTFA"),
		post("user_wallet_confirm_withdrawal", "/user/confirmWithdrawal"),
		get("user_deposit_address", "/user/depositAddress"),
		post("user_disable_tfa", "/user/disableTFA"),
		get("user_execution_history", "/user/executionHistory"),
		post("user_logout", "/user/logout"),
		post("user_logout_all", "/user/logoutAll"),
		get("user_margin", "/user/margin"),
		get("user_wallet_min_withdrawal_fee", "/user/minWithdrawalFee"),
		post("user_preferences", "/user/preferences"),
		post("user_request_enable_tfa", "/user/requestEnableTFA"),
		post("user_wallet_request_withdrawal", "/user/requestWithdrawal"),
		get("user_wallet", "/user/wallet"),
		get("user_wallet_history", "/user/walletHistory"),
		get("user_wallet_summary", "/user/walletSummary"),
		get("user_event", "/userEvent"),
	),
})
