package exchange

import (
	"cryptowrap/internal/sign"
	"cryptowrap/pkg/core"
)

// Deribit API v2. Every request is a GET carrying its parameters in the
// query string; authenticated calls send a single structured Authorization
// header built from a timestamped, nonced HMAC-SHA256 signature.
var Deribit = register(&Profile{
	ID:      "deribit",
	Name:    "Deribit",
	BaseURL: "https://www.deribit.com/api/v2",
	AltURL:  "https://test.deribit.com/api/v2",
	Signer: &sign.CompositeAuth{
		Scheme: "deri-hmac-sha256",
	},
	ParamsInQuery: true,
	Headers:       jsonHeaders(),
	Registry: core.NewRegistry(
		// Authentication and supporting
		get("auth", "/public/auth"),
		get("get_time", "/public/get_time"),
		get("test", "/public/test"),

		// Account management
		get("get_announcements", "/public/get_announcements"),
		get("change_subaccount_name", "/private/change_subaccount_name"),
		get("create_subaccount", "/private/create_subaccount"),
		get("disable_tfa_for_subaccount", "/private/disable_tfa_for_subaccount"),
		get("get_account_summary", "/private/get_account_summary"),
		get("get_email_language", "/private/get_email_language"),
		get("get_new_announcements", "/private/get_new_announcements"),
		get("get_position", "/private/get_position"),
		get("get_positions", "/private/get_positions"),
		get("get_subaccounts", "/private/get_subaccounts"),
		get("set_announcement_as_read", "/private/set_announcement_as_read"),
		get("set_email_for_subaccount", "/private/set_email_for_subaccount"),
		get("set_email_language", "/private/set_email_language"),
		get("set_password_for_subaccount", "/private/set_password_for_subaccount"),
		get("toggle_notifications_from_subaccount", "/private/toggle_notifications_from_subaccount"),
		get("toggle_subaccount_login", "/private/toggle_subaccount_login"),

		// Trading
		get("order_buy", "/private/buy"),
		get("order_sell", "/private/sell"),
		get("order_edit", "/private/edit"),
		get("order_cancel", "/private/cancel"),
		get("order_cancel_all", "/private/cancel_all"),
		get("order_cancel_all_by_currency", "/private/cancel_all_by_currency"),
		get("order_cancel_all_by_instrument", "/private/cancel_all_by_instrument"),
		get("close_position", "/private/close_position"),
		get("get_margins", "/private/get_margins"),
		get("get_open_orders_by_currency", "/private/get_open_orders_by_currency"),
		get("get_open_orders_by_instrument", "/private/get_open_orders_by_instrument"),
		get("get_order_history_by_currency", "/private/get_order_history_by_currency"),
		get("get_order_history_by_instrument", "/private/get_order_history_by_instrument"),
		get("get_order_margin_by_ids", "/private/get_order_margin_by_ids"),
		get("get_order_state", "/private/get_order_state"),
		get("get_user_trades_by_currency", "/private/get_user_trades_by_currency"),
		get("get_user_trades_by_currency_and_time", "/private/get_user_trades_by_currency_and_time"),
		get("get_user_trades_by_instrument", "/private/get_user_trades_by_instrument"),
		get("get_user_trades_by_instrument_and_time", "/private/get_user_trades_by_instrument_and_time"),
		get("get_user_trades_by_order", "/private/get_user_trades_by_order"),
		get("get_settlement_history_by_instrument", "/private/get_settlement_history_by_instrument"),
		get("get_settlement_history_by_currency", "/private/get_settlement_history_by_currency"),

		// Market data
		get("get_book_summary_by_currency", "/public/get_book_summary_by_currency"),
		get("get_book_summary_by_instrument", "/public/get_book_summary_by_instrument"),
		get("get_contract_size", "/public/get_contract_size"),
		get("get_currencies", "/public/get_currencies"),
		get("get_funding_chart_data", "/public/get_funding_chart_data"),
		get("get_historical_volatility", "/public/get_historical_volatility"),
		get("get_index", "/public/get_index"),
		get("get_instruments", "/public/get_instruments"),
		get("get_last_settlements_by_currency", "/public/get_last_settlements_by_currency"),
		get("get_last_settlements_by_instrument", "/public/get_last_settlements_by_instrument"),
		get("get_last_trades_by_currency", "/public/get_last_trades_by_currency"),
		get("get_last_trades_by_currency_and_time", "/public/get_last_trades_by_currency_and_time"),
		get("get_last_trades_by_instrument", "/public/get_last_trades_by_instrument"),
		get("get_last_trades_by_instrument_and_time", "/public/get_last_trades_by_instrument_and_time"),
		get("get_order_book", "/public/get_order_book"),
		get("get_trade_volumes", "/public/get_trade_volumes"),
		get("ticker", "/public/ticker"),

		// Wallet
		get("wallet_cancel_transfer_by_id", "/private/cancel_transfer_by_id"),
		get("wallet_cancel_withdrawal", "/private/cancel_withdrawal"),
		get("wallet_create_deposit_address", "/private/create_deposit_address"),
		get("wallet_get_current_deposit_address", "/private/get_current_deposit_address"),
		get("wallet_get_deposits", "/private/get_deposits"),
		get("wallet_get_transfers", "/private/get_transfers"),
		get("wallet_get_withdrawals", "/private/get_withdrawals"),
		get("wallet_withdraw", "/private/withdraw"),
	),
})
