package exchange

import (
	"cryptowrap/internal/sign"
	"cryptowrap/pkg/core"
)

// CryptoCompare min-api. Authenticates with an "Apikey" authorization
// header, every parameter travels in the query string.
var CryptoCompare = register(&Profile{
	ID:            "cryptocompare",
	Name:          "CryptoCompare",
	BaseURL:       "https://min-api.cryptocompare.com",
	Signer:        &sign.KeyHeader{Header: "authorization", Prefix: "Apikey "},
	ParamsInQuery: true,
	Headers:       jsonHeaders(),
	Registry: core.NewRegistry(
		// Price
		get("price", "/data/price"),
		get("price_multi", "/data/pricemulti"),
		get("price_multi_full", "/data/pricemultifull"),
		get("generate_custom_average", "/data/generateAvg"),

		// Historical
		get("historical_daily_ohlcv", "/data/histoday"),
		get("historical_hourly_ohlcv", "/data/histohour"),
		get("historical_minute_ohlcv", "/data/histominute"),
		get("historical_daily_ohlcv_timestamp", "/data/pricehistorical"),
		get("historical_daily_average_price", "/data/dayAvg"),
		get("historical_daily_exchange_volume", "/data/exchange/histoday"),
		get("historical_hourly_exchange_volume", "/data/exchange/histohour"),

		// Toplists
		get("toplist_24h_volume_full", "/data/top/totalvolfull"),
		get("toplist_market_cap_full", "/data/top/mktcapfull"),
		get("toplist_exchanges_volume_pair", "/data/top/exchanges"),
		get("toplist_exchanges_full_pair", "/data/top/exchanges/full"),
		get("toplist_pair_volume", "/data/top/volumes"),
		get("toplist_trading_pairs", "/data/top/pairs"),

		// Social
		get("social_stats_latest", "/data/social/coin/latest"),
		get("social_stats_historical_daily", "/data/social/coin/histo/day"),
		get("social_stats_historical_hourly", "/data/social/coin/histo/hour"),

		// News
		get("news_latest_articles", "/data/v2/news/"),
		get("news_feed_list", "/data/news/feeds"),
		get("news_article_categories", "/data/news/categories"),
		get("news_feeds_and_categories", "/data/news/feedsandcategories"),

		// Order book
		get("orderbook_exchanges_list", "/data/ob/l2/exchanges"),
		get("orderbook_l2_snapshot", "/data/ob/l2/snapshot"),

		// General info
		get("rate_limit", "/stats/rate/limit"),
		get("rate_limit_hour", "/stats/rate/hour/limit"),
		get("list_exchanges_and_trading_pairs", "/data/v2/all/exchanges"),
		get("instrument_constituent_exchanges", "/data/all/includedexchanges"),
		get("list_coins", "/data/all/coinlist"),
		get("info_exchanges", "/data/exchanges/general"),
		get("info_wallets", "/data/wallets/general"),
		get("info_crypto_cards", "/data/cards/general"),
		get("info_mining_contracts", "/data/mining/contracts/general"),
		get("info_mining_equipment", "/data/mining/equipment/general"),
		get("info_mining_pools", "/data/mining/pools/general"),
		get("list_pair_remapping_events", "/data/pair/re-mapping"),

		// Streaming subscriptions
		get("toplist_24h_volume_subscriptions", "/data/top/totalvol"),
		get("toplist_market_cap_subscriptions", "/data/top/mktcap"),
		get("subs_by_pair", "/data/subs"),
		get("subs_watchlist", "/data/subsWatchlist"),
		get("info_coins", "/data/coin/generalinfo"),
	),
})
