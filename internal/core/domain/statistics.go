package domain

import "github.com/shopspring/decimal"

// Statistics are platform-wide totals derived from the transaction
// log on demand; nothing here is persisted.
type Statistics struct {
	ProfitBTC         decimal.Decimal `json:"profit_btc"`
	ProfitUSD         decimal.Decimal `json:"profit_usd"`
	TotalTransactions int64           `json:"total_transactions"`
}
