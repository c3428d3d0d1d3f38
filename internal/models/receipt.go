package models

// MintReceipt — квитанция транзакции минта, возвращаемая внешним
// реестром. Отдаётся вызывающей стороне без изменений.
type MintReceipt struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
	Status      uint64 `json:"status"`
	From        string `json:"from"`
	To          string `json:"to"`
}
