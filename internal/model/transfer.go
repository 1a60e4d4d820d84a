package model

// TransferRecord is one asset transfer reported by the indexing service.
// A nil To marks a contract-creation transaction.
type TransferRecord struct {
	From  string  `json:"from"`
	To    *string `json:"to"`
	Hash  string  `json:"hash"`
	Value float64 `json:"value"`
}

// TransferQuery narrows an asset-transfer scan. PageKey carries the cursor
// from the previous page; empty on the first request.
type TransferQuery struct {
	FromBlock   string   `json:"fromBlock"`
	ToBlock     string   `json:"toBlock"`
	FromAddress string   `json:"fromAddress,omitempty"`
	Category    []string `json:"category"`
	PageKey     string   `json:"pageKey,omitempty"`
}

// TransferPage is one page of asset transfers. An empty PageKey means the
// result set is exhausted.
type TransferPage struct {
	Transfers []TransferRecord `json:"transfers"`
	PageKey   string           `json:"pageKey"`
}
