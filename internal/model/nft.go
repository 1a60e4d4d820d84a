package model

// OwnedNFT is one NFT from the owner-inventory endpoint. Balance is the
// service's string representation of the held quantity; it is not guaranteed
// to parse as a number.
type OwnedNFT struct {
	TokenID   string `json:"tokenId"`
	TokenType string `json:"tokenType"`
	Balance   string `json:"balance"`
	Raw       RawNFT `json:"raw"`
}

// RawNFT carries the unprocessed metadata the contract reported.
type RawNFT struct {
	Metadata *MetadataRecord `json:"metadata"`
}

// OwnedNFTPage is one page of owned NFTs. An empty PageKey means the
// inventory is exhausted.
type OwnedNFTPage struct {
	OwnedNFTs []OwnedNFT `json:"ownedNfts"`
	PageKey   string     `json:"pageKey"`
}

// NFTRecord tags an NFT's metadata with its identity for reporting.
type NFTRecord struct {
	TokenID   string          `json:"tokenId"`
	TokenType string          `json:"tokenType"`
	Metadata  *MetadataRecord `json:"metadata"`
}

// InventorySummary is the accumulated result of an NFT inventory scan.
// NFTData preserves the service's iteration order.
type InventorySummary struct {
	Balance int64       `json:"balance"`
	NFTData []NFTRecord `json:"nftData"`
}

// InventoryFilter constrains an NFT inventory scan. An empty TokenID and a
// nil or empty Metadata match every NFT. A non-empty TokenID must equal the
// NFT's token id exactly, compared as strings.
type InventoryFilter struct {
	TokenID  string
	Metadata *MetadataRecord
}
