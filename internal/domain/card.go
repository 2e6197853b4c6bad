package domain

// CardRequest is one line of a submitted card list after parsing.
// Immutable once produced by the parser; SetCode is empty when the line
// carried no set information.
type CardRequest struct {
	Name     string `json:"name" yaml:"name"`
	SetCode  string `json:"setCode,omitempty" yaml:"setCode,omitempty"`
	IsFoil   bool   `json:"isFoil,omitempty" yaml:"isFoil,omitempty"`
	RawInput string `json:"rawInput" yaml:"rawInput"`
}

// PurchaseURLs holds the vendor purchase links delivered by the catalog
// source. Presence of a key signals buylist availability for that finish.
type PurchaseURLs struct {
	CardKingdom     string `json:"cardKingdom,omitempty" yaml:"cardKingdom,omitempty"`
	CardKingdomFoil string `json:"cardKingdomFoil,omitempty" yaml:"cardKingdomFoil,omitempty"`
}

// CatalogEntry is a single card record within a set document.
type CatalogEntry struct {
	Name         string        `json:"name" yaml:"name"`
	ManaCost     string        `json:"manaCost,omitempty" yaml:"manaCost,omitempty"`
	Type         string        `json:"type,omitempty" yaml:"type,omitempty"`
	Rarity       string        `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Text         string        `json:"text,omitempty" yaml:"text,omitempty"`
	UUID         string        `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	PurchaseURLs *PurchaseURLs `json:"purchaseUrls,omitempty" yaml:"purchaseUrls,omitempty"`
}

// SetDocument is one fetched or cached set, keyed by its set code.
type SetDocument struct {
	SetCode string         `json:"setCode" yaml:"setCode"`
	Cards   []CatalogEntry `json:"cards" yaml:"cards"`
}

// BuylistPrices holds the buylist offers for one card, per finish.
type BuylistPrices struct {
	CardKingdom     *float64 `json:"cardKingdom,omitempty" yaml:"cardKingdom,omitempty"`
	CardKingdomFoil *float64 `json:"cardKingdomFoil,omitempty" yaml:"cardKingdomFoil,omitempty"`
}

// PriceEntry is the price record for a single card UUID.
type PriceEntry struct {
	Buylist BuylistPrices `json:"buylist" yaml:"buylist"`
}

// PriceDataset is the session-wide read-only price snapshot.
type PriceDataset struct {
	ByUUID map[string]PriceEntry `json:"byUuid" yaml:"byUuid"`
}

// MatchResult pairs a request with the catalog entry it resolved to,
// nil when no entry matched.
type MatchResult struct {
	Request CardRequest   `json:"request" yaml:"request"`
	Entry   *CatalogEntry `json:"entry,omitempty" yaml:"entry,omitempty"`
}

// RankedResult is a match result annotated with buylist availability and
// price, as emitted by the ranker.
type RankedResult struct {
	MatchResult `yaml:",inline"`
	HasBuylist  bool     `json:"hasBuylist" yaml:"hasBuylist"`
	Price       *float64 `json:"price,omitempty" yaml:"price,omitempty"`
}
