// Package match resolves a parsed card request against the loaded
// catalog. Lookup is case-insensitive, exact-name first, then a narrow
// substring heuristic. Exact-before-substring avoids false positives
// between short names and longer names containing them ("Bolt" vs
// "Lightning Bolt").
package match

import (
	"strings"

	"github.com/mtgtools/buylistdb/internal/catalog"
	"github.com/mtgtools/buylistdb/internal/domain"
)

// Find resolves a request against the store. When the request names a
// loaded set, only that set is searched. Otherwise every loaded set is
// searched in insertion order and the first match wins. Returns nil when
// nothing matches.
func Find(req domain.CardRequest, store *catalog.Store) *domain.CatalogEntry {
	if req.SetCode != "" {
		if doc, ok := store.Get(req.SetCode); ok {
			return findInSet(doc, req.Name)
		}
	}

	for _, code := range store.SetCodes() {
		doc, _ := store.Get(code)
		if entry := findInSet(doc, req.Name); entry != nil {
			return entry
		}
	}

	return nil
}

func findInSet(doc *domain.SetDocument, name string) *domain.CatalogEntry {
	want := strings.ToLower(name)

	for i := range doc.Cards {
		if strings.ToLower(doc.Cards[i].Name) == want {
			return &doc.Cards[i]
		}
	}

	// Substring fallback, either direction, first hit in the set's
	// natural order wins.
	for i := range doc.Cards {
		have := strings.ToLower(doc.Cards[i].Name)
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return &doc.Cards[i]
		}
	}

	return nil
}
