// Package buylist attaches buylist availability and prices to match
// results and produces the final stable ordering of the report.
package buylist

import (
	"sort"
	"time"

	"github.com/mtgtools/buylistdb/internal/domain"
)

// HasBuylist reports whether the entry carries a purchase link for the
// requested finish.
func HasBuylist(entry *domain.CatalogEntry, isFoil bool) bool {
	if entry == nil || entry.PurchaseURLs == nil {
		return false
	}
	if isFoil {
		return entry.PurchaseURLs.CardKingdomFoil != ""
	}
	return entry.PurchaseURLs.CardKingdom != ""
}

// Price looks up the buylist price for the entry and finish. Absence at
// any level yields nil without error.
func Price(entry *domain.CatalogEntry, isFoil bool, prices *domain.PriceDataset) *float64 {
	if entry == nil || entry.UUID == "" || prices == nil {
		return nil
	}
	record, ok := prices.ByUUID[entry.UUID]
	if !ok {
		return nil
	}
	if isFoil {
		return record.Buylist.CardKingdomFoil
	}
	return record.Buylist.CardKingdom
}

// Rank orders match results into three tiers: buylist-available matches
// first, other matches next, unmatched last. The sort is stable, so ties
// within a tier preserve original input order.
func Rank(results []domain.MatchResult, prices *domain.PriceDataset) []domain.RankedResult {
	ranked := make([]domain.RankedResult, 0, len(results))
	for _, result := range results {
		ranked = append(ranked, domain.RankedResult{
			MatchResult: result,
			HasBuylist:  HasBuylist(result.Entry, result.Request.IsFoil),
			Price:       Price(result.Entry, result.Request.IsFoil, prices),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return tier(ranked[i]) < tier(ranked[j])
	})

	return ranked
}

func tier(r domain.RankedResult) int {
	switch {
	case r.HasBuylist:
		return 0
	case r.Entry != nil:
		return 1
	default:
		return 2
	}
}

// BuildReport ranks the results and assembles the report with its
// aggregate counters and per-set fetch errors.
func BuildReport(results []domain.MatchResult, prices *domain.PriceDataset, fetchErrors []string) *domain.Report {
	report := &domain.Report{
		Results:        Rank(results, prices),
		TotalRequested: len(results),
		FetchErrors:    fetchErrors,
		GeneratedAt:    time.Now(),
	}

	for _, r := range report.Results {
		if r.Entry != nil {
			report.TotalMatched++
		}
		if r.HasBuylist {
			report.TotalWithBuylist++
		}
	}

	return report
}
