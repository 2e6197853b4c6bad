package domain

import "time"

// Report is the final ordered result set handed to the consumer boundary:
// ranked results plus aggregate counters and per-set fetch errors.
type Report struct {
	Results          []RankedResult `json:"results" yaml:"results"`
	TotalRequested   int            `json:"totalRequested" yaml:"totalRequested"`
	TotalMatched     int            `json:"totalMatched" yaml:"totalMatched"`
	TotalWithBuylist int            `json:"totalWithBuylist" yaml:"totalWithBuylist"`
	FetchErrors      []string       `json:"fetchErrors,omitempty" yaml:"fetchErrors,omitempty"`
	GeneratedAt      time.Time      `json:"generatedAt" yaml:"generatedAt"`
}
