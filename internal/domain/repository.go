package domain

import "context"

// CatalogSource defines the interface to the remote catalog and price
// endpoints. All documents are read-only JSON.
type CatalogSource interface {
	// FetchSet retrieves the document for a single set code.
	FetchSet(ctx context.Context, setCode string) (*SetDocument, error)

	// FetchAllPrintings retrieves every set in one document, the alternate
	// mode used when a submission names no set codes.
	FetchAllPrintings(ctx context.Context) ([]SetDocument, error)

	// FetchPrices retrieves the full buylist price snapshot.
	FetchPrices(ctx context.Context) (*PriceDataset, error)
}

// ListRepository defines the interface for reading card list input.
type ListRepository interface {
	ReadCardList(ctx context.Context, path string) (string, error)
}

// ReportRepository defines the interface for persisting generated reports.
type ReportRepository interface {
	StoreReport(ctx context.Context, path string, report *Report, format string) error
}

// NotificationService defines the interface for notification services
type NotificationService interface {
	// SendReport sends a summary notification for a completed report
	SendReport(ctx context.Context, report *Report) error

	// SendError sends an error notification with error details
	SendError(ctx context.Context, err error) error
}
