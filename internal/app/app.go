package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/mtgtools/buylistdb/internal/boltstore"
	"github.com/mtgtools/buylistdb/internal/buylist"
	"github.com/mtgtools/buylistdb/internal/catalog"
	"github.com/mtgtools/buylistdb/internal/config"
	"github.com/mtgtools/buylistdb/internal/dailycache"
	"github.com/mtgtools/buylistdb/internal/database"
	"github.com/mtgtools/buylistdb/internal/domain"
	"github.com/mtgtools/buylistdb/internal/logger"
	"github.com/mtgtools/buylistdb/internal/match"
	"github.com/mtgtools/buylistdb/internal/memstore"
	"github.com/mtgtools/buylistdb/internal/mtgjson"
	"github.com/mtgtools/buylistdb/internal/notification"
	"github.com/mtgtools/buylistdb/internal/parser"
	"github.com/mtgtools/buylistdb/internal/repository"
)

// App represents the main application with all dependencies initialized
type App struct {
	log                 zerolog.Logger
	config              *domain.Config
	cacheStore          domain.CacheStore
	cache               dailycache.Service
	catalogService      catalog.Service
	fileRepo            *repository.FileRepository
	notificationService domain.NotificationService
}

// NewApp creates a new application instance with all dependencies initialized
func NewApp() (*App, error) {
	log := logger.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cacheStore, err := openCacheStore(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}

	cache := dailycache.NewService(log, cacheStore, time.Now)
	source := mtgjson.NewClient(log, cfg.CatalogBaseURL, cfg.FetchRate)
	catalogService := catalog.NewService(log, cache, source, cfg.AllPrintings)
	fileRepo := repository.NewFileRepository(log)
	notificationService := notification.NewService(log, cfg.DiscordWebhookURL)

	return &App{
		log:                 log,
		config:              cfg,
		cacheStore:          cacheStore,
		cache:               cache,
		catalogService:      catalogService,
		fileRepo:            fileRepo,
		notificationService: notificationService,
	}, nil
}

func openCacheStore(cfg *domain.Config, log zerolog.Logger) (domain.CacheStore, error) {
	switch cfg.CacheBackend {
	case domain.CacheBackendBolt:
		return boltstore.NewStore(cfg.CacheDir, log)
	case domain.CacheBackendMemory:
		return memstore.NewStore(), nil
	default:
		db, err := database.NewDB(cfg.CacheDir, log)
		if err != nil {
			return nil, err
		}
		return database.NewCacheStore(log, db), nil
	}
}

// Close releases the cache store.
func (a *App) Close() error {
	return a.cacheStore.Close()
}

// Run generates a full buylist report from the card list at listPath and
// renders it to stdout; outputPath, when set, also persists it.
func (a *App) Run(listPath, outputPath, format string) (err error) {
	ctx := context.Background()

	// Send error notification if the run fails
	defer func() {
		if err != nil {
			if notifyErr := a.notificationService.SendError(ctx, err); notifyErr != nil {
				a.log.Warn().Err(notifyErr).Msg("Failed to send error notification")
			}
		}
	}()

	text, err := a.fileRepo.ReadCardList(ctx, listPath)
	if err != nil {
		return fmt.Errorf("failed to read card list: %w", err)
	}

	requests := parser.Parse(text)
	if len(requests) == 0 {
		return fmt.Errorf("card list %s contains no entries", listPath)
	}
	if !parser.AllHaveSetCodes(requests) {
		a.log.Warn().Msg("some entries carry no set code; they only match against sets loaded for other entries")
	}
	a.log.Info().Int("requests", len(requests)).Msg("parsed card list")

	store, fetchErrs, err := a.catalogService.Resolve(ctx, requests)
	if err != nil {
		return fmt.Errorf("failed to resolve catalog data: %w", err)
	}

	// Price data is a graceful degradation: matches still work when the
	// snapshot is unavailable, the report just omits prices.
	prices, err := a.catalogService.ResolvePrices(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("price data unavailable, report will omit prices")
		prices = nil
		err = nil
	}

	results := make([]domain.MatchResult, 0, len(requests))
	for _, req := range requests {
		results = append(results, domain.MatchResult{
			Request: req,
			Entry:   match.Find(req, store),
		})
	}

	report := buylist.BuildReport(results, prices, fetchErrs)

	a.log.Info().
		Int("total_requested", report.TotalRequested).
		Int("total_matched", report.TotalMatched).
		Int("total_with_buylist", report.TotalWithBuylist).
		Int("fetch_errors", len(report.FetchErrors)).
		Msg("report generated")

	renderReport(os.Stdout, report)

	if outputPath != "" {
		if err := a.fileRepo.StoreReport(ctx, outputPath, report, format); err != nil {
			return fmt.Errorf("failed to store report: %w", err)
		}
	}

	if notifyErr := a.notificationService.SendReport(ctx, report); notifyErr != nil {
		a.log.Warn().Err(notifyErr).Msg("Failed to send report notification")
	}

	return nil
}

// CacheStatus returns the daily cache status.
func (a *App) CacheStatus() (domain.CacheStatus, error) {
	return a.cache.Status(context.Background())
}

// ClearCache removes cached data; prefix scopes the clear to catalog
// data ("set:") or price data ("price:").
func (a *App) ClearCache(prefix string) error {
	return a.cache.Clear(context.Background(), prefix)
}

func renderReport(out io.Writer, report *domain.Report) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CARD\tSET\tFOIL\tSTATUS\tPRICE")

	for _, r := range report.Results {
		status := "not found"
		price := "-"
		name := r.Request.Name
		set := r.Request.SetCode
		foil := ""
		if r.Request.IsFoil {
			foil = "foil"
		}
		if r.Entry != nil {
			name = r.Entry.Name
			status = "found"
			if r.HasBuylist {
				status = "buylist"
			}
			if r.Price != nil {
				price = fmt.Sprintf("$%.2f", *r.Price)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, set, foil, status, price)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d requested, %d matched, %d with buylist availability\n",
		report.TotalRequested, report.TotalMatched, report.TotalWithBuylist)

	if len(report.FetchErrors) > 0 {
		fmt.Fprintln(out, "\nFetch errors:")
		for _, e := range report.FetchErrors {
			fmt.Fprintf(out, "  %s\n", e)
		}
	}
}
