package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/mtgtools/buylistdb/internal/dailycache"
	"github.com/mtgtools/buylistdb/internal/domain"
)

// Cache namespace layout: per-set documents under "set:<CODE>", the
// price snapshot under a fixed sentinel. The prefixes let callers clear
// catalog data and price data independently.
const (
	SetNamespacePrefix   = "set:"
	PriceNamespacePrefix = "price:"
	priceNamespace       = "price:cardkingdom"

	// Sentinel written after a full-catalog fetch. It records the set
	// codes stored that day so a repeat codeless run can rebuild the
	// catalog from the per-set entries instead of refetching.
	allPrintingsNamespace = "allprintings"
)

func setNamespace(setCode string) string {
	return SetNamespacePrefix + setCode
}

type Service interface {
	// Resolve loads the set documents referenced by requests, cache-first
	// with sequential remote fetches, and returns the populated store plus
	// one error string per set that failed. A submission referencing no
	// set codes returns domain.ErrNoSetCodes unless all-printings mode is
	// enabled.
	Resolve(ctx context.Context, requests []domain.CardRequest) (*Store, []string, error)

	// ResolvePrices loads the buylist price snapshot, cache-first.
	ResolvePrices(ctx context.Context) (*domain.PriceDataset, error)
}

type service struct {
	log          zerolog.Logger
	cache        dailycache.Service
	source       domain.CatalogSource
	allPrintings bool
}

func NewService(log zerolog.Logger, cache dailycache.Service, source domain.CatalogSource, allPrintings bool) Service {
	return &service{
		log:          log.With().Str("module", "catalog").Logger(),
		cache:        cache,
		source:       source,
		allPrintings: allPrintings,
	}
}

func (s *service) Resolve(ctx context.Context, requests []domain.CardRequest) (*Store, []string, error) {
	codes := distinctSetCodes(requests)
	store := NewStore()

	if len(codes) == 0 {
		if !s.allPrintings {
			return store, nil, domain.ErrNoSetCodes
		}
		return s.resolveAllPrintings(ctx, store)
	}

	// Sets are fetched one at a time, each awaited before the next
	// begins. This is a rate-limiting contract with the remote source,
	// not a performance concern.
	var errs []string
	for _, code := range codes {
		doc, err := s.resolveSet(ctx, code)
		if err != nil {
			s.log.Warn().Err(err).Str("set", code).Msg("failed to resolve set")
			errs = append(errs, fmt.Sprintf("%s: %v", code, err))
			continue
		}
		store.Put(doc)
	}

	s.log.Info().Int("sets", store.Len()).Int("failed", len(errs)).Msg("catalog resolution complete")
	return store, errs, nil
}

func (s *service) resolveSet(ctx context.Context, setCode string) (*domain.SetDocument, error) {
	ns := setNamespace(setCode)

	payload, err := s.cache.Get(ctx, ns)
	if err != nil {
		return nil, errors.Wrap(err, "cache read failed")
	}
	if payload != nil {
		doc := &domain.SetDocument{}
		if err := json.Unmarshal(payload, doc); err == nil {
			s.log.Debug().Str("set", setCode).Msg("using cached set document")
			return doc, nil
		}
		// Corrupt payload: fall through to a fresh fetch.
		s.log.Warn().Str("set", setCode).Msg("cached set document failed to decode, refetching")
	}

	doc, err := s.source.FetchSet(ctx, setCode)
	if err != nil {
		return nil, err
	}

	s.storeInCache(ctx, ns, doc)
	return doc, nil
}

func (s *service) resolveAllPrintings(ctx context.Context, store *Store) (*Store, []string, error) {
	if cached, ok := s.loadAllPrintingsFromCache(ctx); ok {
		s.log.Debug().Int("sets", cached.Len()).Msg("using cached full catalog")
		return cached, nil, nil
	}

	docs, err := s.source.FetchAllPrintings(ctx)
	if err != nil {
		return store, []string{fmt.Sprintf("all printings: %v", err)}, nil
	}

	codes := make([]string, 0, len(docs))
	for i := range docs {
		doc := &docs[i]
		s.storeInCache(ctx, setNamespace(doc.SetCode), doc)
		store.Put(doc)
		codes = append(codes, doc.SetCode)
	}

	if payload, err := json.Marshal(codes); err == nil {
		if err := s.cache.Put(ctx, allPrintingsNamespace, payload); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache full catalog marker")
		}
	}

	s.log.Info().Int("sets", store.Len()).Msg("loaded full catalog")
	return store, nil, nil
}

// loadAllPrintingsFromCache rebuilds the full catalog from the per-set
// entries recorded by a same-day full fetch. Any missing or corrupt
// entry invalidates the reconstruction and a fresh fetch takes over.
func (s *service) loadAllPrintingsFromCache(ctx context.Context) (*Store, bool) {
	payload, err := s.cache.Get(ctx, allPrintingsNamespace)
	if err != nil || payload == nil {
		return nil, false
	}

	var codes []string
	if err := json.Unmarshal(payload, &codes); err != nil || len(codes) == 0 {
		return nil, false
	}

	store := NewStore()
	for _, code := range codes {
		entry, err := s.cache.Get(ctx, setNamespace(code))
		if err != nil || entry == nil {
			return nil, false
		}
		doc := &domain.SetDocument{}
		if err := json.Unmarshal(entry, doc); err != nil {
			return nil, false
		}
		store.Put(doc)
	}
	return store, true
}

func (s *service) storeInCache(ctx context.Context, namespace string, doc *domain.SetDocument) {
	payload, err := json.Marshal(doc)
	if err != nil {
		s.log.Warn().Err(err).Str("namespace", namespace).Msg("failed to marshal set document for caching")
		return
	}
	if err := s.cache.Put(ctx, namespace, payload); err != nil {
		s.log.Warn().Err(err).Str("namespace", namespace).Msg("failed to cache set document")
	}
}

func (s *service) ResolvePrices(ctx context.Context) (*domain.PriceDataset, error) {
	payload, err := s.cache.Get(ctx, priceNamespace)
	if err != nil {
		return nil, errors.Wrap(err, "cache read failed")
	}
	if payload != nil {
		byUUID := make(map[string]domain.PriceEntry)
		if err := json.Unmarshal(payload, &byUUID); err == nil {
			s.log.Debug().Int("uuids", len(byUUID)).Msg("using cached price dataset")
			return &domain.PriceDataset{ByUUID: byUUID}, nil
		}
		s.log.Warn().Msg("cached price dataset failed to decode, refetching")
	}

	prices, err := s.source.FetchPrices(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(prices.ByUUID); err == nil {
		if err := s.cache.Put(ctx, priceNamespace, payload); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache price dataset")
		}
	}

	return prices, nil
}

// distinctSetCodes returns the distinct, uppercased set codes referenced
// by requests, in first-seen order. Requests without a set code
// contribute nothing.
func distinctSetCodes(requests []domain.CardRequest) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, req := range requests {
		if req.SetCode == "" {
			continue
		}
		code := strings.ToUpper(req.SetCode)
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}
