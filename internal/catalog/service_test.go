package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgtools/buylistdb/internal/dailycache"
	"github.com/mtgtools/buylistdb/internal/domain"
	"github.com/mtgtools/buylistdb/internal/memstore"
)

// stubSource implements domain.CatalogSource with canned responses and
// per-method call counts.
type stubSource struct {
	sets       map[string]*domain.SetDocument
	failSets   map[string]error
	prices     *domain.PriceDataset
	priceErr   error
	setCalls   map[string]int
	priceCalls int
	allCalls   int
	all        []domain.SetDocument
	allErr     error
}

func newStubSource() *stubSource {
	return &stubSource{
		sets:     make(map[string]*domain.SetDocument),
		failSets: make(map[string]error),
		setCalls: make(map[string]int),
	}
}

func (s *stubSource) FetchSet(ctx context.Context, setCode string) (*domain.SetDocument, error) {
	s.setCalls[setCode]++
	if err, ok := s.failSets[setCode]; ok {
		return nil, err
	}
	if doc, ok := s.sets[setCode]; ok {
		return doc, nil
	}
	return nil, errors.Errorf("unknown set %s", setCode)
}

func (s *stubSource) FetchAllPrintings(ctx context.Context) ([]domain.SetDocument, error) {
	s.allCalls++
	return s.all, s.allErr
}

func (s *stubSource) FetchPrices(ctx context.Context) (*domain.PriceDataset, error) {
	s.priceCalls++
	return s.prices, s.priceErr
}

func setDoc(code string, names ...string) *domain.SetDocument {
	doc := &domain.SetDocument{SetCode: code}
	for _, name := range names {
		doc.Cards = append(doc.Cards, domain.CatalogEntry{Name: name})
	}
	return doc
}

func newTestService(t *testing.T, source domain.CatalogSource, allPrintings bool) Service {
	t.Helper()
	cache := dailycache.NewService(zerolog.Nop(), memstore.NewStore(), time.Now)
	return NewService(zerolog.Nop(), cache, source, allPrintings)
}

func requests(codes ...string) []domain.CardRequest {
	var reqs []domain.CardRequest
	for _, code := range codes {
		reqs = append(reqs, domain.CardRequest{Name: "Sol Ring", SetCode: code})
	}
	return reqs
}

func TestResolve_FetchesAndCaches(t *testing.T) {
	ctx := context.Background()
	source := newStubSource()
	source.sets["LEA"] = setDoc("LEA", "Black Lotus", "Lightning Bolt")
	svc := newTestService(t, source, false)

	store, errs, err := svc.Resolve(ctx, requests("LEA"))
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Equal(t, 1, store.Len())

	doc, ok := store.Get("LEA")
	require.True(t, ok)
	assert.Len(t, doc.Cards, 2)

	// A same-day repeat is served from the cache, no second fetch.
	store, errs, err = svc.Resolve(ctx, requests("LEA"))
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, source.setCalls["LEA"])
}

func TestResolve_PartialFailure(t *testing.T) {
	ctx := context.Background()
	source := newStubSource()
	source.sets["LEA"] = setDoc("LEA", "Black Lotus")
	source.sets["ICE"] = setDoc("ICE", "Brainstorm")
	source.failSets["BAD"] = errors.New("boom")
	svc := newTestService(t, source, false)

	store, errs, err := svc.Resolve(ctx, requests("LEA", "BAD", "ICE"))
	require.NoError(t, err)

	// Two sets resolved, exactly one error string naming the failed set.
	assert.Equal(t, 2, store.Len())
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "BAD")

	_, ok := store.Get("LEA")
	assert.True(t, ok)
	_, ok = store.Get("ICE")
	assert.True(t, ok)
}

func TestResolve_DeduplicatesAndUppercasesSetCodes(t *testing.T) {
	ctx := context.Background()
	source := newStubSource()
	source.sets["LEA"] = setDoc("LEA", "Black Lotus")
	svc := newTestService(t, source, false)

	reqs := []domain.CardRequest{
		{Name: "Black Lotus", SetCode: "lea"},
		{Name: "Mox Pearl", SetCode: "LEA"},
		{Name: "Ancestral Recall"},
	}

	store, errs, err := svc.Resolve(ctx, reqs)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, source.setCalls["LEA"])
}

func TestResolve_NoSetCodesIsTerminal(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newStubSource(), false)

	_, _, err := svc.Resolve(ctx, []domain.CardRequest{{Name: "Sol Ring"}})
	assert.ErrorIs(t, err, domain.ErrNoSetCodes)
}

func TestResolve_AllPrintingsMode(t *testing.T) {
	ctx := context.Background()
	source := newStubSource()
	source.all = []domain.SetDocument{
		*setDoc("ICE", "Brainstorm"),
		*setDoc("LEA", "Black Lotus"),
	}
	svc := newTestService(t, source, true)

	store, errs, err := svc.Resolve(ctx, []domain.CardRequest{{Name: "Sol Ring"}})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 1, source.allCalls)
}

func TestResolve_AllPrintingsCachedSameDay(t *testing.T) {
	ctx := context.Background()
	source := newStubSource()
	source.all = []domain.SetDocument{
		*setDoc("ICE", "Brainstorm"),
		*setDoc("LEA", "Black Lotus"),
	}
	svc := newTestService(t, source, true)

	_, _, err := svc.Resolve(ctx, []domain.CardRequest{{Name: "Sol Ring"}})
	require.NoError(t, err)
	require.Equal(t, 1, source.allCalls)

	// A same-day repeat rebuilds the catalog from the per-set cache
	// entries, no second full fetch.
	store, errs, err := svc.Resolve(ctx, []domain.CardRequest{{Name: "Sol Ring"}})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 1, source.allCalls)

	_, ok := store.Get("LEA")
	assert.True(t, ok)
	_, ok = store.Get("ICE")
	assert.True(t, ok)
}

func TestResolve_AllPrintingsRefetchesAfterSetClear(t *testing.T) {
	ctx := context.Background()
	source := newStubSource()
	source.all = []domain.SetDocument{*setDoc("LEA", "Black Lotus")}

	cache := dailycache.NewService(zerolog.Nop(), memstore.NewStore(), time.Now)
	svc := NewService(zerolog.Nop(), cache, source, true)

	_, _, err := svc.Resolve(ctx, []domain.CardRequest{{Name: "Sol Ring"}})
	require.NoError(t, err)

	// Clearing the per-set entries leaves the marker pointing at nothing,
	// so the next resolve falls back to a fresh fetch.
	require.NoError(t, cache.Clear(ctx, SetNamespacePrefix))

	store, errs, err := svc.Resolve(ctx, []domain.CardRequest{{Name: "Sol Ring"}})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 2, source.allCalls)
}

func TestResolvePrices_CachesSnapshot(t *testing.T) {
	ctx := context.Background()
	price := 12.5
	source := newStubSource()
	source.prices = &domain.PriceDataset{
		ByUUID: map[string]domain.PriceEntry{
			"uuid-1": {Buylist: domain.BuylistPrices{CardKingdom: &price}},
		},
	}
	svc := newTestService(t, source, false)

	prices, err := svc.ResolvePrices(ctx)
	require.NoError(t, err)
	require.NotNil(t, prices)
	require.Contains(t, prices.ByUUID, "uuid-1")
	assert.Equal(t, price, *prices.ByUUID["uuid-1"].Buylist.CardKingdom)

	// Second resolution is cache-served.
	prices, err = svc.ResolvePrices(ctx)
	require.NoError(t, err)
	require.Contains(t, prices.ByUUID, "uuid-1")
	assert.Equal(t, 1, source.priceCalls)
}

func TestResolvePrices_FailureSurfacesError(t *testing.T) {
	ctx := context.Background()
	source := newStubSource()
	source.priceErr = errors.New("remote down")
	svc := newTestService(t, source, false)

	_, err := svc.ResolvePrices(ctx)
	assert.Error(t, err)
}
