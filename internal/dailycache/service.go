package dailycache

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/mtgtools/buylistdb/internal/domain"
)

// DateLayout is the single day-granular date format used for cache
// validity. Hour and timezone drift are not modeled beyond this.
const DateLayout = "2006-01-02"

type Service interface {
	// Get returns the cached payload for a namespace, or nil on a miss.
	// A record dated anything other than today is evicted and reported
	// as a miss; so is a record whose payload is not valid JSON.
	Get(ctx context.Context, namespace string) (json.RawMessage, error)

	// Put stores a payload under a namespace, stamped with today's date.
	Put(ctx context.Context, namespace string, payload []byte) error

	// Clear removes all namespaces, or only those matching prefix when
	// prefix is non-empty. Clearing an empty cache is a no-op.
	Clear(ctx context.Context, prefix string) error

	// Status reports whether anything is cached, which namespaces are
	// valid today, and the date the report was taken against.
	Status(ctx context.Context) (domain.CacheStatus, error)
}

type service struct {
	log   zerolog.Logger
	store domain.CacheStore
	now   func() time.Time
}

// NewService creates a daily cache over the given store. The clock is
// injected so tests can advance the calendar.
func NewService(log zerolog.Logger, store domain.CacheStore, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		log:   log.With().Str("module", "dailycache").Logger(),
		store: store,
		now:   now,
	}
}

func (s *service) today() string {
	return s.now().Format(DateLayout)
}

func (s *service) Get(ctx context.Context, namespace string) (json.RawMessage, error) {
	payload, cachedOn, err := s.store.Get(ctx, namespace)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read cache")
	}

	if cachedOn != s.today() {
		s.log.Debug().Str("namespace", namespace).Str("cached_on", cachedOn).Msg("cache entry expired, evicting")
		if err := s.store.Delete(ctx, namespace); err != nil {
			s.log.Warn().Err(err).Str("namespace", namespace).Msg("failed to evict expired entry")
		}
		return nil, nil
	}

	if !json.Valid(payload) {
		s.log.Warn().Str("namespace", namespace).Msg("cached payload is not valid JSON, treating as miss")
		if err := s.store.Delete(ctx, namespace); err != nil {
			s.log.Warn().Err(err).Str("namespace", namespace).Msg("failed to evict corrupt entry")
		}
		return nil, nil
	}

	return json.RawMessage(payload), nil
}

func (s *service) Put(ctx context.Context, namespace string, payload []byte) error {
	if err := s.store.Put(ctx, namespace, payload, s.today()); err != nil {
		return errors.Wrap(err, "failed to write cache")
	}
	s.log.Debug().Str("namespace", namespace).Int("bytes", len(payload)).Msg("cached payload")
	return nil
}

func (s *service) Clear(ctx context.Context, prefix string) error {
	namespaces, err := s.store.List(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list cache")
	}

	cleared := 0
	for ns := range namespaces {
		if prefix != "" && !strings.HasPrefix(ns, prefix) {
			continue
		}
		if err := s.store.Delete(ctx, ns); err != nil {
			return errors.Wrapf(err, "failed to clear namespace %s", ns)
		}
		cleared++
	}

	s.log.Info().Int("cleared", cleared).Str("prefix", prefix).Msg("cache cleared")
	return nil
}

func (s *service) Status(ctx context.Context) (domain.CacheStatus, error) {
	today := s.today()
	status := domain.CacheStatus{AsOfDate: today}

	namespaces, err := s.store.List(ctx)
	if err != nil {
		return status, errors.Wrap(err, "failed to list cache")
	}

	status.HasAny = len(namespaces) > 0
	for ns, cachedOn := range namespaces {
		if cachedOn == today {
			status.ValidNamespaces = append(status.ValidNamespaces, ns)
		}
	}
	sort.Strings(status.ValidNamespaces)

	return status, nil
}
