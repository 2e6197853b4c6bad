package boltstore

import (
	"context"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"

	"github.com/mtgtools/buylistdb/internal/domain"
)

// Bucket names: payloads and cached-on dates live side by side so that a
// namespace is always written and cleared as a pair.
var (
	bucketPayloads = []byte("payloads")
	bucketDates    = []byte("dates")
)

// Store implements domain.CacheStore using bbolt.
type Store struct {
	log zerolog.Logger
	db  *bolt.DB
}

// NewStore opens (or creates) the bolt database in dir.
func NewStore(dir string, log zerolog.Logger) (*Store, error) {
	dbPath := filepath.Join(dir, "buylistdb.bolt")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open bolt db")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketPayloads, bucketDates} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create buckets")
	}

	return &Store{
		log: log.With().Str("repo", "boltstore").Logger(),
		db:  db,
	}, nil
}

var _ domain.CacheStore = (*Store)(nil)

func (s *Store) Get(ctx context.Context, namespace string) ([]byte, string, error) {
	var payload []byte
	var cachedOn string

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketPayloads).Get([]byte(namespace))
		if data == nil {
			return domain.ErrNotFound
		}
		payload = append([]byte(nil), data...)
		cachedOn = string(tx.Bucket(bucketDates).Get([]byte(namespace)))
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return payload, cachedOn, nil
}

func (s *Store) Put(ctx context.Context, namespace string, payload []byte, cachedOn string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketPayloads).Put([]byte(namespace), payload); err != nil {
			return err
		}
		return tx.Bucket(bucketDates).Put([]byte(namespace), []byte(cachedOn))
	})
	return errors.Wrap(err, "failed to put cache entry")
}

func (s *Store) Delete(ctx context.Context, namespace string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketPayloads).Delete([]byte(namespace)); err != nil {
			return err
		}
		return tx.Bucket(bucketDates).Delete([]byte(namespace))
	})
	return errors.Wrap(err, "failed to delete cache entry")
}

func (s *Store) List(ctx context.Context) (map[string]string, error) {
	result := make(map[string]string)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDates).ForEach(func(k, v []byte) error {
			result[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cache entries")
	}
	return result, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
