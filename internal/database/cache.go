package database

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/mtgtools/buylistdb/internal/domain"
)

// CacheStore implements domain.CacheStore on top of the SQLite database.
type CacheStore struct {
	log zerolog.Logger
	db  *DB
}

// NewCacheStore creates a SQLite-backed cache store.
func NewCacheStore(log zerolog.Logger, db *DB) domain.CacheStore {
	return &CacheStore{
		log: log.With().Str("repo", "cache").Logger(),
		db:  db,
	}
}

func (r *CacheStore) Get(ctx context.Context, namespace string) ([]byte, string, error) {
	queryBuilder := r.db.squirrel.
		Select("payload", "cached_on").
		From("daily_cache").
		Where(sq.Eq{"namespace": namespace})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, "", errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Get")

	var payload string
	var cachedOn string
	row := r.db.handler.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&payload, &cachedOn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", errors.Wrap(err, "error scanning row")
	}

	return []byte(payload), cachedOn, nil
}

func (r *CacheStore) Put(ctx context.Context, namespace string, payload []byte, cachedOn string) error {
	queryBuilder := r.db.squirrel.
		Replace("daily_cache").
		Columns("namespace", "payload", "cached_on").
		Values(namespace, string(payload), cachedOn)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Msg("Put")

	_, err = r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error executing query")
	}

	return nil
}

func (r *CacheStore) Delete(ctx context.Context, namespace string) error {
	queryBuilder := r.db.squirrel.
		Delete("daily_cache").
		Where(sq.Eq{"namespace": namespace})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building delete query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Delete")

	_, err = r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error executing delete query")
	}

	return nil
}

func (r *CacheStore) List(ctx context.Context) (map[string]string, error) {
	queryBuilder := r.db.squirrel.
		Select("namespace", "cached_on").
		From("daily_cache")

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Msg("List")

	rows, err := r.db.handler.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var namespace, cachedOn string
		if err := rows.Scan(&namespace, &cachedOn); err != nil {
			return nil, errors.Wrap(err, "error scanning row")
		}
		result[namespace] = cachedOn
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating rows")
	}

	return result, nil
}

func (r *CacheStore) Close() error {
	return r.db.Close()
}
