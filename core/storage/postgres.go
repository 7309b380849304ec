package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/backostech/postcardbot/core/logger"
)

// PostgresStore keeps every collection in a single documents table with a
// JSONB payload column. Partial updates use the || merge operator so
// concurrent writers never clobber fields they did not touch.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, collection, pk string) (Doc, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw,
		`SELECT doc FROM documents WHERE collection = $1 AND pk = $2`,
		collection, pk,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Collection: collection, PK: pk}
	}
	if err != nil {
		return nil, unavailable("get", err)
	}
	return decodeDoc(raw)
}

// FindOne implements Store.
func (s *PostgresStore) FindOne(ctx context.Context, collection string, filter Doc) (Doc, error) {
	cond, err := encodeFilter(filter)
	if err != nil {
		return nil, err
	}
	var raw []byte
	err = s.db.GetContext(ctx, &raw,
		`SELECT doc FROM documents WHERE collection = $1 AND doc @> $2::jsonb ORDER BY created LIMIT 1`,
		collection, cond,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Collection: collection}
	}
	if err != nil {
		return nil, unavailable("find_one", err)
	}
	return decodeDoc(raw)
}

// Find implements Store.
func (s *PostgresStore) Find(ctx context.Context, collection string, filter Doc) ([]Doc, error) {
	cond, err := encodeFilter(filter)
	if err != nil {
		return nil, err
	}
	var rows [][]byte
	err = s.db.SelectContext(ctx, &rows,
		`SELECT doc FROM documents WHERE collection = $1 AND doc @> $2::jsonb ORDER BY created`,
		collection, cond,
	)
	if err != nil {
		return nil, unavailable("find", err)
	}
	docs := make([]Doc, 0, len(rows))
	for _, raw := range rows {
		doc, err := decodeDoc(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Count implements Store.
func (s *PostgresStore) Count(ctx context.Context, collection string, filter Doc) (int64, error) {
	cond, err := encodeFilter(filter)
	if err != nil {
		return 0, err
	}
	var n int64
	err = s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM documents WHERE collection = $1 AND doc @> $2::jsonb`,
		collection, cond,
	)
	if err != nil {
		return 0, unavailable("count", err)
	}
	return n, nil
}

// Upsert implements Store.
func (s *PostgresStore) Upsert(ctx context.Context, collection, pk string, filter, set, setOnInsert Doc) error {
	insertDoc, err := json.Marshal(mergeDocs(filter, setOnInsert, set))
	if err != nil {
		return unavailable("upsert", err)
	}
	setDoc, err := json.Marshal(normalizeSet(set))
	if err != nil {
		return unavailable("upsert", err)
	}

	start := time.Now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, pk, doc) VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (collection, pk)
		 DO UPDATE SET doc = documents.doc || $4::jsonb, last_modified = now()`,
		collection, pk, insertDoc, setDoc,
	)
	if err != nil {
		logger.DB.Error("upsert failed",
			slog.String("event", "db.upsert"),
			slog.String("collection", collection),
			slog.String("pk", pk),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
			slog.String("err", err.Error()),
		)
		return unavailable("upsert", err)
	}
	if logger.ShouldSampleDebug() {
		logger.DB.Debug("upsert",
			slog.String("event", "db.upsert"),
			slog.String("collection", collection),
			slog.String("pk", pk),
			slog.Int("set_fields", len(set)),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
		)
	}
	return nil
}

// Delete implements Store.
func (s *PostgresStore) Delete(ctx context.Context, collection, pk string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = $1 AND pk = $2`,
		collection, pk,
	)
	if err != nil {
		return false, unavailable("delete", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, unavailable("delete", err)
	}
	return affected > 0, nil
}

func decodeDoc(raw []byte) (Doc, error) {
	var doc Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, unavailable("decode", fmt.Errorf("malformed stored document: %w", err))
	}
	return doc, nil
}

func encodeFilter(filter Doc) ([]byte, error) {
	if len(filter) == 0 {
		return []byte("{}"), nil
	}
	cond, err := json.Marshal(filter)
	if err != nil {
		return nil, unavailable("filter", err)
	}
	return cond, nil
}

// normalizeSet guards the merge operator against a nil map, which would
// serialize as JSON null and wipe the stored document.
func normalizeSet(set Doc) Doc {
	if set == nil {
		return Doc{}
	}
	return set
}
