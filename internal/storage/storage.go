package storage

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/money-movement/internal/config"
)

type Storage struct {
	DB     bob.DB
	sqlDB  *sql.DB
	reader *Reader
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open(env.DatabaseDriver, env.PostgresConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "sql.Open")
	}
	return NewStorageFromDB(db), nil
}

func NewStorageFromDB(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		DB:     bobDB,
		sqlDB:  db,
		reader: NewReader(bobDB),
	}
}

// Write opens the transaction every multi-row change runs in. The caller
// must Commit or Rollback the returned Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, errors.Wrap(err, "storage.Write.BeginTx")
	}
	return NewWriter(tx), nil
}

func (s *Storage) Read() *Reader {
	return s.reader
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.sqlDB.Close()
}
