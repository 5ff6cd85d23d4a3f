package store

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey string

const txKey txContextKey = "trx"

// DB is the process-wide store handle. It is opened once at startup, passed
// into every repository and closed at shutdown.
type DB struct {
	conn *gorm.DB
}

func Open(config Config) (*DB, error) {
	conn, err := openGorm(config)
	if err != nil {
		return nil, err
	}
	return &DB{conn: conn}, nil
}

// New wraps an already opened gorm handle.
func New(conn *gorm.DB) *DB {
	return &DB{conn: conn}
}

func (r *DB) Gorm() *gorm.DB {
	return r.conn
}

func (r *DB) Close() error {
	sqlDB, err := r.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithinTransaction runs fn inside one transaction. Repositories called with
// the derived context join it through Read and Write.
func (r *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

func (r *DB) Write(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.conn.WithContext(ctx)
}

// Read shares the write handle: the store has a single connection, so a
// reader inside a transaction must reuse it.
func (r *DB) Read(ctx context.Context) *gorm.DB {
	return r.Write(ctx)
}
