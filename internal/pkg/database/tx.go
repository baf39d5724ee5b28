package database

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// WithTx attaches a request-scoped transaction to ctx.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the transaction attached by WithTx, if any.
func TxFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// Conn returns the handle repositories must use for ctx: the request transaction when
// one is attached, otherwise db itself.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// Scope is one acquired transaction. Release must be called exactly once; it commits
// when commit is true and rolls back otherwise. Later calls are no-ops.
type Scope struct {
	tx       *gorm.DB
	released bool
}

// Begin opens a transaction and returns ctx carrying it.
func Begin(ctx context.Context, db *gorm.DB) (context.Context, *Scope, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ctx, nil, tx.Error
	}
	return WithTx(ctx, tx), &Scope{tx: tx}, nil
}

func (s *Scope) Release(commit bool) error {
	if s == nil || s.released {
		return nil
	}
	s.released = true
	if commit {
		return s.tx.Commit().Error
	}
	return s.tx.Rollback().Error
}

// RunInTx runs fn inside one transaction, committing when fn returns nil.
func RunInTx(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) (err error) {
	txCtx, scope, err := Begin(ctx, db)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = scope.Release(false)
			panic(p)
		}
	}()

	if err = fn(txCtx); err != nil {
		_ = scope.Release(false)
		return err
	}
	return scope.Release(true)
}
