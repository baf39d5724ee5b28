package repository

import (
	"Inkwell/internal/pkg/database"
	"context"
	"errors"
	log "log/slog"

	"gorm.io/gorm"
)

// CRUD 通用仓储, shared by every typed repository
type CRUD[T any] interface {
	FindByID(ctx context.Context, id uint64) (*T, error)
	// FindOne returns the first row matching filter, by primary key. An empty filter
	// matches the first row of the table, so callers must pass at least one field when
	// they mean a specific record.
	FindOne(ctx context.Context, filter Filter) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]*T, error)
	Add(ctx context.Context, values Values[T]) (*T, error)
	AddMany(ctx context.Context, values []Values[T]) ([]*T, error)
	// Update applies values to every row matching filter. An empty filter updates the
	// whole table.
	Update(ctx context.Context, filter Filter, values Filter) (int64, error)
	Delete(ctx context.Context, filter Filter) (int64, error)
}

type crudImpl[T any] struct {
	db     *gorm.DB
	entity string
}

func NewCRUD[T any](db *gorm.DB, entity string) CRUD[T] {
	return &crudImpl[T]{
		db:     db,
		entity: entity,
	}
}

func (r *crudImpl[T]) conn(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}

// conn 优先使用请求上下文中的事务
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	return database.Conn(ctx, db)
}

func (r *crudImpl[T]) FindByID(ctx context.Context, id uint64) (*T, error) {
	var row T
	err := r.conn(ctx).First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.fail(ctx, "find", err)
	}
	return &row, nil
}

func (r *crudImpl[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var row T
	err := where(r.conn(ctx), filter).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.fail(ctx, "find", err)
	}
	return &row, nil
}

func (r *crudImpl[T]) FindAll(ctx context.Context, filter Filter) ([]*T, error) {
	rows := make([]*T, 0)
	err := where(r.conn(ctx), filter).Order("id").Find(&rows).Error
	if err != nil {
		return nil, r.fail(ctx, "find", err)
	}
	return rows, nil
}

func (r *crudImpl[T]) Add(ctx context.Context, values Values[T]) (*T, error) {
	row := values.New()
	if err := r.conn(ctx).Create(row).Error; err != nil {
		return nil, r.fail(ctx, "insert", err)
	}
	log.InfoContext(ctx, "row added", "entity", r.entity, "values", values.Fields().String())
	return row, nil
}

func (r *crudImpl[T]) AddMany(ctx context.Context, values []Values[T]) ([]*T, error) {
	rows := make([]*T, 0, len(values))
	if len(values) == 0 {
		return rows, nil
	}
	for _, v := range values {
		rows = append(rows, v.New())
	}
	// 单条多行 INSERT
	if err := r.conn(ctx).Create(&rows).Error; err != nil {
		return nil, r.fail(ctx, "insert", err)
	}
	log.InfoContext(ctx, "rows added", "entity", r.entity, "count", len(rows))
	return rows, nil
}

func (r *crudImpl[T]) Update(ctx context.Context, filter Filter, values Filter) (int64, error) {
	set := fieldsOf(values)
	if len(set) == 0 {
		return 0, nil
	}
	db := r.conn(ctx).Model(new(T))
	if len(fieldsOf(filter)) == 0 {
		db = db.Session(&gorm.Session{AllowGlobalUpdate: true})
	}
	result := where(db, filter).Updates(map[string]any(set))
	if result.Error != nil {
		return 0, r.fail(ctx, "update", result.Error)
	}
	log.InfoContext(ctx, "rows updated", "entity", r.entity, "filter", fieldsOf(filter).String(), "values", set.String(), "affected", result.RowsAffected)
	return result.RowsAffected, nil
}

func (r *crudImpl[T]) Delete(ctx context.Context, filter Filter) (int64, error) {
	fs := fieldsOf(filter)
	if len(fs) == 0 {
		return 0, &ValidationError{Entity: r.entity, Err: ErrFilterRequired}
	}
	result := r.conn(ctx).Where(map[string]any(fs)).Delete(new(T))
	if result.Error != nil {
		return 0, r.fail(ctx, "delete", result.Error)
	}
	log.InfoContext(ctx, "rows deleted", "entity", r.entity, "filter", fs.String(), "affected", result.RowsAffected)
	return result.RowsAffected, nil
}

func (r *crudImpl[T]) fail(ctx context.Context, op string, err error) error {
	log.ErrorContext(ctx, "storage error", "op", op, "entity", r.entity, "err", err)
	return newStorageError(op, r.entity, err)
}

func fieldsOf(f Filter) Fields {
	if f == nil {
		return nil
	}
	return f.Fields()
}

func where(db *gorm.DB, filter Filter) *gorm.DB {
	fs := fieldsOf(filter)
	if len(fs) == 0 {
		return db
	}
	return db.Where(map[string]any(fs))
}
