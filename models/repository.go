package models

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Predicate selects rows of E. Predicates are built by the constructors in
// this package so callers never deal with SQL; Matches evaluates the same
// condition against an in-memory value.
type Predicate[E any] struct {
	scope func(*gorm.DB) *gorm.DB
	match func(*E) bool
}

// Matches reports whether e satisfies the predicate.
func (p Predicate[E]) Matches(e *E) bool {
	return p.match(e)
}

// repository holds the operations shared by every entity repository.
// Per-entity repositories embed it and add their own Update.
type repository[E any] struct {
	db       *gorm.DB
	preloads []string
}

func (r *repository[E]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

// List returns every row. Rows come back ordered by id.
func (r *repository[E]) List(ctx context.Context) ([]E, error) {
	out := []E{}
	if err := r.query(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// Get returns the first row matching where, or ErrNotFound.
// The returned value is detached: changing it has no effect until it is
// passed back to Update.
func (r *repository[E]) Get(ctx context.Context, where Predicate[E]) (*E, error) {
	var e E
	if err := r.query(ctx).Scopes(where.scope).Take(&e).Error; err != nil {
		return nil, mapError(err)
	}
	return &e, nil
}

// Count returns the number of rows matching where.
func (r *repository[E]) Count(ctx context.Context, where Predicate[E]) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(E)).Scopes(where.scope).Count(&n).Error; err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// Create inserts e. The store-assigned id is written back into e.
func (r *repository[E]) Create(ctx context.Context, e *E) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error)
}

// Remove deletes the row identified by the primary key of e.
func (r *repository[E]) Remove(ctx context.Context, e *E) error {
	res := r.db.WithContext(ctx).Delete(e)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// update writes columns to the row with the given id.
func (r *repository[E]) update(ctx context.Context, id uint, columns map[string]any) error {
	res := r.db.WithContext(ctx).Model(new(E)).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
