package data

import (
	"context"

	"go-workforce/internal/domain"
)

// Compile-time interface check
var _ domain.EmployeeRepository = (*CachedEmployeeRepo)(nil)

// CachedEmployeeRepo wraps an EmployeeRepo with a read-path cache. Writes
// only invalidate: caching happens on committed reads, never on uncommitted
// transactional state.
type CachedEmployeeRepo struct {
	repo  *EmployeeRepo
	cache EmployeeCache
}

// NewCachedEmployeeRepo creates a new cached repository wrapper.
func NewCachedEmployeeRepo(repo *EmployeeRepo, cache EmployeeCache) domain.EmployeeRepository {
	return &CachedEmployeeRepo{
		repo:  repo,
		cache: cache,
	}
}

// Save persists an employee and invalidates its cache entry.
func (r *CachedEmployeeRepo) Save(ctx context.Context, e *domain.Employee) error {
	if err := r.repo.Save(ctx, e); err != nil {
		return err
	}
	_ = r.cache.Invalidate(ctx, e.ID())
	return nil
}

// FindByID retrieves an employee, checking the cache first. Lookups inside
// a unit of work bypass the cache so the body observes its own writes.
func (r *CachedEmployeeRepo) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	if sessionFromContext(ctx) != nil {
		return r.repo.FindByID(ctx, id)
	}

	if cached, err := r.cache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	e, err := r.repo.FindByID(ctx, id)
	if err != nil || e == nil {
		return e, err
	}

	_ = r.cache.Set(ctx, e)
	return e, nil
}

// FindAll retrieves employees with pagination. Listings are not cached.
func (r *CachedEmployeeRepo) FindAll(ctx context.Context, page, pageSize int) ([]*domain.Employee, int, error) {
	return r.repo.FindAll(ctx, page, pageSize)
}

// Delete removes an employee and invalidates its cache entry.
func (r *CachedEmployeeRepo) Delete(ctx context.Context, e *domain.Employee) error {
	if err := r.repo.Delete(ctx, e); err != nil {
		return err
	}
	_ = r.cache.Invalidate(ctx, e.ID())
	return nil
}

// Exists checks whether an employee with the given ID exists.
func (r *CachedEmployeeRepo) Exists(ctx context.Context, id string) (bool, error) {
	return r.repo.Exists(ctx, id)
}
