package data

import (
	"context"
	"database/sql"
	"errors"

	"go-workforce/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
)

// Compile-time interface check
var _ domain.EmployeeRepository = (*EmployeeRepo)(nil)

// querier is the subset of *sql.DB and *sql.Tx the repository needs.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// EmployeeRepo implements domain.EmployeeRepository over database/sql.
type EmployeeRepo struct {
	data *Data
	log  *log.Helper
}

// NewEmployeeRepo creates a new employee repository.
func NewEmployeeRepo(data *Data, logger log.Logger) *EmployeeRepo {
	return &EmployeeRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// querier returns the session transaction when inside a unit of work,
// otherwise the shared database handle.
func (r *EmployeeRepo) querier(ctx context.Context) querier {
	if sess := sessionFromContext(ctx); sess != nil {
		return sess.Tx()
	}
	return r.data.db
}

// Save persists an employee, inserting or updating as needed, and tracks
// the aggregate with the session when inside a unit of work.
func (r *EmployeeRepo) Save(ctx context.Context, e *domain.Employee) error {
	query := r.data.Rebind(`
		INSERT INTO employees (id, name, position, salary, hired_at, terminated, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			position = excluded.position,
			salary = excluded.salary,
			terminated = excluded.terminated,
			updated_at = excluded.updated_at`)

	_, err := r.querier(ctx).ExecContext(ctx, query,
		e.ID(), e.Name(), e.Position(), e.Salary(), e.HiredAt(), e.Terminated(), e.UpdatedAt())
	if err != nil {
		return err
	}

	if sess := sessionFromContext(ctx); sess != nil {
		sess.Track(e)
	}
	return nil
}

// FindByID retrieves an employee by ID. Returns nil if not found. Reads do
// not track the aggregate: an event raised on a read-but-unmodified
// aggregate is not collected.
func (r *EmployeeRepo) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := r.data.Rebind(`
		SELECT id, name, position, salary, hired_at, terminated, updated_at
		FROM employees WHERE id = ?`)

	e, err := r.scanEmployee(r.querier(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// FindAll retrieves employees with pagination, newest hires first.
func (r *EmployeeRepo) FindAll(ctx context.Context, page, pageSize int) ([]*domain.Employee, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	query := r.data.Rebind(`
		SELECT id, name, position, salary, hired_at, terminated, updated_at
		FROM employees ORDER BY hired_at DESC LIMIT ? OFFSET ?`)

	rows, err := r.querier(ctx).QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		e, err := r.scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := r.data.Rebind(`SELECT COUNT(1) FROM employees`)
	if err := r.querier(ctx).QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// Delete removes an employee and tracks the aggregate with the session so
// events raised on it before deletion are still collected.
func (r *EmployeeRepo) Delete(ctx context.Context, e *domain.Employee) error {
	query := r.data.Rebind(`DELETE FROM employees WHERE id = ?`)
	if _, err := r.querier(ctx).ExecContext(ctx, query, e.ID()); err != nil {
		return err
	}

	if sess := sessionFromContext(ctx); sess != nil {
		sess.Track(e)
	}
	return nil
}

// Exists checks whether an employee with the given ID exists.
func (r *EmployeeRepo) Exists(ctx context.Context, id string) (bool, error) {
	query := r.data.Rebind(`SELECT COUNT(1) FROM employees WHERE id = ?`)

	var count int
	if err := r.querier(ctx).QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *EmployeeRepo) scanEmployee(row rowScanner) (*domain.Employee, error) {
	var (
		id, name, position string
		salary             int64
		hiredAt, updatedAt sql.NullTime
		terminated         bool
	)
	if err := row.Scan(&id, &name, &position, &salary, &hiredAt, &terminated, &updatedAt); err != nil {
		return nil, err
	}
	return domain.ReconstructEmployee(id, name, position, salary, hiredAt.Time, terminated, updatedAt.Time), nil
}
