package biz

import (
	"context"

	"go-workforce/internal/data"
	"go-workforce/internal/domain"
	"go-workforce/internal/domain/event"
	"go-workforce/internal/infra/container"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(
	NewEmployeeUsecase,
	NewResolver,
	ProvideRegistry,
	ProvideUnitOfWork,
	wire.Bind(new(event.Resolver), new(*container.Container)),
)

// ProvideRegistry creates the handler registry.
func ProvideRegistry(resolver event.Resolver, logger log.Logger) *event.Registry {
	return event.NewRegistry(resolver, logger)
}

// ProvideUnitOfWork creates the unit of work over the data layer's
// session factory.
func ProvideUnitOfWork(d *data.Data, registry *event.Registry, logger log.Logger) *domain.UnitOfWork {
	return domain.NewUnitOfWork(d, registry, logger)
}

// EmployeeUsecase drives workforce operations. Every mutation runs as one
// unit of work: the body mutates aggregates through the repository, and
// the events they raise are dispatched around the commit.
type EmployeeUsecase struct {
	repo domain.EmployeeRepository
	uow  *domain.UnitOfWork
	log  *log.Helper
}

// NewEmployeeUsecase creates a new employee usecase.
func NewEmployeeUsecase(repo domain.EmployeeRepository, uow *domain.UnitOfWork, logger log.Logger) *EmployeeUsecase {
	return &EmployeeUsecase{
		repo: repo,
		uow:  uow,
		log:  log.NewHelper(logger),
	}
}

// Hire creates a new employee.
func (uc *EmployeeUsecase) Hire(ctx context.Context, name, position string, salary int64) (*domain.Employee, error) {
	var emp *domain.Employee
	err := uc.uow.Execute(ctx, func(ctx context.Context) error {
		e, err := domain.NewEmployee(name, position, salary)
		if err != nil {
			return err
		}
		if err := uc.repo.Save(ctx, e); err != nil {
			return err
		}
		emp = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Infof("hired %s as %s", emp.Name(), emp.Position())
	return emp, nil
}

// Promote moves an employee to a new position with a salary raise.
func (uc *EmployeeUsecase) Promote(ctx context.Context, id, position string, raise int64) (*domain.Employee, error) {
	var emp *domain.Employee
	err := uc.uow.Execute(ctx, func(ctx context.Context) error {
		e, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrEmployeeNotFound
		}
		if err := e.Promote(position, raise); err != nil {
			return err
		}
		if err := uc.repo.Save(ctx, e); err != nil {
			return err
		}
		emp = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return emp, nil
}

// Terminate marks an employee as having left the company.
func (uc *EmployeeUsecase) Terminate(ctx context.Context, id, reason string) error {
	return uc.uow.Execute(ctx, func(ctx context.Context) error {
		e, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrEmployeeNotFound
		}
		if err := e.Terminate(reason); err != nil {
			return err
		}
		return uc.repo.Save(ctx, e)
	})
}

// Remove deletes an employee record entirely.
func (uc *EmployeeUsecase) Remove(ctx context.Context, id string) error {
	return uc.uow.Execute(ctx, func(ctx context.Context) error {
		e, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrEmployeeNotFound
		}
		return uc.repo.Delete(ctx, e)
	})
}

// Get retrieves a single employee. Reads run outside any unit of work.
func (uc *EmployeeUsecase) Get(ctx context.Context, id string) (*domain.Employee, error) {
	e, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return e, nil
}

// List retrieves employees with pagination.
func (uc *EmployeeUsecase) List(ctx context.Context, page, pageSize int) ([]*domain.Employee, int, error) {
	return uc.repo.FindAll(ctx, page, pageSize)
}
