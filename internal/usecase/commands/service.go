package commands

//go:generate mockgen -source=service.go -destination=../../testutil/mock/commands/service_mock.go -package=commandsmock

import (
	"context"

	"bodyshop/internal/domain/money"
	"bodyshop/internal/domain/service"
	"bodyshop/internal/domain/user"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/ptr"
	"bodyshop/internal/usecase/shared"
)

var ErrAdminOnly = errs.Mark(errs.New("administrator role required"), errs.ErrPermissionDenied)

type CreateServiceRequest struct {
	Name            string
	Description     string
	DurationMinutes int
	Price           money.Money
	CategoryID      *int64
	IsActive        *bool
}

// UpdateServiceRequest is a partial update; nil fields keep their value.
type UpdateServiceRequest struct {
	Name            *string
	Description     *string
	DurationMinutes *int
	Price           *money.Money
	CategoryID      *int64
	IsActive        *bool
}

type ServiceCommands interface {
	Create(ctx context.Context, actor user.Actor, req CreateServiceRequest) (int64, error)
	Update(ctx context.Context, actor user.Actor, id int64, req UpdateServiceRequest) error
}

type serviceCommandsImpl struct {
	uow   shared.UnitOfWork
	audit shared.AuditRecorder
}

func NewServiceCommands(uow shared.UnitOfWork, audit shared.AuditRecorder) ServiceCommands {
	return &serviceCommandsImpl{uow: uow, audit: audit}
}

func (uc *serviceCommandsImpl) Create(ctx context.Context, actor user.Actor, req CreateServiceRequest) (int64, error) {
	if !actor.IsAdmin() {
		return 0, ErrAdminOnly
	}

	s, err := service.NewService(service.Attributes{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		CategoryID:      req.CategoryID,
		IsActive:        ptr.Coalesce(req.IsActive, true),
	})
	if err != nil {
		return 0, err
	}

	id, err := uc.uow.Repos().Services().Create(ctx, s)
	if err != nil {
		return 0, err
	}

	uc.audit.Record(ctx, shared.AuditEntry{
		UserID:     &actor.ID,
		Action:     shared.AuditServiceCreated,
		EntityType: shared.EntityService,
		EntityID:   &id,
		Details:    map[string]any{"name": s.Name(), "price": s.Price().String(), "duration_minutes": s.DurationMinutes()},
	})
	return id, nil
}

func (uc *serviceCommandsImpl) Update(ctx context.Context, actor user.Actor, id int64, req UpdateServiceRequest) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}

	var changed *service.Service
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Services().FindByID(ctx, id)
		if err != nil {
			return notFoundAs(err, service.ErrServiceNotFound, "service %d", id)
		}

		categoryID := s.CategoryID()
		if req.CategoryID != nil {
			categoryID = req.CategoryID
		}
		err = s.Update(service.Attributes{
			Name:            ptr.Coalesce(req.Name, s.Name()),
			Description:     ptr.Coalesce(req.Description, s.Description()),
			DurationMinutes: ptr.Coalesce(req.DurationMinutes, s.DurationMinutes()),
			Price:           ptr.Coalesce(req.Price, s.Price()),
			CategoryID:      categoryID,
			IsActive:        ptr.Coalesce(req.IsActive, s.IsActive()),
		})
		if err != nil {
			return err
		}
		changed = s
		return tx.Services().Update(ctx, id, s)
	})
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, shared.AuditEntry{
		UserID:     &actor.ID,
		Action:     shared.AuditServiceUpdated,
		EntityType: shared.EntityService,
		EntityID:   &id,
		Details: map[string]any{
			"name":             changed.Name(),
			"price":            changed.Price().String(),
			"duration_minutes": changed.DurationMinutes(),
			"is_active":        changed.IsActive(),
		},
	})
	return nil
}
