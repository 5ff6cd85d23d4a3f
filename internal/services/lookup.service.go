package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

type LookupRepository[T any, P any] interface {
	Repository[T, P]
	ListActive(ctx context.Context) ([]*T, error)
	NameExists(ctx context.Context, name, excludeID string) (bool, error)
	SetActive(ctx context.Context, id string, active bool) (int64, error)
}

// LookupService manages a user-editable lookup table whose names are unique
// regardless of case.
type LookupService[T any, P Patch, PT Record[T]] struct {
	*CRUD[T, P, PT]
	repo      LookupRepository[T, P]
	name      func(*T) string
	patchName func(P) *string
	activate  func(*T)
}

func (s *LookupService[T, P, PT]) Create(ctx context.Context, rec *T) (*T, error) {
	if err := PT(rec).Validate(); err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, s.name(rec), ""); err != nil {
		return nil, err
	}
	s.activate(rec)
	return s.CRUD.Create(ctx, rec)
}

func (s *LookupService[T, P, PT]) Update(ctx context.Context, id string, p P) (*T, error) {
	if name := s.patchName(p); name != nil {
		if err := s.checkName(ctx, *name, id); err != nil {
			return nil, err
		}
	}
	return s.CRUD.Update(ctx, id, p)
}

func (s *LookupService[T, P, PT]) ListActive(ctx context.Context) ([]*T, error) {
	return s.repo.ListActive(ctx)
}

func (s *LookupService[T, P, PT]) SetActive(ctx context.Context, id string, active bool) error {
	n, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(s.kind, id)
	}
	return nil
}

func (s *LookupService[T, P, PT]) checkName(ctx context.Context, name, excludeID string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	taken, err := s.repo.NameExists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s %q", ErrDuplicate, s.kind, name)
	}
	return nil
}

type (
	ExpenseTypeService = LookupService[model.ExpenseType, model.ExpenseTypePatch, *model.ExpenseType]
	PaymentModeService = LookupService[model.PaymentMode, model.PaymentModePatch, *model.PaymentMode]
)

// NewExpenseTypeService creates new types active, in the default category
// unless one is given.
func NewExpenseTypeService(repo LookupRepository[model.ExpenseType, model.ExpenseTypePatch]) *ExpenseTypeService {
	return &ExpenseTypeService{
		CRUD:      NewCRUD[model.ExpenseType, model.ExpenseTypePatch]("expense type", repo),
		repo:      repo,
		name:      func(t *model.ExpenseType) string { return t.Name },
		patchName: func(p model.ExpenseTypePatch) *string { return p.Name },
		activate: func(t *model.ExpenseType) {
			t.IsActive = true
			if strings.TrimSpace(t.Category) == "" {
				t.Category = model.DefaultExpenseCategory
			}
		},
	}
}

func NewPaymentModeService(repo LookupRepository[model.PaymentMode, model.PaymentModePatch]) *PaymentModeService {
	return &PaymentModeService{
		CRUD:      NewCRUD[model.PaymentMode, model.PaymentModePatch]("payment mode", repo),
		repo:      repo,
		name:      func(m *model.PaymentMode) string { return m.Name },
		patchName: func(p model.PaymentModePatch) *string { return p.Name },
		activate:  func(m *model.PaymentMode) { m.IsActive = true },
	}
}
