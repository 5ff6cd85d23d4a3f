package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fcatilizer/bookkeep-sub001/internal/repository"
)

// Repository is the contract every entity repository satisfies.
type Repository[T any, P any] interface {
	Create(ctx context.Context, rec *T) (bool, error)
	GetAll(ctx context.Context) ([]*T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, id string, p P) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	GenerateID(ctx context.Context) (string, error)
}

type Record[T any] interface {
	*T
	Key() string
	SetKey(id string)
	Validate() error
}

type Patch interface {
	Validate() error
}

// CRUD implements the plain create/read/update/delete flow shared by all
// entities: validate, assign an id, and map store results onto service
// errors.
type CRUD[T any, P Patch, PT Record[T]] struct {
	kind string
	repo Repository[T, P]
}

func NewCRUD[T any, P Patch, PT Record[T]](kind string, repo Repository[T, P]) *CRUD[T, P, PT] {
	return &CRUD[T, P, PT]{kind: kind, repo: repo}
}

func (s *CRUD[T, P, PT]) Create(ctx context.Context, rec *T) (*T, error) {
	r := PT(rec)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Key() == "" {
		id, err := s.repo.GenerateID(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate %s id: %w", s.kind, err)
		}
		r.SetKey(id)
	}

	ok, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.kind, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrConflict, s.kind, r.Key())
	}
	return rec, nil
}

func (s *CRUD[T, P, PT]) List(ctx context.Context) ([]*T, error) {
	return s.repo.GetAll(ctx)
}

func (s *CRUD[T, P, PT]) Get(ctx context.Context, id string) (*T, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFound(s.kind, id)
	}
	return rec, nil
}

// Update applies p and returns the stored record. An empty patch is a no-op
// that still reports a missing id.
func (s *CRUD[T, P, PT]) Update(ctx context.Context, id string, p P) (*T, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.Update(ctx, id, p); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: %s %s", ErrConflict, s.kind, id)
		}
		return nil, fmt.Errorf("update %s: %w", s.kind, err)
	}
	return s.Get(ctx, id)
}

func (s *CRUD[T, P, PT]) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return fmt.Errorf("%w: %s %s is still referenced", ErrConflict, s.kind, id)
		}
		return fmt.Errorf("delete %s: %w", s.kind, err)
	}
	if n == 0 {
		return notFound(s.kind, id)
	}
	return nil
}
