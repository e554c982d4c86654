package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amanbabu2004/web-application-students/internal/cache"
	dom "github.com/amanbabu2004/web-application-students/internal/domain"
	"github.com/amanbabu2004/web-application-students/internal/repo"
	"github.com/amanbabu2004/web-application-students/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrValidation     = errors.New("validation failed")
)

// DirectoryService owns user-record CRUD semantics and validation.
type DirectoryService struct {
	repo  repo.UserRepo
	cache *cache.UserCache
	sf    singleflight.Group
}

// NewDirectoryService creates a DirectoryService. If c is nil, caching is disabled.
func NewDirectoryService(r repo.UserRepo, c *cache.UserCache) *DirectoryService {
	return &DirectoryService{repo: r, cache: c}
}

// Create inserts a new record. An empty id gets a server-assigned UUID.
func (s *DirectoryService) Create(ctx context.Context, id, name, email string, age int, occupation string) (dom.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	occupation = strings.TrimSpace(occupation)
	if name == "" {
		return dom.User{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if email == "" {
		return dom.User{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if occupation == "" {
		return dom.User{}, fmt.Errorf("%w: occupation is required", ErrValidation)
	}
	if age <= 0 {
		return dom.User{}, fmt.Errorf("%w: age must be positive", ErrValidation)
	}

	u, err := s.repo.Create(ctx, dom.User{
		ID:         id,
		Name:       name,
		Email:      email,
		Age:        age,
		Occupation: occupation,
	})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrDuplicateEmail
		}
		return dom.User{}, err
	}
	s.invalidateCache(ctx)
	return u, nil
}

func (s *DirectoryService) Get(ctx context.Context, id string) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

func (s *DirectoryService) List(ctx context.Context) ([]dom.User, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("list", func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.User), nil
	}
	return s.repo.List(ctx)
}

// Update applies only the supplied fields; absent fields keep their values.
func (s *DirectoryService) Update(ctx context.Context, id string, name, email *string, age *int, occupation *string) (dom.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	patch := existing
	if name != nil {
		patch.Name = strings.TrimSpace(*name)
		if patch.Name == "" {
			return dom.User{}, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
	}
	if email != nil {
		patch.Email = strings.TrimSpace(*email)
		if patch.Email == "" {
			return dom.User{}, fmt.Errorf("%w: email cannot be empty", ErrValidation)
		}
	}
	if age != nil {
		if *age <= 0 {
			return dom.User{}, fmt.Errorf("%w: age must be positive", ErrValidation)
		}
		patch.Age = *age
	}
	if occupation != nil {
		patch.Occupation = strings.TrimSpace(*occupation)
		if patch.Occupation == "" {
			return dom.User{}, fmt.Errorf("%w: occupation cannot be empty", ErrValidation)
		}
	}
	u, err := s.repo.Update(ctx, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrDuplicateEmail
		}
		return dom.User{}, err
	}
	s.invalidateCache(ctx)
	return u, nil
}

// Delete removes the record and returns the deleted record's name.
func (s *DirectoryService) Delete(ctx context.Context, id string) (string, error) {
	name, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	s.invalidateCache(ctx)
	return name, nil
}

// Search matches the substring against name and email.
func (s *DirectoryService) Search(ctx context.Context, q string) ([]dom.User, error) {
	q = strings.TrimSpace(q)
	if s.cache != nil {
		key := "search:" + strings.ToLower(q)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetSearch(ctx, q); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.Search(ctx, q)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetSearch(ctx, q, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.User), nil
	}
	return s.repo.Search(ctx, q)
}

func (s *DirectoryService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}
