package service

import (
	"context"
	"strings"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/google/uuid"
)

type MenuService struct {
	repo MenuRepository
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

func (s *MenuService) CreateCategory(ctx context.Context, c *domain.Category) error {
	c.ID = uuid.NewString()
	c.Name = strings.TrimSpace(c.Name)
	return s.repo.CreateCategory(ctx, c)
}

func (s *MenuService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *MenuService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *MenuService) UpdateCategory(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	return s.repo.UpdateCategory(ctx, c)
}

func (s *MenuService) DeleteCategory(ctx context.Context, id string) error {
	rows, err := s.repo.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFound(domain.MsgCategoryNotFound)
	}
	return nil
}

func (s *MenuService) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	category, err := s.repo.GetCategory(ctx, item.CategoryID)
	if err != nil {
		return err
	}
	item.ID = uuid.NewString()
	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return err
	}
	item.Category = category
	return nil
}

func (s *MenuService) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.ListMenuItems(ctx)
}

func (s *MenuService) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

func (s *MenuService) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	category, err := s.repo.GetCategory(ctx, item.CategoryID)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateMenuItem(ctx, item); err != nil {
		return err
	}
	item.Category = category
	return nil
}

func (s *MenuService) DeleteMenuItem(ctx context.Context, id string) error {
	rows, err := s.repo.DeleteMenuItem(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFound(domain.MsgMenuItemNotFound)
	}
	return nil
}

var _ MenuServiceInterface = (*MenuService)(nil)
