package service_test

import (
	"context"
	"testing"

	"restaurant-backend/restaurant-svc/internal/domain"
	"restaurant-backend/restaurant-svc/internal/mocks"
	"restaurant-backend/restaurant-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMenuService_CreateCategory(t *testing.T) {
	repo := mocks.NewMenuRepository(t)
	category := &domain.Category{Name: "  Desserts "}
	repo.On("CreateCategory", mock.Anything, category).Return(nil).Once()

	require.NoError(t, service.NewMenuService(repo).CreateCategory(context.Background(), category))
	assert.Equal(t, "Desserts", category.Name)
	assert.NotEmpty(t, category.ID)
}

func TestMenuService_CreateMenuItem(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *mocks.MenuRepository)
		wantErr   error
	}{
		{
			name: "existing category",
			setupMock: func(repo *mocks.MenuRepository) {
				repo.On("GetCategory", mock.Anything, "c1").Return(&domain.Category{ID: "c1", Name: "Mains"}, nil).Once()
				repo.On("CreateMenuItem", mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "unknown category",
			setupMock: func(repo *mocks.MenuRepository) {
				repo.On("GetCategory", mock.Anything, "c1").Return(nil, domain.NotFound(domain.MsgCategoryNotFound)).Once()
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewMenuRepository(t)
			testCase.setupMock(repo)
			item := &domain.MenuItem{Name: "Burger", Price: 9.5, CategoryID: "c1"}

			err := service.NewMenuService(repo).CreateMenuItem(context.Background(), item)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, item.Category)
			assert.Equal(t, "Mains", item.Category.Name)
		})
	}
}

func TestMenuService_Delete_NotFound(t *testing.T) {
	repo := mocks.NewMenuRepository(t)
	repo.On("DeleteCategory", mock.Anything, "c1").Return(int64(0), nil).Once()
	repo.On("DeleteMenuItem", mock.Anything, "m1").Return(int64(0), nil).Once()
	svc := service.NewMenuService(repo)

	assert.ErrorIs(t, svc.DeleteCategory(context.Background(), "c1"), domain.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteMenuItem(context.Background(), "m1"), domain.ErrNotFound)
}
