package service_test

import (
	"context"

	"GroceryWise/internal/model"
	"GroceryWise/internal/repo"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	return m.Called(ctx, id, hashedPassword).Error(0)
}
func (m *mockUserRepo) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockUserRepo) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockGroceryRepo struct{ mock.Mock }

func (m *mockGroceryRepo) Create(ctx context.Context, item *model.GroceryItem) error {
	return m.Called(ctx, item).Error(0)
}
func (m *mockGroceryRepo) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.GroceryItem, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if v, ok := args.Get(0).([]model.GroceryItem); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGroceryRepo) GetByID(ctx context.Context, id int64) (*model.GroceryItem, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.GroceryItem); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGroceryRepo) Update(ctx context.Context, id int64, updates map[string]any) (*model.GroceryItem, error) {
	args := m.Called(ctx, id, updates)
	if v, ok := args.Get(0).(*model.GroceryItem); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGroceryRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.GroceryRepository = (*mockGroceryRepo)(nil)

func ptr[T any](v T) *T { return &v }
