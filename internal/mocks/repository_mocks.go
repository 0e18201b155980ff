// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUserRepositoryInterface is a mock of repository.UserRepositoryInterface.
type MockUserRepositoryInterface struct {
	mock.Mock
}

// NewMockUserRepositoryInterface creates a mock that asserts its expectations on cleanup.
func NewMockUserRepositoryInterface(t testingT) *MockUserRepositoryInterface {
	m := &MockUserRepositoryInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepositoryInterface) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepositoryInterface) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepositoryInterface) FindByEmailForAuth(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepositoryInterface) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepositoryInterface) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepositoryInterface) FindByIDMinimal(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepositoryInterface) AssignFarm(ctx context.Context, id primitive.ObjectID, farmID string) (bool, error) {
	args := m.Called(ctx, id, farmID)
	return args.Bool(0), args.Error(1)
}

// MockRoleRepositoryInterface is a mock of repository.RoleRepositoryInterface.
type MockRoleRepositoryInterface struct {
	mock.Mock
}

// NewMockRoleRepositoryInterface creates a mock that asserts its expectations on cleanup.
func NewMockRoleRepositoryInterface(t testingT) *MockRoleRepositoryInterface {
	m := &MockRoleRepositoryInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRoleRepositoryInterface) Create(ctx context.Context, role *model.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepositoryInterface) FindByName(ctx context.Context, name string) (*model.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepositoryInterface) FindByIDs(ctx context.Context, ids []string) ([]*model.Role, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Role), args.Error(1)
}

// MockPermissionRepositoryInterface is a mock of repository.PermissionRepositoryInterface.
type MockPermissionRepositoryInterface struct {
	mock.Mock
}

// NewMockPermissionRepositoryInterface creates a mock that asserts its expectations on cleanup.
func NewMockPermissionRepositoryInterface(t testingT) *MockPermissionRepositoryInterface {
	m := &MockPermissionRepositoryInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPermissionRepositoryInterface) Create(ctx context.Context, permission *model.Permission) error {
	args := m.Called(ctx, permission)
	return args.Error(0)
}

func (m *MockPermissionRepositoryInterface) FindByResourceAndAction(ctx context.Context, resource, action string) (*model.Permission, error) {
	args := m.Called(ctx, resource, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Permission), args.Error(1)
}

// MockTokenRepositoryInterface is a mock of repository.TokenRepositoryInterface.
type MockTokenRepositoryInterface struct {
	mock.Mock
}

// NewMockTokenRepositoryInterface creates a mock that asserts its expectations on cleanup.
func NewMockTokenRepositoryInterface(t testingT) *MockTokenRepositoryInterface {
	m := &MockTokenRepositoryInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTokenRepositoryInterface) Create(ctx context.Context, token *model.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) FindByToken(ctx context.Context, tokenString string) (*model.Token, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}

func (m *MockTokenRepositoryInterface) DeleteByToken(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) DeleteByUserID(ctx context.Context, userID primitive.ObjectID, tokenType string) error {
	args := m.Called(ctx, userID, tokenType)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) IsBlacklisted(ctx context.Context, tokenString string) (bool, error) {
	args := m.Called(ctx, tokenString)
	return args.Bool(0), args.Error(1)
}


// MockLogsRepository is a mock of repository.LogsRepositoryInterface.
type MockLogsRepository struct {
	mock.Mock
}

// NewMockLogsRepository creates a mock that asserts its expectations on cleanup.
func NewMockLogsRepository(t testingT) *MockLogsRepository {
	m := &MockLogsRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLogsRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLogsRepository) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockLogsRepository) ListAudit(ctx context.Context, farmID string, filter model.AuditFilter) ([]*model.LogEntry, error) {
	args := m.Called(ctx, farmID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LogEntry), args.Error(1)
}
