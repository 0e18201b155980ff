// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/service"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockAuthService is a mock of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

// NewMockAuthService creates a mock that asserts its expectations on cleanup.
func NewMockAuthService(t testingT) *MockAuthService {
	m := &MockAuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.User, error) {
	args := m.Called(ctx, email, password)
	var pair *dto.TokenPair
	var user *model.User
	if v := args.Get(0); v != nil {
		pair = v.(*dto.TokenPair)
	}
	if v := args.Get(1); v != nil {
		user = v.(*model.User)
	}
	return pair, user, args.Error(2)
}

func (m *MockAuthService) Register(ctx context.Context, email, username, password, name string) (*dto.TokenPair, *model.User, error) {
	args := m.Called(ctx, email, username, password, name)
	var pair *dto.TokenPair
	var user *model.User
	if v := args.Get(0); v != nil {
		pair = v.(*dto.TokenPair)
	}
	if v := args.Get(1); v != nil {
		user = v.(*model.User)
	}
	return pair, user, args.Error(2)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPair), args.Error(1)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Claims), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	args := m.Called(ctx, accessToken, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ReissueTokens(ctx context.Context, userID primitive.ObjectID) (*dto.TokenPair, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPair), args.Error(1)
}

// MockLoggingService is a mock of service.LoggingService.
type MockLoggingService struct {
	mock.Mock
}

// NewMockLoggingService creates a mock that asserts its expectations on cleanup.
func NewMockLoggingService(t testingT) *MockLoggingService {
	m := &MockLoggingService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLoggingService) AuditTrail(ctx context.Context, farmID string, filter model.AuditFilter) ([]*model.LogEntry, error) {
	args := m.Called(ctx, farmID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LogEntry), args.Error(1)
}

// MockRoleService is a mock of service.RoleService.
type MockRoleService struct {
	mock.Mock
}

// NewMockRoleService creates a mock that asserts its expectations on cleanup.
func NewMockRoleService(t testingT) *MockRoleService {
	m := &MockRoleService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRoleService) Permissions(ctx context.Context, roleIDs []string) (model.PermissionSet, error) {
	args := m.Called(ctx, roleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.PermissionSet), args.Error(1)
}

// MockPermissionService is a mock of service.PermissionService.
type MockPermissionService struct {
	mock.Mock
}

// NewMockPermissionService creates a mock that asserts its expectations on cleanup.
func NewMockPermissionService(t testingT) *MockPermissionService {
	m := &MockPermissionService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPermissionService) PermissionID(ctx context.Context, resource, action string) string {
	args := m.Called(ctx, resource, action)
	return args.String(0)
}

// MockAllocationService is a mock of service.AllocationService.
type MockAllocationService struct {
	mock.Mock
}

// NewMockAllocationService creates a mock that asserts its expectations on cleanup.
func NewMockAllocationService(t testingT) *MockAllocationService {
	m := &MockAllocationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAllocationService) Allocate(ctx context.Context, farmID string, in service.AllocateInput) (*model.Allocation, error) {
	args := m.Called(ctx, farmID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Allocation), args.Error(1)
}

func (m *MockAllocationService) Transfer(ctx context.Context, farmID string, in service.TransferInput) (*model.Allocation, *model.Allocation, error) {
	args := m.Called(ctx, farmID, in)
	var from, to *model.Allocation
	if v := args.Get(0); v != nil {
		from = v.(*model.Allocation)
	}
	if v := args.Get(1); v != nil {
		to = v.(*model.Allocation)
	}
	return from, to, args.Error(2)
}

func (m *MockAllocationService) Update(ctx context.Context, farmID, allocationID string, quantity int) (*model.Allocation, error) {
	args := m.Called(ctx, farmID, allocationID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Allocation), args.Error(1)
}

func (m *MockAllocationService) Get(ctx context.Context, farmID, allocationID string) (*model.Allocation, error) {
	args := m.Called(ctx, farmID, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Allocation), args.Error(1)
}

func (m *MockAllocationService) ListByBatch(ctx context.Context, farmID, batchID string) ([]*model.Allocation, error) {
	args := m.Called(ctx, farmID, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Allocation), args.Error(1)
}

func (m *MockAllocationService) ListByHouse(ctx context.Context, farmID, houseID string) ([]*model.Allocation, error) {
	args := m.Called(ctx, farmID, houseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Allocation), args.Error(1)
}
