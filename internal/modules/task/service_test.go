package task

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"taskmarket/internal/domain"
)

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t *domain.Task) error {
	args := m.Called(ctx, t)
	if t != nil {
		t.ID = 5 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListOpen(ctx context.Context, limit, offset int) ([]domain.Task, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.Task, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) UpdateStatusFrom(ctx context.Context, id int64, from []domain.TaskStatus, to domain.TaskStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) ReplaceSkills(ctx context.Context, t *domain.Task, skillIDs []int64) error {
	args := m.Called(ctx, t, skillIDs)
	return args.Error(0)
}

func TestService_Create_Success(t *testing.T) {
	mockTasks := new(MockTaskRepository)

	mockTasks.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockTasks.On("ReplaceSkills", mock.Anything, mock.Anything, []int64{1, 2}).Return(nil)

	service := NewService(mockTasks)

	out, err := service.Create(context.Background(), 1, CreateTaskRequest{
		Title:        "Mount a TV",
		CategoryID:   3,
		BudgetType:   "fixed",
		BudgetAmount: "50000",
		SkillIDs:     []int64{1, 2},
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.TaskOpen, out.Status)
	assert.True(t, out.BudgetAmount.Equal(decimal.NewFromInt(50000)))
	mockTasks.AssertExpectations(t)
}

func TestService_Create_BadAmount(t *testing.T) {
	service := NewService(new(MockTaskRepository))

	for _, amount := range []string{"", "abc", "-1"} {
		_, err := service.Create(context.Background(), 1, CreateTaskRequest{
			Title:        "Mount a TV",
			CategoryID:   3,
			BudgetType:   "fixed",
			BudgetAmount: amount,
		})
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestService_Create_DeadlineBeforePreferredDate(t *testing.T) {
	service := NewService(new(MockTaskRepository))

	preferred := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	deadline := preferred.AddDate(0, 0, -1)

	_, err := service.Create(context.Background(), 1, CreateTaskRequest{
		Title:         "Mount a TV",
		CategoryID:    3,
		BudgetType:    "fixed",
		BudgetAmount:  "50000",
		PreferredDate: &preferred,
		Deadline:      &deadline,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Cancel_OwnerOnly(t *testing.T) {
	mockTasks := new(MockTaskRepository)

	mockTasks.On("GetByID", mock.Anything, int64(5)).Return(&domain.Task{
		ID:       5,
		ClientID: 1,
		Status:   domain.TaskOpen,
	}, nil)

	service := NewService(mockTasks)

	_, err := service.Cancel(context.Background(), 5, 99)

	assert.ErrorIs(t, err, ErrForbidden)
	mockTasks.AssertNotCalled(t, "UpdateStatusFrom")
}

func TestService_Cancel_FromCompleted(t *testing.T) {
	mockTasks := new(MockTaskRepository)

	mockTasks.On("GetByID", mock.Anything, int64(5)).Return(&domain.Task{
		ID:       5,
		ClientID: 1,
		Status:   domain.TaskCompleted,
	}, nil)

	service := NewService(mockTasks)

	_, err := service.Cancel(context.Background(), 5, 1)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestService_Cancel_Success(t *testing.T) {
	mockTasks := new(MockTaskRepository)

	open := &domain.Task{ID: 5, ClientID: 1, Status: domain.TaskOpen}
	canceled := &domain.Task{ID: 5, ClientID: 1, Status: domain.TaskCanceled}

	mockTasks.On("GetByID", mock.Anything, int64(5)).Return(open, nil).Once()
	mockTasks.On("UpdateStatusFrom", mock.Anything, int64(5), mock.Anything, domain.TaskCanceled).Return(true, nil)
	mockTasks.On("GetByID", mock.Anything, int64(5)).Return(canceled, nil)

	service := NewService(mockTasks)

	out, err := service.Cancel(context.Background(), 5, 1)

	assert.NoError(t, err)
	assert.Equal(t, domain.TaskCanceled, out.Status)
}

func TestService_Get_NotFound(t *testing.T) {
	mockTasks := new(MockTaskRepository)

	mockTasks.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockTasks)

	_, err := service.Get(context.Background(), 404)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ListOpen_ClampsPaging(t *testing.T) {
	mockTasks := new(MockTaskRepository)

	mockTasks.On("ListOpen", mock.Anything, 20, 0).Return([]domain.Task{}, nil)

	service := NewService(mockTasks)

	_, err := service.ListOpen(context.Background(), -3, -10)

	assert.NoError(t, err)
	mockTasks.AssertExpectations(t)
}
