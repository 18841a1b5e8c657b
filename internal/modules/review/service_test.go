package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"taskmarket/internal/domain"
	"taskmarket/internal/repository"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if rv != nil {
		rv.ID = 31 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReviewRepository) ListForUser(ctx context.Context, revieweeID int64, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, revieweeID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) RatingForUser(ctx context.Context, revieweeID int64) (*repository.RatingSummary, error) {
	args := m.Called(ctx, revieweeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RatingSummary), args.Error(1)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyReviewReceived(ctx context.Context, userID, reviewID int64) error {
	args := m.Called(ctx, userID, reviewID)
	return args.Error(0)
}

func completedBooking() *domain.Booking {
	return &domain.Booking{
		ID:       7,
		ClientID: 1,
		TaskerID: 2,
		Status:   domain.BookingCompleted,
	}
}

func TestService_Create_ClientReviewsTasker(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)
	mockNotifs := new(MockNotificationSender)

	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(completedBooking(), nil)
	mockReviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("NotifyReviewReceived", mock.Anything, int64(2), int64(31)).Return(nil)

	service := NewService(mockReviews, mockBookings, mockNotifs)

	rv, err := service.Create(context.Background(), 1, CreateReviewRequest{
		BookingID: 7,
		Rating:    5,
		Comment:   "Great work",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), rv.ReviewerID)
	assert.Equal(t, int64(2), rv.RevieweeID)
	mockNotifs.AssertExpectations(t)
}

func TestService_Create_TaskerReviewsClient(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)
	mockNotifs := new(MockNotificationSender)

	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(completedBooking(), nil)
	mockReviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("NotifyReviewReceived", mock.Anything, int64(1), int64(31)).Return(nil)

	service := NewService(mockReviews, mockBookings, mockNotifs)

	rv, err := service.Create(context.Background(), 2, CreateReviewRequest{
		BookingID: 7,
		Rating:    4,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), rv.ReviewerID)
	assert.Equal(t, int64(1), rv.RevieweeID)
}

func TestService_Create_NotAParty(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)

	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(completedBooking(), nil)

	service := NewService(mockReviews, mockBookings, new(MockNotificationSender))

	_, err := service.Create(context.Background(), 99, CreateReviewRequest{
		BookingID: 7,
		Rating:    5,
	})

	assert.ErrorIs(t, err, ErrNotBookingParty)
	mockReviews.AssertNotCalled(t, "Create")
}

func TestService_Create_BookingNotCompleted(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)

	b := completedBooking()
	b.Status = domain.BookingInProgress
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)

	service := NewService(mockReviews, mockBookings, new(MockNotificationSender))

	_, err := service.Create(context.Background(), 1, CreateReviewRequest{
		BookingID: 7,
		Rating:    5,
	})

	assert.ErrorIs(t, err, ErrBookingNotDone)
}

func TestService_Create_Duplicate(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)

	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(completedBooking(), nil)
	mockReviews.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("constraint failed: UNIQUE constraint failed: reviews.booking_id, reviews.reviewer_id"))

	service := NewService(mockReviews, mockBookings, new(MockNotificationSender))

	_, err := service.Create(context.Background(), 1, CreateReviewRequest{
		BookingID: 7,
		Rating:    3,
	})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestService_Create_RatingBounds(t *testing.T) {
	service := NewService(new(MockReviewRepository), new(MockBookingReader), new(MockNotificationSender))

	for _, rating := range []int{0, 6, -1} {
		_, err := service.Create(context.Background(), 1, CreateReviewRequest{
			BookingID: 7,
			Rating:    rating,
		})
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestService_Create_BookingNotFound(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockBookings := new(MockBookingReader)

	mockBookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockReviews, mockBookings, new(MockNotificationSender))

	_, err := service.Create(context.Background(), 1, CreateReviewRequest{
		BookingID: 404,
		Rating:    5,
	})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_ListForUser_ClampsPaging(t *testing.T) {
	mockReviews := new(MockReviewRepository)

	mockReviews.On("ListForUser", mock.Anything, int64(2), 10, 0).Return([]domain.Review{}, nil)

	service := NewService(mockReviews, new(MockBookingReader), new(MockNotificationSender))

	_, err := service.ListForUser(context.Background(), 2, -5, -1)

	assert.NoError(t, err)
	mockReviews.AssertExpectations(t)
}
