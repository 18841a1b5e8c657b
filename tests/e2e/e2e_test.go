package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskmarket/internal/database"
	"taskmarket/internal/domain"
	"taskmarket/internal/middleware"
	"taskmarket/internal/modules/auth"
	"taskmarket/internal/modules/bid"
	"taskmarket/internal/modules/booking"
	"taskmarket/internal/modules/message"
	"taskmarket/internal/modules/notification"
	"taskmarket/internal/modules/payment"
	"taskmarket/internal/modules/review"
	"taskmarket/internal/modules/task"
	jwtsvc "taskmarket/internal/pkg/jwt"
	"taskmarket/internal/repository"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	bidRepo := repository.NewBidRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	taskHandler := task.NewHandler(task.NewService(taskRepo))
	bidHandler := bid.NewHandler(bid.NewService(bidRepo, taskRepo, notificationService))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, taskRepo, notificationService))
	paymentHandler := payment.NewHandler(payment.NewService(paymentRepo, bookingRepo, notificationService))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, bookingRepo, notificationService))
	messageHandler := message.NewHandler(message.NewService(messageRepo, userRepo, bookingRepo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterRoutes(v1)
	reviewHandler.RegisterRoutes(v1, nil)

	protected := v1.Group("/")
	protected.Use(middleware.Auth(jwtService))
	{
		taskHandler.RegisterRoutes(protected)
		bidHandler.RegisterRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
		paymentHandler.RegisterRoutes(protected)
		reviewHandler.RegisterRoutes(nil, protected)
		notificationHandler.RegisterRoutes(protected)
		messageHandler.RegisterRoutes(protected)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.Auth(jwtService), middleware.AdminOnly())
	{
		bookingHandler.RegisterAdminRoutes(admin)
	}

	// direct inserts for data not reachable through the API
	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	require.NoError(t, db.Create(&domain.User{
		Email:        "admin@test.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Name:         "Admin User",
	}).Error, "Failed to create admin user")

	require.NoError(t, db.Create(&domain.Category{Name: "Handyman"}).Error,
		"Failed to create category")

	return &E2ETestSuite{router: r, db: db, jwtService: jwtService}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Failed to parse response, status %d body %s", w.Code, w.Body.String())
	return &resp
}

func (s *E2ETestSuite) register(t *testing.T, email, role string) string {
	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"name":     "Test " + role,
		"email":    email,
		"password": "Password123!",
		"role":     role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	return resp.Data["token"].(string)
}

func (s *E2ETestSuite) login(t *testing.T, email string) string {
	w := s.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": "Password123!",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	return resp.Data["token"].(string)
}

func id(data map[string]interface{}, key string) int64 {
	if key == "" {
		return int64(data["id"].(float64))
	}
	nested := data[key].(map[string]interface{})
	return int64(nested["id"].(float64))
}

// Full happy path: open task, bid, accept, work, pay, review.
func TestLifecycle_HappyPath(t *testing.T) {
	suite := setupTestSuite(t)

	clientToken := suite.register(t, "client@test.com", "client")
	taskerToken := suite.register(t, "tasker@test.com", "tasker")

	// client posts a fixed-budget task
	w := suite.makeRequest("POST", "/api/v1/tasks", map[string]interface{}{
		"title":         "Mount a TV bracket",
		"description":   "55 inch, concrete wall",
		"category_id":   1,
		"budget_type":   "fixed",
		"budget_amount": "50000",
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	taskID := id(parseResponse(t, w).Data, "")

	// task shows up in the open listing
	w = suite.makeRequest("GET", "/api/v1/tasks", nil, taskerToken)
	require.Equal(t, http.StatusOK, w.Code)

	// tasker bids below budget
	w = suite.makeRequest("POST", "/api/v1/bids", map[string]interface{}{
		"task_id":    taskID,
		"bid_amount": "45000",
		"message":    "Can do it tomorrow morning",
	}, taskerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bidID := id(parseResponse(t, w).Data, "")

	// duplicate bid on the same task is rejected
	w = suite.makeRequest("POST", "/api/v1/bids", map[string]interface{}{
		"task_id":    taskID,
		"bid_amount": "44000",
	}, taskerToken)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// client accepts; booking is created atomically
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bids/%d/accept", bidID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	acceptData := parseResponse(t, w).Data
	bookingID := id(acceptData, "booking")

	bookingData := acceptData["booking"].(map[string]interface{})
	assert.Equal(t, "scheduled", bookingData["status"])
	assert.Equal(t, "pending", bookingData["payment_status"])

	// the task left the open pool
	w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/tasks/%d", taskID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "assigned", parseResponse(t, w).Data["status"])

	// reviewing before completion is refused
	w = suite.makeRequest("POST", "/api/v1/reviews", map[string]interface{}{
		"booking_id": bookingID,
		"rating":     5,
	}, clientToken)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// tasker starts the work
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/in-progress", bookingID), nil, taskerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "in_progress", parseResponse(t, w).Data["status"])

	// and finishes it
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/complete", bookingID), nil, taskerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	completeData := parseResponse(t, w).Data
	assert.Equal(t, "completed", completeData["status"])
	assert.NotNil(t, completeData["start_time"])
	assert.NotNil(t, completeData["end_time"])
	assert.Equal(t, "45000", completeData["total_amount"])

	// canceling a completed booking is refused
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingID), nil, clientToken)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// client records a payment and settles it
	w = suite.makeRequest("POST", "/api/v1/payments", map[string]interface{}{
		"booking_id":     bookingID,
		"amount":         "45000",
		"currency":       "USD",
		"payment_method": "credit_card",
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	paymentID := id(parseResponse(t, w).Data, "")

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/payments/%d/complete", paymentID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "completed", parseResponse(t, w).Data["status"])

	// and marks the booking paid
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/pay", bookingID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "paid", parseResponse(t, w).Data["payment_status"])

	// marking paid twice is refused
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/pay", bookingID), nil, clientToken)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// both parties review each other, once each
	w = suite.makeRequest("POST", "/api/v1/reviews", map[string]interface{}{
		"booking_id": bookingID,
		"rating":     5,
		"comment":    "Fast and careful",
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = suite.makeRequest("POST", "/api/v1/reviews", map[string]interface{}{
		"booking_id": bookingID,
		"rating":     4,
	}, taskerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = suite.makeRequest("POST", "/api/v1/reviews", map[string]interface{}{
		"booking_id": bookingID,
		"rating":     1,
	}, clientToken)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// tasker rating is public
	var tasker domain.User
	require.NoError(t, suite.db.Where("email = ?", "tasker@test.com").First(&tasker).Error)

	w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/users/%d/rating", tasker.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	rating := parseResponse(t, w).Data
	assert.InDelta(t, 5.0, rating["average_rating"].(float64), 0.001)
	assert.EqualValues(t, 1, rating["review_count"])

	// tasker got lifecycle notifications along the way
	w = suite.makeRequest("GET", "/api/v1/notifications", nil, taskerToken)
	require.Equal(t, http.StatusOK, w.Code)
}

// Two pending bids, one acceptance: the second accept must fail and the task
// must stay assigned to the first winner.
func TestLifecycle_SecondAcceptConflicts(t *testing.T) {
	suite := setupTestSuite(t)

	clientToken := suite.register(t, "client@test.com", "client")
	taskerAToken := suite.register(t, "taskerA@test.com", "tasker")
	taskerBToken := suite.register(t, "taskerB@test.com", "tasker")

	w := suite.makeRequest("POST", "/api/v1/tasks", map[string]interface{}{
		"title":         "Assemble a wardrobe",
		"category_id":   1,
		"budget_type":   "hourly",
		"budget_amount": "20000",
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	taskID := id(parseResponse(t, w).Data, "")

	w = suite.makeRequest("POST", "/api/v1/bids", map[string]interface{}{
		"task_id":    taskID,
		"bid_amount": "18000",
	}, taskerAToken)
	require.Equal(t, http.StatusCreated, w.Code)
	bidA := id(parseResponse(t, w).Data, "")

	w = suite.makeRequest("POST", "/api/v1/bids", map[string]interface{}{
		"task_id":    taskID,
		"bid_amount": "19000",
	}, taskerBToken)
	require.Equal(t, http.StatusCreated, w.Code)
	bidB := id(parseResponse(t, w).Data, "")

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bids/%d/accept", bidA), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// second accept loses: the task is no longer open
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bids/%d/accept", bidB), nil, clientToken)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// the losing bid is still pending and can be withdrawn by its tasker
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bids/%d/withdraw", bidB), nil, taskerBToken)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// withdrawing again is refused
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bids/%d/withdraw", bidB), nil, taskerBToken)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// no tasker may accept bids
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bids/%d/accept", bidB), nil, taskerBToken)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}

// Admin dispute and payment refund cascade.
func TestLifecycle_DisputeAndRefund(t *testing.T) {
	suite := setupTestSuite(t)

	clientToken := suite.register(t, "client@test.com", "client")
	taskerToken := suite.register(t, "tasker@test.com", "tasker")
	adminToken := suite.login(t, "admin@test.com")

	w := suite.makeRequest("POST", "/api/v1/tasks", map[string]interface{}{
		"title":         "Fix a leaking tap",
		"category_id":   1,
		"budget_type":   "fixed",
		"budget_amount": "30000",
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := id(parseResponse(t, w).Data, "")

	w = suite.makeRequest("POST", "/api/v1/bids", map[string]interface{}{
		"task_id":    taskID,
		"bid_amount": "30000",
	}, taskerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	bidID := id(parseResponse(t, w).Data, "")

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bids/%d/accept", bidID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)
	bookingID := id(parseResponse(t, w).Data, "booking")

	// a party cannot dispute through the admin route
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/bookings/%d/dispute", bookingID), nil, clientToken)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// record and settle a payment before the dispute
	w = suite.makeRequest("POST", "/api/v1/payments", map[string]interface{}{
		"booking_id":     bookingID,
		"amount":         "30000",
		"currency":       "EUR",
		"payment_method": "bank_transfer",
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code)
	paymentID := id(parseResponse(t, w).Data, "")

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/payments/%d/complete", paymentID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%d/pay", bookingID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)

	// admin disputes the booking
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/bookings/%d/dispute", bookingID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "disputed", parseResponse(t, w).Data["status"])

	// refund flips both the payment and the booking payment axis
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/payments/%d/refund", paymentID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "refunded", parseResponse(t, w).Data["status"])

	w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "refunded", parseResponse(t, w).Data["payment_status"])

	// refunding twice is refused
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/payments/%d/refund", paymentID), nil, adminToken)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// both parties were notified about the dispute
	w = suite.makeRequest("GET", "/api/v1/notifications?unread=true", nil, taskerToken)
	require.Equal(t, http.StatusOK, w.Code)
}

// Role boundaries that the middleware and handlers enforce.
func TestLifecycle_RoleBoundaries(t *testing.T) {
	suite := setupTestSuite(t)

	clientToken := suite.register(t, "client@test.com", "client")
	taskerToken := suite.register(t, "tasker@test.com", "tasker")

	// taskers cannot post tasks
	w := suite.makeRequest("POST", "/api/v1/tasks", map[string]interface{}{
		"title":         "Paint the fence",
		"category_id":   1,
		"budget_type":   "fixed",
		"budget_amount": "10000",
	}, taskerToken)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// clients cannot bid
	w = suite.makeRequest("POST", "/api/v1/tasks", map[string]interface{}{
		"title":         "Paint the fence",
		"category_id":   1,
		"budget_type":   "fixed",
		"budget_amount": "10000",
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := id(parseResponse(t, w).Data, "")

	w = suite.makeRequest("POST", "/api/v1/bids", map[string]interface{}{
		"task_id":    taskID,
		"bid_amount": "9000",
	}, clientToken)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// anonymous requests are rejected
	w = suite.makeRequest("GET", "/api/v1/bookings", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// registering with the admin role is refused
	w = suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"name":     "Mallory",
		"email":    "mallory@test.com",
		"password": "Password123!",
		"role":     "admin",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

// Direct messages: send, read both sides of the conversation, mark read.
func TestLifecycle_Messaging(t *testing.T) {
	suite := setupTestSuite(t)

	clientToken := suite.register(t, "client@test.com", "client")
	taskerToken := suite.register(t, "tasker@test.com", "tasker")

	var taskerUser, clientUser domain.User
	require.NoError(t, suite.db.Where("email = ?", "tasker@test.com").First(&taskerUser).Error)
	require.NoError(t, suite.db.Where("email = ?", "client@test.com").First(&clientUser).Error)
	taskerID, clientID := taskerUser.ID, clientUser.ID

	// client opens the conversation
	w := suite.makeRequest("POST", "/api/v1/messages", map[string]interface{}{
		"receiver_id": taskerID,
		"body":        "When can you start?",
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	messageID := id(parseResponse(t, w).Data, "")

	// tasker replies
	w = suite.makeRequest("POST", "/api/v1/messages", map[string]interface{}{
		"receiver_id": clientID,
		"body":        "Tomorrow morning works",
	}, taskerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// messaging a user who does not exist fails
	w = suite.makeRequest("POST", "/api/v1/messages", map[string]interface{}{
		"receiver_id": 99999,
		"body":        "Anyone there?",
	}, clientToken)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	// messaging yourself fails
	w = suite.makeRequest("POST", "/api/v1/messages", map[string]interface{}{
		"receiver_id": clientID,
		"body":        "Note to self",
	}, clientToken)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// both sides see the same conversation in send order
	type listResponse struct {
		Success bool                     `json:"success"`
		Data    []map[string]interface{} `json:"data"`
	}
	w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/messages/conversations/%d", taskerID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)
	var conv listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conv))
	require.Len(t, conv.Data, 2)
	assert.Equal(t, "When can you start?", conv.Data[0]["body"])
	assert.Equal(t, "Tomorrow morning works", conv.Data[1]["body"])

	w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/messages/conversations/%d", clientID), nil, taskerToken)
	require.Equal(t, http.StatusOK, w.Code)

	// the tasker has one unread message until it is marked read
	w = suite.makeRequest("GET", "/api/v1/messages/unread", nil, taskerToken)
	require.Equal(t, http.StatusOK, w.Code)
	var unread listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unread))
	require.Len(t, unread.Data, 1)

	// only the receiver can mark a message read
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/messages/%d/read", messageID), nil, clientToken)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/messages/%d/read", messageID), nil, taskerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// marking it again stays OK
	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/messages/%d/read", messageID), nil, taskerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = suite.makeRequest("GET", "/api/v1/messages/unread", nil, taskerToken)
	require.Equal(t, http.StatusOK, w.Code)
	unread = listResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unread))
	assert.Empty(t, unread.Data)
}
