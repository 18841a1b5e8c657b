package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"taskmarket/internal/database"
	"taskmarket/internal/domain"
)

func main() {
	rand.Seed(time.Now().UnixNano())

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "taskmarket.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM bids")
	db.Exec("DELETE FROM task_skills")
	db.Exec("DELETE FROM tasks")
	db.Exec("DELETE FROM tasker_skills")
	db.Exec("DELETE FROM skills")
	db.Exec("DELETE FROM categories")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@taskmarket.io",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@taskmarket.io / admin123")

	clients := []domain.User{}
	clientEmails := []string{"alice@example.com", "bob@example.com", "carol@example.com"}
	for i, email := range clientEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
		client := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleClient,
			Name:         fmt.Sprintf("Client %d", i+1),
			Phone:        fmt.Sprintf("+1 555 010 %04d", i+1),
		}
		db.Create(&client)
		clients = append(clients, client)
	}

	taskers := []domain.User{}
	taskerEmails := []string{"dave@example.com", "erin@example.com", "frank@example.com"}
	for i, email := range taskerEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("tasker123"), bcrypt.DefaultCost)
		tasker := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleTasker,
			Name:         fmt.Sprintf("Tasker %d", i+1),
			Phone:        fmt.Sprintf("+1 555 020 %04d", i+1),
			Bio:          "Available for short-notice jobs.",
		}
		db.Create(&tasker)
		taskers = append(taskers, tasker)
	}

	// ================== CATALOG ==================
	log.Println("Creating categories and skills...")

	categories := []domain.Category{
		{Name: "Cleaning", Description: "Home and office cleaning"},
		{Name: "Moving", Description: "Packing, lifting, transport"},
		{Name: "Handyman", Description: "Repairs and assembly"},
		{Name: "IT Help", Description: "Computer and network support"},
	}
	for i := range categories {
		db.Create(&categories[i])
	}

	skills := []domain.Skill{
		{Name: "deep-cleaning"},
		{Name: "furniture-assembly"},
		{Name: "plumbing"},
		{Name: "heavy-lifting"},
		{Name: "network-setup"},
	}
	for i := range skills {
		db.Create(&skills[i])
	}

	levels := []string{"beginner", "intermediate", "expert"}
	for _, t := range taskers {
		for _, s := range skills {
			if rand.Intn(2) == 0 {
				continue
			}
			db.Create(&domain.TaskerSkill{
				UserID:      t.ID,
				SkillID:     s.ID,
				Proficiency: levels[rand.Intn(len(levels))],
			})
		}
	}

	// ================== TASKS ==================
	log.Println("Creating tasks...")

	preferred := time.Now().AddDate(0, 0, 3)
	deadline := time.Now().AddDate(0, 0, 10)

	openTask := domain.Task{
		ClientID:      clients[0].ID,
		CategoryID:    categories[0].ID,
		Title:         "Deep clean a two-bedroom apartment",
		Description:   "Kitchen and bathrooms included, supplies provided.",
		BudgetType:    domain.BudgetFixed,
		BudgetAmount:  decimal.NewFromInt(120),
		Status:        domain.TaskOpen,
		PreferredDate: &preferred,
		Deadline:      &deadline,
	}
	db.Create(&openTask)
	db.Model(&openTask).Association("Skills").Append(&skills[0])

	hourlyTask := domain.Task{
		ClientID:     clients[1].ID,
		CategoryID:   categories[2].ID,
		Title:        "Assemble flat-pack wardrobe",
		Description:  "Two wardrobes and a bookshelf.",
		BudgetType:   domain.BudgetHourly,
		BudgetAmount: decimal.NewFromInt(35),
		Status:       domain.TaskOpen,
	}
	db.Create(&hourlyTask)
	db.Model(&hourlyTask).Association("Skills").Append(&skills[1])

	for _, t := range taskers[1:] {
		db.Create(&domain.Bid{
			TaskID:    openTask.ID,
			TaskerID:  t.ID,
			BidAmount: decimal.NewFromInt(int64(90 + rand.Intn(40))),
			Message:   "Happy to help, flexible on timing.",
			Status:    domain.BidPending,
		})
	}

	// ================== COMPLETED FLOW ==================
	// A finished lifecycle so listings, ratings and payment history have data.
	log.Println("Creating completed booking flow...")

	doneTask := domain.Task{
		ClientID:         clients[2].ID,
		CategoryID:       categories[3].ID,
		Title:            "Set up home office network",
		Description:      "Router, mesh points, printer.",
		BudgetType:       domain.BudgetFixed,
		BudgetAmount:     decimal.NewFromInt(200),
		Status:           domain.TaskAssigned,
		AssignedTaskerID: &taskers[0].ID,
	}
	db.Create(&doneTask)

	acceptedBid := domain.Bid{
		TaskID:    doneTask.ID,
		TaskerID:  taskers[0].ID,
		BidAmount: decimal.NewFromInt(180),
		Message:   "I do these weekly.",
		Status:    domain.BidAccepted,
	}
	db.Create(&acceptedBid)

	start := time.Now().Add(-26 * time.Hour)
	end := start.Add(150 * time.Minute)
	booking := domain.Booking{
		TaskID:        doneTask.ID,
		TaskerID:      taskers[0].ID,
		ClientID:      clients[2].ID,
		AgreedPrice:   acceptedBid.BidAmount,
		StartTime:     &start,
		EndTime:       &end,
		Status:        domain.BookingCompleted,
		PaymentStatus: domain.BookingPaymentPaid,
	}
	db.Create(&booking)

	txRef := uuid.NewString()
	processed := end.Add(10 * time.Minute)
	db.Create(&domain.Payment{
		BookingID:     booking.ID,
		PayerID:       clients[2].ID,
		PayeeID:       taskers[0].ID,
		Amount:        acceptedBid.BidAmount,
		Currency:      domain.CurrencyUSD,
		PaymentMethod: domain.MethodCreditCard,
		Status:        domain.PaymentStatusCompleted,
		TransactionID: &txRef,
		ProcessedAt:   &processed,
	})

	db.Create(&domain.Review{
		BookingID:  booking.ID,
		ReviewerID: clients[2].ID,
		RevieweeID: taskers[0].ID,
		Rating:     5,
		Comment:    "Fast and tidy, everything works.",
	})

	db.Create(&domain.Notification{
		UserID:  taskers[0].ID,
		Type:    domain.NotifyReviewReceived,
		Message: "You received a new review",
	})

	log.Println("Seed complete.")
	log.Println("Clients:  alice@example.com / client123 (and bob, carol)")
	log.Println("Taskers:  dave@example.com / tasker123 (and erin, frank)")
}
