package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskAssigned   TaskStatus = "assigned"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCanceled   TaskStatus = "canceled"
	TaskDisputed   TaskStatus = "disputed"
)

type BudgetType string

const (
	BudgetFixed  BudgetType = "fixed"
	BudgetHourly BudgetType = "hourly"
)

type Task struct {
	ID               int64           `json:"id" gorm:"primaryKey"`
	ClientID         int64           `json:"client_id" gorm:"not null;index"`
	CategoryID       int64           `json:"category_id" gorm:"not null"`
	Title            string          `json:"title" gorm:"size:255;not null"`
	Description      string          `json:"description" gorm:"type:text"`
	BudgetType       BudgetType      `json:"budget_type" gorm:"size:20;not null"`
	BudgetAmount     decimal.Decimal `json:"budget_amount" gorm:"type:decimal(12,2);not null"`
	Status           TaskStatus      `json:"status" gorm:"size:50;not null;default:open"`
	AssignedTaskerID *int64          `json:"assigned_tasker_id,omitempty"`
	PreferredDate    *time.Time      `json:"preferred_date,omitempty"`
	Deadline         *time.Time      `json:"deadline,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Client         *User     `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Category       *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	AssignedTasker *User     `json:"assigned_tasker,omitempty" gorm:"foreignKey:AssignedTaskerID"`
	Skills         []Skill   `json:"skills,omitempty" gorm:"many2many:task_skills"`
	Bids           []Bid     `json:"bids,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

type Category struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}

type Skill struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
}

// TaskerSkill is the tasker side of the skills join with a proficiency level.
type TaskerSkill struct {
	UserID      int64  `json:"user_id" gorm:"primaryKey"`
	SkillID     int64  `json:"skill_id" gorm:"primaryKey"`
	Proficiency string `json:"proficiency" gorm:"size:20;default:intermediate"`
}

func (TaskerSkill) TableName() string { return "tasker_skills" }
