package task

import "time"

type CreateTaskRequest struct {
	Title         string     `json:"title" binding:"required,max=255"`
	Description   string     `json:"description" binding:"max=5000"`
	CategoryID    int64      `json:"category_id" binding:"required"`
	BudgetType    string     `json:"budget_type" binding:"required,oneof=fixed hourly"`
	BudgetAmount  string     `json:"budget_amount" binding:"required"`
	PreferredDate *time.Time `json:"preferred_date"`
	Deadline      *time.Time `json:"deadline"`
	SkillIDs      []int64    `json:"skill_ids"`
}
