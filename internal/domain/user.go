package domain

import "time"

type Role string

const (
	RoleClient Role = "client"
	RoleTasker Role = "tasker"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Role         Role      `json:"role" gorm:"size:20;not null"`
	Phone        string    `json:"phone,omitempty" gorm:"size:50"`
	Bio          string    `json:"bio,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Skills []Skill `json:"skills,omitempty" gorm:"many2many:tasker_skills"`
}

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleTasker, RoleAdmin:
		return true
	}
	return false
}

func (u *User) IsClient() bool { return u.Role == RoleClient }
func (u *User) IsTasker() bool { return u.Role == RoleTasker }
func (u *User) IsAdmin() bool  { return u.Role == RoleAdmin }
