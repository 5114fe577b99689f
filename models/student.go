package models

import "time"

// Student represents the students table (the student directory this
// application reads identity and affiliation from).
type Student struct {
	StudentID   uint       `gorm:"primaryKey;column:student_id" json:"student_id"`
	StudentCode string     `gorm:"column:student_code" json:"student_code"`
	FirstName   string     `gorm:"column:first_name" json:"first_name"`
	LastName    string     `gorm:"column:last_name" json:"last_name"`
	Email       *string    `gorm:"column:email" json:"email,omitempty"`
	Affiliation string     `gorm:"column:affiliation" json:"affiliation"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name for Student
func (Student) TableName() string {
	return "students"
}
