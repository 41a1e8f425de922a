package db_models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Feedback is a rating left for a generated plan.
type Feedback struct {
	BaseModel
	Rating     int            `gorm:"type:int;not null;check:rating >= 1 AND rating <= 5"`
	Comment    string         `gorm:"type:text;not null"`
	Route      pq.StringArray `gorm:"type:text[]"`
	Places     pq.StringArray `gorm:"type:text[]"`
	Conditions datatypes.JSON `gorm:"type:jsonb"`
}

func (Feedback) TableName() string { return "plan_feedback" }
