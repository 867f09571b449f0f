// File: internal/domain/plan.go
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrainingPlan is a user-composed schedule of guides, each step pinned to
// a day offset from the plan's start.
type TrainingPlan struct {
	ID        string             `json:"id" gorm:"primarykey;size:36"`
	UserID    uint               `json:"user_id" gorm:"index;not null"`
	Title     string             `json:"title" gorm:"not null"`
	Steps     []TrainingPlanStep `json:"steps" gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type TrainingPlanStep struct {
	ID        string         `json:"id" gorm:"primarykey;size:36"`
	PlanID    string         `json:"plan_id" gorm:"index;size:36;not null"`
	GuideID   string         `json:"guide_id" gorm:"size:36;not null"`
	DayOffset int            `json:"day_offset" gorm:"not null"`
	Guide     *TrainingGuide `json:"guide,omitempty" gorm:"foreignKey:GuideID"`
	CreatedAt time.Time      `json:"created_at"`
}

func (p *TrainingPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (s *TrainingPlanStep) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (p *TrainingPlan) IsValid() error {
	if len(strings.TrimSpace(p.Title)) < 3 {
		return errors.New("plan title must be at least 3 characters")
	}
	if len(p.Steps) == 0 {
		return errors.New("plan must include at least one guide")
	}
	for _, step := range p.Steps {
		if step.GuideID == "" {
			return errors.New("plan step is missing a guide")
		}
		if step.DayOffset < 0 {
			return errors.New("plan step day offset must be a positive number")
		}
	}
	return nil
}
