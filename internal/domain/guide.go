// File: internal/domain/guide.go
package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// TrainingGuide is an authored dog-training article. The chat flow only
// reads it; authoring and seeding happen elsewhere.
type TrainingGuide struct {
	ID        string    `json:"id" gorm:"primarykey;size:36"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	Title     string    `json:"title" gorm:"not null"`
	Summary   string    `json:"summary"`
	ContentMd string    `json:"content_md" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *TrainingGuide) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// IsValid checks authoring invariants before a guide is stored.
func (g *TrainingGuide) IsValid() error {
	if g.Title == "" {
		return errors.New("guide title is required")
	}
	if !slugRegex.MatchString(g.Slug) {
		return errors.New("guide slug must be lowercase URL-safe words separated by hyphens")
	}
	return nil
}
