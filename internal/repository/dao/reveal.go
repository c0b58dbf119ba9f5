package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrRevealNotFound = errors.New("reveal not set")

const revealID = 1

// Reveal is a singleton row holding the announced gender.
type Reveal struct {
	ID         uint      `gorm:"primaryKey"`
	Gender     string    `gorm:"not null"`
	RevealedAt time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

type RevealDAO struct {
	db *gorm.DB
}

func NewRevealDAO(db *gorm.DB) *RevealDAO {
	return &RevealDAO{
		db: db,
	}
}

func (d *RevealDAO) Upsert(ctx context.Context, reveal Reveal) (Reveal, error) {
	reveal.ID = revealID

	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"gender", "revealed_at", "updated_at"}),
		}).
		Create(&reveal)
	if result.Error != nil {
		return Reveal{}, result.Error
	}

	return d.Find(ctx)
}

func (d *RevealDAO) Find(ctx context.Context) (Reveal, error) {
	var reveal Reveal

	result := d.db.WithContext(ctx).First(&reveal, revealID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reveal{}, ErrRevealNotFound
		}

		return Reveal{}, result.Error
	}

	return reveal, nil
}
