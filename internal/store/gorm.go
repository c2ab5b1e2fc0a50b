package store

import (
	"context"
	"errors"
	"fmt"

	"skill-daily/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Skill{}, &model.ProgressLedger{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Gorm stores each ledger as a single progress_ledgers row.
type Gorm struct{ db *gorm.DB }

func NewGorm(db *gorm.DB) *Gorm { return &Gorm{db: db} }

func (s *Gorm) Get(ctx context.Context, userID int) (*model.ProgressLedger, error) {
	var l model.ProgressLedger
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("ledger %d: %w", userID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	if l.Days == nil {
		l.Days = map[string]model.DayEntry{}
	}
	return &l, nil
}

// Update seeds the row if missing, then locks it for the rest of the
// transaction. SQLite has no row locks and relies on its write lock instead.
func (s *Gorm) Update(ctx context.Context, userID int, fn func(*model.ProgressLedger) error) (*model.ProgressLedger, error) {
	var out model.ProgressLedger
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(model.NewLedger(userID)).Error; err != nil {
			return fmt.Errorf("seed ledger: %w", err)
		}

		var l model.ProgressLedger
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("user_id = ?", userID).First(&l).Error; err != nil {
			return fmt.Errorf("lock ledger: %w", err)
		}
		if l.Days == nil {
			l.Days = map[string]model.DayEntry{}
		}
		if err := fn(&l); err != nil {
			return err
		}
		if err := tx.Save(&l).Error; err != nil {
			return fmt.Errorf("save ledger: %w", err)
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
