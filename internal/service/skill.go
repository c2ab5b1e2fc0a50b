package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skill-daily/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SkillService struct{ db *gorm.DB }

func NewSkillService(db *gorm.DB) *SkillService { return &SkillService{db: db} }

func (s *SkillService) List(ctx context.Context, userID int) ([]model.Skill, error) {
	var skills []model.Skill
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("query skills: %w", err)
	}
	return skills, nil
}

func (s *SkillService) Create(ctx context.Context, userID int, req model.SkillRequest) (*model.Skill, error) {
	sk := model.Skill{ID: uuid.NewString(), UserID: userID}
	if err := applySkill(&sk, req); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&sk).Error; err != nil {
		return nil, fmt.Errorf("insert skill: %w", err)
	}
	return &sk, nil
}

func (s *SkillService) Update(ctx context.Context, userID int, id string, req model.SkillRequest) (*model.Skill, error) {
	sk, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := applySkill(sk, req); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(sk).Error; err != nil {
		return nil, fmt.Errorf("update skill: %w", err)
	}
	return sk, nil
}

func (s *SkillService) Delete(ctx context.Context, userID int, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Skill{})
	if res.Error != nil {
		return fmt.Errorf("delete skill: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("skill %s: %w", id, model.ErrNotFound)
	}
	return nil
}

// Names joins the user's skill names for use as a plan learning goal.
func (s *SkillService) Names(ctx context.Context, userID int) (string, error) {
	skills, err := s.List(ctx, userID)
	if err != nil {
		return "", err
	}
	names := make([]string, len(skills))
	for i, sk := range skills {
		names[i] = sk.Name
	}
	return strings.Join(names, ", "), nil
}

func (s *SkillService) get(ctx context.Context, userID int, id string) (*model.Skill, error) {
	var sk model.Skill
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&sk).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("skill %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query skill: %w", err)
	}
	return &sk, nil
}

func applySkill(sk *model.Skill, req model.SkillRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Invalid("name", "required")
	}
	level := req.Level
	if level == "" {
		level = model.LevelBeginner
	}
	if !level.Valid() {
		return model.Invalid("level", "unknown level %q", level)
	}
	if req.TargetMinutesPerDay < 0 || req.TargetMinutesPerDay > 24*60 {
		return model.Invalid("target_minutes_per_day", "must be between 0 and 1440")
	}
	sk.Name = name
	sk.Category = strings.TrimSpace(req.Category)
	sk.Level = level
	sk.TargetMinutesPerDay = req.TargetMinutesPerDay
	sk.Notes = strings.TrimSpace(req.Notes)
	return nil
}
