package model

import "time"

const DateLayout = "2006-01-02"

type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:64" json:"username"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
)

func (l SkillLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type Skill struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id"`
	UserID              int        `gorm:"index" json:"user_id"`
	Name                string     `json:"name"`
	Category            string     `json:"category"`
	Level               SkillLevel `json:"level"`
	TargetMinutesPerDay int        `json:"target_minutes_per_day"`
	Notes               string     `json:"notes"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type DayStatus string

const (
	StatusCompleted DayStatus = "completed"
	StatusPartial   DayStatus = "partial"
	StatusMissed    DayStatus = "missed"
	StatusPending   DayStatus = "pending"
)

type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type DayEntry struct {
	Date           string    `json:"date"`
	Tasks          []Task    `json:"tasks"`
	Mood           string    `json:"mood,omitempty"`
	FreeformPlans  string    `json:"freeform_plans,omitempty"`
	CompletionRate int       `json:"completion_rate"`
	Status         DayStatus `json:"status"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProgressLedger is stored as one row per user; Days is embedded as JSON so
// the whole history is read and written as a unit.
type ProgressLedger struct {
	UserID             int                 `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Days               map[string]DayEntry `gorm:"serializer:json;type:json" json:"days"`
	LastCheckinDate    string              `json:"last_checkin_date"`
	CurrentStreak      int                 `json:"current_streak"`
	LongestStreak      int                 `json:"longest_streak"`
	TotalCompletedDays int                 `json:"total_completed_days"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func NewLedger(userID int) *ProgressLedger {
	return &ProgressLedger{UserID: userID, Days: map[string]DayEntry{}}
}

// Clone returns a copy that shares no mutable state with l.
func (l *ProgressLedger) Clone() *ProgressLedger {
	c := *l
	c.Days = make(map[string]DayEntry, len(l.Days))
	for k, d := range l.Days {
		d.Tasks = append([]Task(nil), d.Tasks...)
		c.Days[k] = d
	}
	return &c
}

func (User) TableName() string           { return "users" }
func (Skill) TableName() string          { return "skills" }
func (ProgressLedger) TableName() string { return "progress_ledgers" }
