package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type UserInfo struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type SkillRequest struct {
	Name                string     `json:"name" binding:"required"`
	Category            string     `json:"category"`
	Level               SkillLevel `json:"level"`
	TargetMinutesPerDay int        `json:"target_minutes_per_day"`
	Notes               string     `json:"notes"`
}

type TaskInput struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type DayRequest struct {
	Tasks         []TaskInput `json:"tasks"`
	Mood          string      `json:"mood"`
	FreeformPlans string      `json:"freeform_plans"`
}

type PlanRequest struct {
	Mood         string `json:"mood"`
	DailyPlans   string `json:"daily_plans"`
	LearningGoal string `json:"learning_goal"`
}

type PlanSource string

const (
	SourceCache    PlanSource = "cache"
	SourceAI       PlanSource = "ai"
	SourceFallback PlanSource = "fallback"
)

type PlanResponse struct {
	Tasks  []string   `json:"tasks"`
	Source PlanSource `json:"source"`
}
