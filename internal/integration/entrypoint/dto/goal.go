package dto

import (
	"time"

	"github.com/quanta/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name                  string   `json:"name" binding:"required,min=1,max=100"`
	TargetAmount          float64  `json:"target_amount" binding:"required,gt=0"`
	Icon                  string   `json:"icon,omitempty"`
	Color                 string   `json:"color,omitempty"`
	ContributionAmount    *float64 `json:"contribution_amount,omitempty" binding:"omitempty,gt=0"`
	ContributionFrequency *string  `json:"contribution_frequency,omitempty" binding:"omitempty,oneof=weekly biweekly monthly"`
	TargetDate            *string  `json:"target_date,omitempty"`
	AutoDeduct            bool     `json:"auto_deduct"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Name                  *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	TargetAmount          *float64 `json:"target_amount,omitempty" binding:"omitempty,gt=0"`
	Icon                  *string  `json:"icon,omitempty"`
	Color                 *string  `json:"color,omitempty"`
	ContributionAmount    *float64 `json:"contribution_amount,omitempty" binding:"omitempty,gt=0"`
	ContributionFrequency *string  `json:"contribution_frequency,omitempty" binding:"omitempty,oneof=weekly biweekly monthly"`
	TargetDate            *string  `json:"target_date,omitempty"`
	ClearTargetDate       bool     `json:"clear_target_date"`
	AutoDeduct            *bool    `json:"auto_deduct,omitempty"`
}

// AddContributionRequest represents the request body for adding a
// contribution to a goal.
type AddContributionRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// ContributionResponse represents a single contribution in API responses.
type ContributionResponse struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID                    string                 `json:"id"`
	UserID                string                 `json:"user_id"`
	Name                  string                 `json:"name"`
	TargetAmount          float64                `json:"target_amount"`
	CurrentAmount         float64                `json:"current_amount"`
	Icon                  string                 `json:"icon"`
	Color                 string                 `json:"color"`
	ContributionAmount    *float64               `json:"contribution_amount,omitempty"`
	ContributionFrequency string                 `json:"contribution_frequency"`
	TargetDate            *string                `json:"target_date,omitempty"`
	AutoDeduct            bool                   `json:"auto_deduct"`
	ContributionHistory   []ContributionResponse `json:"contribution_history"`
	LastContributionDate  *string                `json:"last_contribution_date,omitempty"`
	NextContributionDate  *string                `json:"next_contribution_date,omitempty"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ContributionResultResponse represents the response after adding or
// removing a contribution.
type ContributionResultResponse struct {
	Goal        GoalResponse         `json:"goal"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// MilestoneResponse represents a savings plan milestone.
type MilestoneResponse struct {
	Percentage    int     `json:"percentage"`
	Amount        float64 `json:"amount"`
	ProjectedDate string  `json:"projected_date"`
	IsCompleted   bool    `json:"is_completed"`
}

// SavingsPlanResponse represents the savings plan projection for a goal.
type SavingsPlanResponse struct {
	GoalID              string              `json:"goal_id"`
	Remaining           float64             `json:"remaining"`
	DailyTarget         float64             `json:"daily_target"`
	WeeklyTarget        float64             `json:"weekly_target"`
	MonthlyTarget       float64             `json:"monthly_target"`
	AvgMonthlySavings   float64             `json:"avg_monthly_savings"`
	Strategy            string              `json:"strategy"`
	IsOnTrack           bool                `json:"is_on_track"`
	ProjectedCompletion string              `json:"projected_completion"`
	Milestones          []MilestoneResponse `json:"milestones"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	response := GoalResponse{
		ID:                    g.ID.String(),
		UserID:                g.UserID.String(),
		Name:                  g.Name,
		TargetAmount:          g.TargetAmount.InexactFloat64(),
		CurrentAmount:         g.CurrentAmount.InexactFloat64(),
		Icon:                  g.Icon,
		Color:                 g.Color,
		ContributionFrequency: string(g.ContributionFrequency),
		AutoDeduct:            g.AutoDeduct,
		ContributionHistory:   make([]ContributionResponse, 0, len(g.ContributionHistory)),
		CreatedAt:             g.CreatedAt,
		UpdatedAt:             g.UpdatedAt,
	}

	if g.ContributionAmount != nil {
		amount := g.ContributionAmount.InexactFloat64()
		response.ContributionAmount = &amount
	}
	if g.TargetDate != nil {
		dateStr := g.TargetDate.Format("2006-01-02")
		response.TargetDate = &dateStr
	}
	if g.LastContributionDate != nil {
		dateStr := g.LastContributionDate.Format("2006-01-02")
		response.LastContributionDate = &dateStr
	}
	if g.NextContributionDate != nil {
		dateStr := g.NextContributionDate.Format("2006-01-02")
		response.NextContributionDate = &dateStr
	}
	for _, c := range g.ContributionHistory {
		response.ContributionHistory = append(response.ContributionHistory, ContributionResponse{
			Date:   c.Date.Format("2006-01-02"),
			Amount: c.Amount.InexactFloat64(),
		})
	}

	return response
}

// ToGoalListResponse converts a slice of goals to a list response.
func ToGoalListResponse(goals []*entity.Goal) GoalListResponse {
	response := GoalListResponse{
		Goals: make([]GoalResponse, 0, len(goals)),
	}
	for _, g := range goals {
		response.Goals = append(response.Goals, ToGoalResponse(g))
	}
	return response
}

// ToSavingsPlanResponse converts a domain SavingsPlan to a DTO.
func ToSavingsPlanResponse(p *entity.SavingsPlan) SavingsPlanResponse {
	response := SavingsPlanResponse{
		GoalID:              p.GoalID,
		Remaining:           p.Remaining.InexactFloat64(),
		DailyTarget:         p.DailyTarget.InexactFloat64(),
		WeeklyTarget:        p.WeeklyTarget.InexactFloat64(),
		MonthlyTarget:       p.MonthlyTarget.InexactFloat64(),
		AvgMonthlySavings:   p.AvgMonthlySavings.InexactFloat64(),
		Strategy:            string(p.Strategy),
		IsOnTrack:           p.IsOnTrack,
		ProjectedCompletion: p.ProjectedCompletion.Format("2006-01-02"),
		Milestones:          make([]MilestoneResponse, 0, len(p.Milestones)),
	}
	for _, m := range p.Milestones {
		response.Milestones = append(response.Milestones, MilestoneResponse{
			Percentage:    m.Percentage,
			Amount:        m.Amount.InexactFloat64(),
			ProjectedDate: m.ProjectedDate.Format("2006-01-02"),
			IsCompleted:   m.IsCompleted,
		})
	}
	return response
}
