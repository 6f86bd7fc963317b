package dto

import "github.com/quanta/backend/internal/application/usecase/dashboard"

// DashboardSummaryResponse represents the dashboard overview figures.
type DashboardSummaryResponse struct {
	Balance           float64 `json:"balance"`
	MonthIncome       float64 `json:"month_income"`
	MonthExpense      float64 `json:"month_expense"`
	MonthNet          float64 `json:"month_net"`
	AvgMonthlySavings float64 `json:"avg_monthly_savings"`
	GoalCount         int     `json:"goal_count"`
	GoalsCompleted    int     `json:"goals_completed"`
	TotalSaved        float64 `json:"total_saved"`
}

// ToDashboardSummaryResponse converts the summary output to a DTO.
func ToDashboardSummaryResponse(output *dashboard.GetSummaryOutput) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		Balance:           output.Balance.InexactFloat64(),
		MonthIncome:       output.MonthIncome.InexactFloat64(),
		MonthExpense:      output.MonthExpense.InexactFloat64(),
		MonthNet:          output.MonthNet.InexactFloat64(),
		AvgMonthlySavings: output.AvgMonthlySavings.InexactFloat64(),
		GoalCount:         output.GoalCount,
		GoalsCompleted:    output.GoalsCompleted,
		TotalSaved:        output.TotalSaved.InexactFloat64(),
	}
}
