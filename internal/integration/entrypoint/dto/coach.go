package dto

import (
	"time"

	"github.com/quanta/backend/internal/domain/entity"
)

// CategorySpendResponse represents a top spending category in the analysis.
type CategorySpendResponse struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// AnalysisResponse represents the financial analysis in API responses.
// Cached and Stale describe where the payload came from: a fresh
// generation, the fresh cache, or the stale fallback copy.
type AnalysisResponse struct {
	HealthScore     int                     `json:"health_score"`
	Summary         string                  `json:"summary"`
	Recommendations []string                `json:"recommendations"`
	Strengths       []string                `json:"strengths"`
	Weaknesses      []string                `json:"weaknesses"`
	TopCategories   []CategorySpendResponse `json:"top_categories"`
	GeneratedAt     time.Time               `json:"generated_at"`
	Cached          bool                    `json:"cached"`
	Stale           bool                    `json:"stale"`
}

// TipsResponse represents the financial tips in API responses.
type TipsResponse struct {
	Tips        []string  `json:"tips"`
	GeneratedAt time.Time `json:"generated_at"`
	Cached      bool      `json:"cached"`
	Stale       bool      `json:"stale"`
}

// ToAnalysisResponse converts a domain FinancialAnalysis to a DTO.
func ToAnalysisResponse(a *entity.FinancialAnalysis, cached, stale bool) AnalysisResponse {
	response := AnalysisResponse{
		HealthScore:     a.HealthScore,
		Summary:         a.Summary,
		Recommendations: a.Recommendations,
		Strengths:       a.Strengths,
		Weaknesses:      a.Weaknesses,
		TopCategories:   make([]CategorySpendResponse, 0, len(a.TopCategories)),
		GeneratedAt:     a.GeneratedAt,
		Cached:          cached,
		Stale:           stale,
	}
	for _, c := range a.TopCategories {
		response.TopCategories = append(response.TopCategories, CategorySpendResponse{
			Name:       c.Name,
			Amount:     c.Amount,
			Percentage: c.Percentage,
		})
	}
	return response
}

// ToTipsResponse converts domain FinancialTips to a DTO.
func ToTipsResponse(t *entity.FinancialTips, cached, stale bool) TipsResponse {
	return TipsResponse{
		Tips:        t.Tips,
		GeneratedAt: t.GeneratedAt,
		Cached:      cached,
		Stale:       stale,
	}
}
