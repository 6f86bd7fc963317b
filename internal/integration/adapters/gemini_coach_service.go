// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

// GeminiCoachService implements the adapter.CoachService using Google Gemini.
type GeminiCoachService struct {
	apiKey    string
	modelName string
}

// NewGeminiCoachService creates a new Gemini coach service instance.
func NewGeminiCoachService(apiKey string) *GeminiCoachService {
	return &GeminiCoachService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiCoachService) IsAvailable() bool {
	return s.apiKey != ""
}

// GenerateAnalysis asks Gemini for a full financial analysis.
func (s *GeminiCoachService) GenerateAnalysis(ctx context.Context, request *adapter.CoachRequest) (*entity.FinancialAnalysis, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	text, err := s.generate(ctx, s.buildAnalysisPrompt(request))
	if err != nil {
		return nil, err
	}

	var payload struct {
		HealthScore     int      `json:"health_score"`
		Summary         string   `json:"summary"`
		Recommendations []string `json:"recommendations"`
		Strengths       []string `json:"strengths"`
		Weaknesses      []string `json:"weaknesses"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if payload.HealthScore < 0 {
		payload.HealthScore = 0
	}
	if payload.HealthScore > 100 {
		payload.HealthScore = 100
	}

	return &entity.FinancialAnalysis{
		HealthScore:     payload.HealthScore,
		Summary:         payload.Summary,
		Recommendations: payload.Recommendations,
		Strengths:       payload.Strengths,
		Weaknesses:      payload.Weaknesses,
		TopCategories:   request.Stats.TopCategories,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// GenerateTips asks Gemini for short actionable tips.
func (s *GeminiCoachService) GenerateTips(ctx context.Context, request *adapter.CoachRequest) (*entity.FinancialTips, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	text, err := s.generate(ctx, s.buildTipsPrompt(request))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Tips []string `json:"tips"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return &entity.FinancialTips{
		Tips:        payload.Tips,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// generate runs one prompt through the model and returns the cleaned
// text payload. Quota rejections map to the domain rate-limit sentinel
// so callers can fall back to their cache.
func (s *GeminiCoachService) generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if isRateLimitError(err) {
			return "", fmt.Errorf("gemini quota rejected request: %w", domainerror.ErrCoachRateLimited)
		}
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return "", fmt.Errorf("no text content in response")
	}

	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	return strings.TrimSpace(textContent), nil
}

// isRateLimitError recognizes quota rejections in the Gemini error text.
func isRateLimitError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resourceexhausted") ||
		strings.Contains(msg, "resource exhausted")
}

// buildAnalysisPrompt renders the full-analysis prompt.
func (s *GeminiCoachService) buildAnalysisPrompt(request *adapter.CoachRequest) string {
	var sb strings.Builder

	sb.WriteString(`You are a personal finance coach. Analyze the user's financial snapshot below and respond with a JSON object:
{
  "health_score": 0-100,
  "summary": "two or three sentences describing their financial health",
  "recommendations": ["specific, actionable recommendations"],
  "strengths": ["what the user is doing well"],
  "weaknesses": ["what needs attention"]
}

RULES:
- health_score reflects savings rate, spending concentration and goal progress
- recommendations must reference the actual numbers below
- answer in the user's locale language
- return only the JSON object, no additional text

`)

	s.writeSnapshot(&sb, request)

	return sb.String()
}

// buildTipsPrompt renders the short-tips prompt.
func (s *GeminiCoachService) buildTipsPrompt(request *adapter.CoachRequest) string {
	var sb strings.Builder

	sb.WriteString(`You are a personal finance coach. Based on the user's financial snapshot below, respond with a JSON object:
{
  "tips": ["three to five short, actionable money tips"]
}

RULES:
- each tip is one sentence and references the user's actual situation
- answer in the user's locale language
- return only the JSON object, no additional text

`)

	s.writeSnapshot(&sb, request)

	return sb.String()
}

// writeSnapshot appends the shared financial context block.
func (s *GeminiCoachService) writeSnapshot(sb *strings.Builder, request *adapter.CoachRequest) {
	currency := request.Currency
	if currency == "" {
		currency = "USD"
	}
	locale := request.Locale
	if locale == "" {
		locale = "en-US"
	}

	fmt.Fprintf(sb, "USER: currency=%s locale=%s\n", currency, locale)
	fmt.Fprintf(sb, "BALANCE: %s\n", request.Stats.Balance.StringFixed(2))
	fmt.Fprintf(sb, "CURRENT MONTH: income=%s expenses=%s\n",
		request.Stats.MonthIncome.StringFixed(2), request.Stats.MonthExpenses.StringFixed(2))
	fmt.Fprintf(sb, "AVERAGE MONTHLY SAVINGS (3 months): %s\n", request.Stats.AvgMonthlySavings.StringFixed(2))

	sb.WriteString("TOP EXPENSE CATEGORIES:\n")
	if len(request.Stats.TopCategories) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, cat := range request.Stats.TopCategories {
		fmt.Fprintf(sb, "- %s: %.2f (%.1f%%)\n", cat.Name, cat.Amount, cat.Percentage)
	}

	sb.WriteString("SAVINGS GOALS:\n")
	if len(request.Goals) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, goal := range request.Goals {
		fmt.Fprintf(sb, "- %s: %s of %s\n",
			goal.Name, goal.CurrentAmount.StringFixed(2), goal.TargetAmount.StringFixed(2))
	}

	fmt.Fprintf(sb, "RECENT TRANSACTIONS (%d):\n", len(request.Transactions))
	for _, tx := range request.Transactions {
		fmt.Fprintf(sb, "- %s | %s | %s | %s\n",
			tx.Date.Format("2006-01-02"), tx.Type, tx.Amount.StringFixed(2), tx.Description)
	}
}
