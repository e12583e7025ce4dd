package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"roundly/config"
	"roundly/internal/domain"
	"roundly/internal/models"
	"roundly/internal/repository"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// SuggestService asks a Gemini model for merchant-to-ticker suggestions and
// stores them as PENDING mappings for admin review. Suggestions never feed
// the engine until approved.
type SuggestService struct {
	cfg         *config.AIConfig
	mappingRepo *repository.MappingRepository
	log         *logrus.Logger
}

func NewSuggestService(cfg *config.AIConfig, mappingRepo *repository.MappingRepository, log *logrus.Logger) *SuggestService {
	return &SuggestService{cfg: cfg, mappingRepo: mappingRepo, log: log}
}

type Suggestion struct {
	Merchant    string  `json:"merchant"`
	Ticker      string  `json:"ticker"`
	CompanyName string  `json:"company_name"`
	Confidence  float64 `json:"confidence"`
}

// Suggest returns ticker suggestions for the given merchant names and appends
// each as a PENDING mapping row. Merchants the model cannot place publicly
// are omitted from the result.
func (s *SuggestService) Suggest(ctx context.Context, merchantNames []string) ([]Suggestion, error) {
	if len(merchantNames) == 0 {
		return nil, nil
	}

	prompt := "You map retail merchant names to the stock ticker of their publicly traded parent company.\n\n" +
		"Merchants:\n"
	for _, name := range merchantNames {
		prompt += "- " + name + "\n"
	}
	prompt += "\nRules:\n" +
		"- Only include merchants whose parent company is publicly traded on a US exchange.\n" +
		"- \"confidence\" is your certainty in [0,1].\n" +
		"- Return ONLY valid raw JSON: an array of objects with keys " +
		"\"merchant\", \"ticker\", \"company_name\", \"confidence\".\n" +
		"- Do NOT wrap the response in code fences.\n" +
		"Output must begin with \"[\" and end with \"]\".\n"

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("suggest: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	resp, err := client.Models.GenerateContent(ctx, s.cfg.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("suggest: generate content: %w", err)
	}
	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("suggest: empty response from model")
	}

	clean := cleanModelJSON(rawText)
	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(clean), &suggestions); err != nil {
		return nil, fmt.Errorf("suggest: unmarshal JSON: %w\nraw response: %s", err, rawText)
	}

	for _, sg := range suggestions {
		if sg.Merchant == "" || sg.Ticker == "" {
			continue
		}
		if err := s.mappingRepo.Append(&models.MerchantMapping{
			MerchantName: sg.Merchant,
			Ticker:       strings.ToUpper(sg.Ticker),
			Confidence:   sg.Confidence,
			Status:       domain.MappingStatusPending,
			CompanyName:  sg.CompanyName,
			Source:       domain.MappingSourceSuggested,
		}); err != nil {
			return nil, fmt.Errorf("suggest: store mapping: %w", err)
		}
	}
	s.log.WithFields(logrus.Fields{"requested": len(merchantNames), "suggested": len(suggestions)}).Info("mapping suggestions stored")
	return suggestions, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
