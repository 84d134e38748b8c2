package intel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
)

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// AnalyzeBusiness asks the text model for an onboarding summary and
// branding suggestions, built from whatever the scrape found. Returns nil
// when the model is not configured or the call fails; callers treat a nil
// analysis as "not available".
func (a *Analyzer) AnalyzeBusiness(ctx context.Context, biz *domain.Business, site domain.SiteProfile) *domain.BusinessAnalysis {
	if a.cfg.TextGenAPIKey == "" {
		return nil
	}

	prompt := buildAnalysisPrompt(biz, site)

	reqBody, err := json.Marshal(messagesRequest{
		Model:     a.cfg.TextGenModel,
		MaxTokens: 1024,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil
	}

	logger.ExternalServiceCall("textgen", "messages", "model", a.cfg.TextGenModel)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.TextGenBaseURL+"/v1/messages", bytes.NewReader(reqBody))
	if err != nil {
		logger.ExternalServiceResult("textgen", "messages", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.cfg.TextGenAPIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.genClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("textgen", "messages", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.ExternalServiceResult("textgen", "messages", fmt.Errorf("unexpected status %d", resp.StatusCode))
		return nil
	}

	var mr messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		logger.ExternalServiceResult("textgen", "messages", err)
		return nil
	}

	var text string
	for _, block := range mr.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	analysis := ParseAnalysis(text)
	logger.ExternalServiceResult("textgen", "messages", nil, "parsed", analysis != nil)
	return analysis
}

func buildAnalysisPrompt(biz *domain.Business, site domain.SiteProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are helping onboard a %s rental business named %q onto a rental management platform.\n", biz.Type, biz.Name)
	if site.Title != "" {
		fmt.Fprintf(&b, "Their website title is %q.\n", site.Title)
	}
	if len(site.Keywords) > 0 {
		fmt.Fprintf(&b, "Their website mentions: %s.\n", strings.Join(site.Keywords, ", "))
	}
	b.WriteString("Respond with only a JSON object with keys: summary, suggested_tagline, suggested_categories (array of strings), suggested_primary_color (hex), suggested_secondary_color (hex).")
	return b.String()
}

// ParseAnalysis extracts the first JSON object from model output. Models
// sometimes wrap the JSON in prose or code fences, so scan for the
// outermost braces rather than decoding the whole string.
func ParseAnalysis(text string) *domain.BusinessAnalysis {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil
	}

	var raw struct {
		Summary             string   `json:"summary"`
		SuggestedTagline    string   `json:"suggested_tagline"`
		SuggestedCategories []string `json:"suggested_categories"`
		SuggestedPrimary    string   `json:"suggested_primary_color"`
		SuggestedSecondary  string   `json:"suggested_secondary_color"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil
	}
	if raw.Summary == "" && raw.SuggestedTagline == "" {
		return nil
	}

	return &domain.BusinessAnalysis{
		Summary:             raw.Summary,
		SuggestedTagline:    raw.SuggestedTagline,
		SuggestedCategories: raw.SuggestedCategories,
		SuggestedPrimary:    raw.SuggestedPrimary,
		SuggestedSecondary:  raw.SuggestedSecondary,
	}
}
