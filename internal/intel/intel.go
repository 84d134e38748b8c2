// Package intel gathers public signals about a business (website, review
// listings, social pages, model-assisted analysis) for onboarding and
// reputation scoring. Every adapter makes a single attempt with a timeout
// and degrades to a fallback payload, so analysis never hard-fails on an
// external outage.
package intel

import (
	"context"
	"net/http"
	"time"

	"rentalops-backend/internal/domain"
)

type Config struct {
	Enabled        bool
	PlacesBaseURL  string
	PlacesAPIKey   string
	SocialBaseURL  string
	SocialToken    string
	TextGenBaseURL string
	TextGenAPIKey  string
	TextGenModel   string
}

const (
	defaultPlacesBaseURL  = "https://maps.googleapis.com/maps/api/place"
	defaultSocialBaseURL  = "https://graph.facebook.com/v18.0"
	defaultTextGenBaseURL = "https://api.anthropic.com"
	defaultTextGenModel   = "claude-3-5-haiku-latest"

	scrapeTimeout  = 10 * time.Second
	lookupTimeout  = 10 * time.Second
	textGenTimeout = 30 * time.Second
)

type Analyzer struct {
	cfg          Config
	scrapeClient *http.Client
	lookupClient *http.Client
	genClient    *http.Client
}

func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.PlacesBaseURL == "" {
		cfg.PlacesBaseURL = defaultPlacesBaseURL
	}
	if cfg.SocialBaseURL == "" {
		cfg.SocialBaseURL = defaultSocialBaseURL
	}
	if cfg.TextGenBaseURL == "" {
		cfg.TextGenBaseURL = defaultTextGenBaseURL
	}
	if cfg.TextGenModel == "" {
		cfg.TextGenModel = defaultTextGenModel
	}
	return &Analyzer{
		cfg:          cfg,
		scrapeClient: &http.Client{Timeout: scrapeTimeout},
		lookupClient: &http.Client{Timeout: lookupTimeout},
		genClient:    &http.Client{Timeout: textGenTimeout},
	}
}

// Analyze runs the full onboarding analysis for a business. Individual
// adapter failures surface as fallback sections, never as an error.
func (a *Analyzer) Analyze(ctx context.Context, biz *domain.Business) *domain.WebIntelligence {
	intel := &domain.WebIntelligence{FetchedAt: time.Now()}

	if biz.Website != "" {
		intel.Site = a.ScrapeSite(ctx, biz.Website)
	}
	intel.Places = a.LookupPlaces(ctx, biz.Name, biz.Address)
	intel.Social = a.LookupSocial(ctx, biz.Name)
	intel.Analysis = a.AnalyzeBusiness(ctx, biz, intel.Site)

	return intel
}
