package intel

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
)

var (
	titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	phoneRe = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	// Social profile links embedded anywhere in the page
	socialRe = regexp.MustCompile(`https?://(?:www\.)?(?:facebook|instagram|twitter|x|linkedin|yelp)\.com/[A-Za-z0-9_.\-/]+`)
)

// rentalKeywords are the business-type signals the onboarding wizard looks
// for on a company website.
var rentalKeywords = []string{
	"equipment rental", "party rental", "tool rental", "vehicle rental",
	"bounce house", "excavator", "scissor lift", "tent", "trailer",
	"delivery", "pickup", "daily rate", "weekly rate",
}

const maxScrapeBytes = 512 * 1024

// ScrapeSite fetches the business website and extracts contact and
// business-type signals with regular expressions. Any failure returns an
// unreachable profile rather than an error.
func (a *Analyzer) ScrapeSite(ctx context.Context, url string) domain.SiteProfile {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	logger.ExternalServiceCall("website", "scrape", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.ExternalServiceResult("website", "scrape", err)
		return domain.SiteProfile{Reachable: false}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; RentalOpsBot/1.0)")

	resp, err := a.scrapeClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("website", "scrape", err)
		return domain.SiteProfile{Reachable: false}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.ExternalServiceResult("website", "scrape", nil, "status", resp.StatusCode)
		return domain.SiteProfile{Reachable: false}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScrapeBytes))
	if err != nil {
		logger.ExternalServiceResult("website", "scrape", err)
		return domain.SiteProfile{Reachable: false}
	}

	profile := ExtractSiteProfile(string(body))
	logger.ExternalServiceResult("website", "scrape", nil,
		"phones", len(profile.Phones), "emails", len(profile.Emails), "keywords", len(profile.Keywords))
	return profile
}

// ExtractSiteProfile pulls contact details and rental keywords out of raw
// page HTML.
func ExtractSiteProfile(html string) domain.SiteProfile {
	profile := domain.SiteProfile{Reachable: true}

	if m := titleRe.FindStringSubmatch(html); m != nil {
		profile.Title = strings.TrimSpace(m[1])
	}
	profile.Phones = dedupe(phoneRe.FindAllString(html, 5))
	profile.Emails = dedupe(emailRe.FindAllString(html, 5))
	profile.SocialLinks = dedupe(socialRe.FindAllString(html, 10))

	lower := strings.ToLower(html)
	for _, kw := range rentalKeywords {
		if strings.Contains(lower, kw) {
			profile.Keywords = append(profile.Keywords, kw)
		}
	}

	return profile
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
