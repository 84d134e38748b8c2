package domain

import "time"

// Review is one public review pulled from a places listing.
type Review struct {
	Author string  `json:"author"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
	Date   string  `json:"date"`
}

// PlacesListing summarizes the business's places-directory presence.
type PlacesListing struct {
	PlaceID     string   `json:"place_id"`
	Rating      float64  `json:"rating"`
	ReviewCount int32    `json:"review_count"`
	Reviews     []Review `json:"reviews,omitempty"`
}

// SocialPresence summarizes the business's social page metrics.
type SocialPresence struct {
	PageID     string `json:"page_id"`
	PageName   string `json:"page_name"`
	Followers  int32  `json:"followers"`
	Engagement int32  `json:"engagement"`
}

// SiteProfile is what the website scrape extracted.
type SiteProfile struct {
	Reachable   bool     `json:"reachable"`
	Title       string   `json:"title"`
	Phones      []string `json:"phones,omitempty"`
	Emails      []string `json:"emails,omitempty"`
	SocialLinks []string `json:"social_links,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// BusinessAnalysis is the parsed output of the text-analysis model.
type BusinessAnalysis struct {
	Summary            string   `json:"summary"`
	SuggestedTagline   string   `json:"suggested_tagline"`
	SuggestedCategories []string `json:"suggested_categories,omitempty"`
	SuggestedPrimary   string   `json:"suggested_primary_color,omitempty"`
	SuggestedSecondary string   `json:"suggested_secondary_color,omitempty"`
}

// WebIntelligence bundles everything the onboarding analysis gathered about
// a business. Stored as a JSONB column on the business row.
type WebIntelligence struct {
	Site      SiteProfile       `json:"site"`
	Places    PlacesListing     `json:"places"`
	Social    SocialPresence    `json:"social"`
	Analysis  *BusinessAnalysis `json:"analysis,omitempty"`
	FetchedAt time.Time         `json:"fetched_at"`
}
