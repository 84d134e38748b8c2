package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
)

type placesSearchResponse struct {
	Candidates []struct {
		PlaceID string `json:"place_id"`
	} `json:"candidates"`
	Status string `json:"status"`
}

type placesDetailsResponse struct {
	Result struct {
		Rating           float64 `json:"rating"`
		UserRatingsTotal int32   `json:"user_ratings_total"`
		Reviews          []struct {
			AuthorName              string  `json:"author_name"`
			Rating                  float64 `json:"rating"`
			Text                    string  `json:"text"`
			RelativeTimeDescription string  `json:"relative_time_description"`
		} `json:"reviews"`
	} `json:"result"`
	Status string `json:"status"`
}

// LookupPlaces resolves the business on the places directory and pulls its
// rating and recent reviews. An empty listing is returned on any failure or
// when no API key is configured.
func (a *Analyzer) LookupPlaces(ctx context.Context, name, address string) domain.PlacesListing {
	if a.cfg.PlacesAPIKey == "" {
		return domain.PlacesListing{}
	}

	logger.ExternalServiceCall("places", "find_place", "name", name)

	query := name
	if address != "" {
		query += " " + address
	}
	searchURL := fmt.Sprintf("%s/findplacefromtext/json?input=%s&inputtype=textquery&fields=place_id&key=%s",
		a.cfg.PlacesBaseURL, url.QueryEscape(query), a.cfg.PlacesAPIKey)

	var search placesSearchResponse
	if err := a.getJSON(ctx, a.lookupClient, searchURL, &search); err != nil {
		logger.ExternalServiceResult("places", "find_place", err)
		return domain.PlacesListing{}
	}
	if search.Status != "OK" || len(search.Candidates) == 0 {
		logger.ExternalServiceResult("places", "find_place", nil, "status", search.Status)
		return domain.PlacesListing{}
	}

	placeID := search.Candidates[0].PlaceID
	detailsURL := fmt.Sprintf("%s/details/json?place_id=%s&fields=rating,user_ratings_total,reviews&key=%s",
		a.cfg.PlacesBaseURL, url.QueryEscape(placeID), a.cfg.PlacesAPIKey)

	var details placesDetailsResponse
	if err := a.getJSON(ctx, a.lookupClient, detailsURL, &details); err != nil {
		logger.ExternalServiceResult("places", "details", err)
		return domain.PlacesListing{PlaceID: placeID}
	}

	listing := domain.PlacesListing{
		PlaceID:     placeID,
		Rating:      details.Result.Rating,
		ReviewCount: details.Result.UserRatingsTotal,
	}
	for _, rev := range details.Result.Reviews {
		listing.Reviews = append(listing.Reviews, domain.Review{
			Author: rev.AuthorName,
			Rating: rev.Rating,
			Text:   rev.Text,
			Date:   rev.RelativeTimeDescription,
		})
	}

	logger.ExternalServiceResult("places", "details", nil, "rating", listing.Rating, "reviews", listing.ReviewCount)
	return listing
}

func (a *Analyzer) getJSON(ctx context.Context, client *http.Client, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
