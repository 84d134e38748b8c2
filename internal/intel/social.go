package intel

import (
	"context"
	"fmt"
	"net/url"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
)

type pageSearchResponse struct {
	Data []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"data"`
}

type pageDetailsResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	FollowersCount int32  `json:"followers_count"`
	TalkingAbout   int32  `json:"talking_about_count"`
}

// LookupSocial searches the social graph for the business page and reads
// its follower metrics. Empty presence on any failure or missing token.
func (a *Analyzer) LookupSocial(ctx context.Context, name string) domain.SocialPresence {
	if a.cfg.SocialToken == "" {
		return domain.SocialPresence{}
	}

	logger.ExternalServiceCall("social", "page_search", "name", name)

	searchURL := fmt.Sprintf("%s/pages/search?q=%s&fields=id,name&access_token=%s",
		a.cfg.SocialBaseURL, url.QueryEscape(name), a.cfg.SocialToken)

	var search pageSearchResponse
	if err := a.getJSON(ctx, a.lookupClient, searchURL, &search); err != nil {
		logger.ExternalServiceResult("social", "page_search", err)
		return domain.SocialPresence{}
	}
	if len(search.Data) == 0 {
		logger.ExternalServiceResult("social", "page_search", nil, "matches", 0)
		return domain.SocialPresence{}
	}

	pageID := search.Data[0].ID
	detailsURL := fmt.Sprintf("%s/%s?fields=id,name,followers_count,talking_about_count&access_token=%s",
		a.cfg.SocialBaseURL, url.PathEscape(pageID), a.cfg.SocialToken)

	var details pageDetailsResponse
	if err := a.getJSON(ctx, a.lookupClient, detailsURL, &details); err != nil {
		logger.ExternalServiceResult("social", "page_details", err)
		return domain.SocialPresence{PageID: pageID, PageName: search.Data[0].Name}
	}

	logger.ExternalServiceResult("social", "page_details", nil, "followers", details.FollowersCount)
	return domain.SocialPresence{
		PageID:     details.ID,
		PageName:   details.Name,
		Followers:  details.FollowersCount,
		Engagement: details.TalkingAbout,
	}
}
