package engine

import (
	"github.com/katpally123/pxt-phoenix/pkg/schema"
)

// PresenceOverride records a person whose roster-declared status and live
// feed token disagree on presence. Resolution is always "feed_wins".
type PresenceOverride struct {
	ID           string `json:"eid"`
	RosterStatus string `json:"rosterStatus"`
	FeedStatus   string `json:"feedStatus"`
	Present      bool   `json:"present"`
	Resolution   string `json:"resolution"` // always "feed_wins"
}

// DetectOverride compares the presence each source implies. It returns nil
// when both agree, including when the roster declared nothing.
func DetectOverride(p *schema.PersonRecord, feedToken string) *PresenceOverride {
	if p.DeclaredStatus == "" {
		return nil
	}
	rosterPresent := schema.IsPresentToken(p.DeclaredStatus)
	feedPresent := schema.IsPresentToken(feedToken)
	if rosterPresent == feedPresent {
		return nil
	}
	return &PresenceOverride{
		ID:           p.ID,
		RosterStatus: p.DeclaredStatus,
		FeedStatus:   feedToken,
		Present:      feedPresent,
		Resolution:   "feed_wins",
	}
}
