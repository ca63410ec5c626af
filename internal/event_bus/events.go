package event_bus

const (
	EventLineItemChanged EventType = "lineitem.changed"
	EventCampaignChanged EventType = "campaign.changed"
)

// LineItemChanged is published whenever a line item (or any of its bursts) is
// created, updated, or deleted. Consumers use it to drop derived results such
// as cached schedule exports.
type LineItemChanged struct {
	CampaignUid string
	Channel     string
	LineItemId  int
}

// CampaignChanged is published when campaign-level configuration changes
// (dates, fee percentage). Every derived view of the campaign is stale after
// this event.
type CampaignChanged struct {
	CampaignUid string
}
