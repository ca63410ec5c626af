package channel

import (
	"github.com/mediaplan/mediaplan/pkg/deliverables"
)

// Channel identifies one media channel of a plan. Every channel shares the
// same burst/fee mechanics but groups its line items by a different key tuple
// and offers a different subset of buy types.
type Channel string

const (
	Television Channel = "television"
	Radio      Channel = "radio"
	Cinema     Channel = "cinema"
	BVOD       Channel = "bvod"
	Digital    Channel = "digital"
	Magazines  Channel = "magazines"
	Newspapers Channel = "newspapers"
	OOH        Channel = "ooh"
	Search     Channel = "search"
	Social     Channel = "social"
)

type definition struct {
	groupingFields []string
	buyTypes       []deliverables.BuyType
}

// Grouping field names refer to line item fields by their persisted names;
// see lineitem.LineItem.Field.
var definitions = map[Channel]definition{
	Television: {
		groupingFields: []string{"market", "network", "station", "daypart", "placement", "size", "buying_demo", "buy_type"},
		buyTypes:       []deliverables.BuyType{deliverables.BuyTypeSpots, deliverables.BuyTypeCPM, deliverables.BuyTypePackage, deliverables.BuyTypeBonus},
	},
	Radio: {
		groupingFields: []string{"market", "network", "station", "daypart", "placement", "buying_demo", "buy_type"},
		buyTypes:       []deliverables.BuyType{deliverables.BuyTypeSpots, deliverables.BuyTypePackage, deliverables.BuyTypeBonus},
	},
	Cinema: {
		groupingFields: []string{"market", "network", "placement", "size", "buy_type"},
		buyTypes:       []deliverables.BuyType{deliverables.BuyTypeScreens, deliverables.BuyTypeFixedCost, deliverables.BuyTypePackage},
	},
	BVOD: {
		groupingFields: []string{"market", "platform", "targeting", "creative", "buying_demo", "buy_type"},
		buyTypes:       []deliverables.BuyType{deliverables.BuyTypeCPM, deliverables.BuyTypeCPV, deliverables.BuyTypeBonus},
	},
	Digital: {
		groupingFields: []string{"market", "platform", "site", "targeting", "creative", "size", "buy_type"},
		buyTypes:       []deliverables.BuyType{deliverables.BuyTypeCPM, deliverables.BuyTypeCPC, deliverables.BuyTypeFixedCost, deliverables.BuyTypePackage, deliverables.BuyTypeBonus},
	},
	Magazines: {
		groupingFields: []string{"market", "site", "size", "placement", "buy_type"},
		buyTypes:       []deliverables.BuyType{deliverables.BuyTypeInsertions, deliverables.BuyTypeFixedCost, deliverables.BuyTypeBonus},
	},
	Newspapers: {
		groupingFields: []string{"market", "site", "size", "placement", "buy_type"},
		buyTypes:       []deliverables.BuyType{deliverables.BuyTypeInsertions, deliverables.BuyTypeFixedCost, deliverables.BuyTypeBonus},
	},
	OOH: {
		groupingFields: []string{"market", "site", "placement", "size", "buy_type"},
		buyTypes:       []deliverables.BuyType{deliverables.BuyTypeScreens, deliverables.BuyTypeFixedCost, deliverables.BuyTypePackage},
	},
	Search: {
		groupingFields: []string{"market", "platform", "bid_strategy", "targeting", "buying_demo", "buy_type"},
		buyTypes:       []deliverables.BuyType{deliverables.BuyTypeCPC, deliverables.BuyTypeFixedCost, deliverables.BuyTypeBonus},
	},
	Social: {
		groupingFields: []string{"market", "platform", "bid_strategy", "targeting", "creative", "buying_demo", "buy_type"},
		buyTypes:       []deliverables.BuyType{deliverables.BuyTypeCPM, deliverables.BuyTypeCPC, deliverables.BuyTypeCPV, deliverables.BuyTypeBonus},
	},
}

// All returns every known channel in a stable order.
func All() []Channel {
	return []Channel{Television, Radio, Cinema, BVOD, Digital, Magazines, Newspapers, OOH, Search, Social}
}

// IsValid reports whether c names a known channel.
func IsValid(c Channel) bool {
	_, ok := definitions[c]
	return ok
}

// GroupingFields returns the ordered line item field names that form the
// channel's grouping key for schedule export.
func GroupingFields(c Channel) []string {
	return definitions[c].groupingFields
}

// BuyTypes returns the buy types available on the channel.
func BuyTypes(c Channel) []deliverables.BuyType {
	return definitions[c].buyTypes
}

// HasBuyType reports whether the channel offers the given buy type.
func HasBuyType(c Channel, bt deliverables.BuyType) bool {
	for _, known := range definitions[c].buyTypes {
		if known == bt {
			return true
		}
	}
	return false
}
