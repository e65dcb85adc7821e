// Package delivery resolves flat-rate shipping fees for Nigerian regions.
// Fees are kobo.
package delivery

import (
	"strings"

	"github.com/Iphycodes/odg/pkg/enums"
)

// Zone A covers northern states close to the Kaduna base; Zone B the middle
// belt and far north; Zone C the south. Entries are canonical lowercase names.
var (
	zoneAStates = []string{
		"kaduna",
		"kano",
		"katsina",
		"abuja federal capital territory",
		"federal capital territory",
		"fct",
		"nasarawa",
		"plateau",
		"niger",
		"bauchi",
		"jigawa",
	}

	zoneBStates = []string{
		"benue",
		"kogi",
		"kwara",
		"taraba",
		"adamawa",
		"gombe",
		"borno",
		"yobe",
		"zamfara",
		"sokoto",
		"kebbi",
	}

	zoneCStates = []string{
		"lagos",
		"ogun",
		"oyo",
		"osun",
		"ondo",
		"ekiti",
		"edo",
		"delta",
		"bayelsa",
		"rivers",
		"akwa ibom",
		"cross river",
		"abia",
		"imo",
		"anambra",
		"enugu",
		"ebonyi",
	}
)

const (
	zoneAFee   int64 = 300000
	zoneBFee   int64 = 500000
	zoneCFee   int64 = 800000
	defaultFee int64 = 500000
)

// Quote is the resolved fee tier for a region.
type Quote struct {
	Zone  enums.DeliveryZone `json:"zone"`
	Label string             `json:"label"`
	Fee   int64              `json:"fee"`
}

// Resolve maps a free-text region name to a fee tier. Matching is
// case-insensitive and tolerates a trailing "State" suffix plus minor
// naming variations ("FCT", "Abuja Federal Capital Territory"). Unknown
// regions fall back to the standard tier; an empty region resolves to the
// default fee with no label.
func Resolve(region string) Quote {
	normalized := normalize(region)
	if normalized == "" {
		return Quote{Fee: defaultFee}
	}

	switch {
	case matchesZone(normalized, zoneAStates):
		return quoteFor(enums.DeliveryZoneA, zoneAFee)
	case matchesZone(normalized, zoneBStates):
		return quoteFor(enums.DeliveryZoneB, zoneBFee)
	case matchesZone(normalized, zoneCStates):
		return quoteFor(enums.DeliveryZoneC, zoneCFee)
	}
	return quoteFor(enums.DeliveryZoneStandard, defaultFee)
}

// Fee returns just the fee for a region.
func Fee(region string) int64 {
	return Resolve(region).Fee
}

func quoteFor(zone enums.DeliveryZone, fee int64) Quote {
	return Quote{Zone: zone, Label: zone.Label(), Fee: fee}
}

func normalize(region string) string {
	normalized := strings.ToLower(strings.TrimSpace(region))
	normalized = strings.TrimSuffix(normalized, "state")
	return strings.TrimSpace(normalized)
}

// matchesZone uses bidirectional substring containment so that both
// "akwa" (shorter than the canonical name) and "rivers state axis"
// (longer) land in the right tier.
func matchesZone(normalized string, states []string) bool {
	for _, state := range states {
		if strings.Contains(normalized, state) || strings.Contains(state, normalized) {
			return true
		}
	}
	return false
}
