package enums

// DeliveryZone is one of the flat-rate shipping tiers keyed by region name.
type DeliveryZone string

const (
	DeliveryZoneA        DeliveryZone = "zone_a"
	DeliveryZoneB        DeliveryZone = "zone_b"
	DeliveryZoneC        DeliveryZone = "zone_c"
	DeliveryZoneStandard DeliveryZone = "standard"
)

// String implements fmt.Stringer.
func (d DeliveryZone) String() string {
	return string(d)
}

// Label returns the human-readable zone description shown to shoppers.
func (d DeliveryZone) Label() string {
	switch d {
	case DeliveryZoneA:
		return "Zone A (Northern - Near base)"
	case DeliveryZoneB:
		return "Zone B (Middle belt / Far North)"
	case DeliveryZoneC:
		return "Zone C (Southern)"
	case DeliveryZoneStandard:
		return "Standard"
	}
	return ""
}
