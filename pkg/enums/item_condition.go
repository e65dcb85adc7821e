package enums

import "fmt"

// ItemCondition describes the grading of a catalog item.
type ItemCondition string

const (
	ItemConditionNew      ItemCondition = "New"
	ItemConditionUKUsed   ItemCondition = "Uk Used"
	ItemConditionUsed     ItemCondition = "Used"
	ItemConditionRefurbed ItemCondition = "Refurbished"
)

var validItemConditions = []ItemCondition{
	ItemConditionNew,
	ItemConditionUKUsed,
	ItemConditionUsed,
	ItemConditionRefurbed,
}

// String implements fmt.Stringer.
func (i ItemCondition) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ItemCondition.
func (i ItemCondition) IsValid() bool {
	for _, candidate := range validItemConditions {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemCondition converts raw input into an ItemCondition.
func ParseItemCondition(value string) (ItemCondition, error) {
	for _, candidate := range validItemConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item condition %q", value)
}
