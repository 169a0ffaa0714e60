package valueobjects

import "fmt"

type Tier string

const (
	TierBasic      Tier = "basic"
	TierPremium    Tier = "premium"
	TierEnterprise Tier = "enterprise"
)

var validTiers = map[Tier]bool{
	TierBasic:      true,
	TierPremium:    true,
	TierEnterprise: true,
}

func (t Tier) String() string {
	return string(t)
}

func (t Tier) IsValid() bool {
	return validTiers[t]
}

// PriorityBoost is the tier's contribution to the composite priority
// score of a new issue.
func (t Tier) PriorityBoost() int {
	switch t {
	case TierEnterprise:
		return 2
	case TierPremium:
		return 1
	default:
		return 0
	}
}

func NewTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid customer tier: %s", s)
	}
	return t, nil
}
