package valueobjects

import "fmt"

type Category string

const (
	CategoryTechnical      Category = "technical"
	CategoryBilling        Category = "billing"
	CategoryAccount        Category = "account"
	CategoryFeatureRequest Category = "feature_request"
	CategoryGeneral        Category = "general"
)

var validCategories = map[Category]bool{
	CategoryTechnical:      true,
	CategoryBilling:        true,
	CategoryAccount:        true,
	CategoryFeatureRequest: true,
	CategoryGeneral:        true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
