package dto

type ProfileUpdateRequest struct {
	Name        string   `json:"name" validate:"min=2"`
	Bio         *string  `json:"bio" validate:"omitempty,max=500"`
	IntentTags  []string `json:"intentTags"`
	IsPublic    *bool    `json:"isPublic"`
	ProfileLink *string  `json:"profileLink" validate:"omitempty,max=64"`
}

// DiscoverQuery is parsed from the query string, not validated
type DiscoverQuery struct {
	Query string
	Tags  []string
	Page  int
	Limit int
}
