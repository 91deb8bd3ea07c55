package models

type IntentTag struct {
	ID    string `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name  string `json:"name" gorm:"not null"`
	Color string `json:"color" gorm:"type:varchar(16)"`
}

// DefaultIntentTags is the fixed catalog users pick their intents from
func DefaultIntentTags() []IntentTag {
	return []IntentTag{
		{ID: "yatirim-ariyorum", Name: "#yatırımarıyorum", Color: "#10B981"},
		{ID: "is-ariyorum", Name: "#işarıyorum", Color: "#3B82F6"},
		{ID: "co-founder-ariyorum", Name: "#cofounderarıyorum", Color: "#8B5CF6"},
		{ID: "mentor-ariyorum", Name: "#mentorarıyorum", Color: "#F59E0B"},
		{ID: "freelance-ariyorum", Name: "#freelancearıyorum", Color: "#EF4444"},
		{ID: "partner-ariyorum", Name: "#partnerarıyorum", Color: "#06B6D4"},
		{ID: "network-ariyorum", Name: "#networkarıyorum", Color: "#84CC16"},
		{ID: "musteri-ariyorum", Name: "#müşteriarıyorum", Color: "#F97316"},
	}
}
