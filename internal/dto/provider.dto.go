package dto

type ProviderDTO struct {
	ID          uint     `json:"id"`
	FullName    string   `json:"full_name"`
	Category    *string  `json:"category"`
	Bio         *string  `json:"bio"`
	AvatarURL   *string  `json:"avatar_url,omitempty"`
	WorkingDays []string `json:"working_days"`
}

type CategoryCount struct {
	Category *string `json:"category"`
	Count    int64   `json:"count"`
}

type ProviderPopularity struct {
	FullName string `json:"full_name"`
	Count    int64  `json:"count"`
}

type AdminStats struct {
	Users        int64                `json:"users"`
	Appointments int64                `json:"appointments"`
	Categories   []CategoryCount      `json:"categories"`
	Popular      []ProviderPopularity `json:"popular"`
}
