package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Placement defaults applied to new plans
	DefaultChairDepth float64       `json:"default_chair_depth"` // mm behind each table edge
	DefaultPattern    LayoutPattern `json:"default_pattern"`
	SnapThreshold     float64       `json:"snap_threshold"` // px, rectilinear snapping
	ServiceFeePct     float64       `json:"service_fee_pct"`

	// Application preferences
	RecentPlans []string `json:"recent_plans"`
	Theme       string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultChairDepth: 600,
		DefaultPattern:    PatternStandard,
		SnapThreshold:     20,
		ServiceFeePct:     0,
		RecentPlans:       []string{},
		Theme:             "system",
	}
}
