package model

// AppConfig holds application-level preferences persisted between sessions.
type AppConfig struct {
	RecentProjects []string          `json:"recent_projects"`
	DefaultParams  CuttingParameters `json:"default_params"`
	MaxRecent      int               `json:"max_recent"`
}

// DefaultAppConfig returns the configuration used on first start.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		RecentProjects: []string{},
		DefaultParams:  DefaultParameters(),
		MaxRecent:      10,
	}
}

// AddRecentProject records a project path at the front of the recent list,
// de-duplicating and trimming to MaxRecent.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	max := c.MaxRecent
	if max <= 0 {
		max = 10
	}
	if len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}
