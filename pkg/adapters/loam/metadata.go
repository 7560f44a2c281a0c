package loam

// ScenarioMetadata is the frontmatter of a scenario document. The scenario
// itself (fps, duration, modes, steps) is the YAML body.
type ScenarioMetadata struct {
	Name        string   `json:"name" mapstructure:"name"`
	Description string   `json:"description" mapstructure:"description"`
	Tags        []string `json:"tags" mapstructure:"tags"`
}
