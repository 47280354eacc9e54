package config

// Pymanfile represents the structure of the pyman.yaml configuration file.
type Pymanfile struct {
	Version  string                `yaml:"version"`
	BasePath string                `yaml:"base_path"`
	Python   string                `yaml:"python"`
	Registry string                `yaml:"registry"`
	State    string                `yaml:"state"`
	Projects map[string]ProjectDTO `yaml:"projects"`
}

// ProjectDTO represents a project definition in the configuration.
type ProjectDTO struct {
	// Python overrides the interpreter for this project only.
	Python   string   `yaml:"python"`
	Packages []string `yaml:"packages"`
}
