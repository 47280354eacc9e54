package domain

import "time"

// InstallRecord is the persisted outcome of the last successful setup of a project.
type InstallRecord struct {
	Project string `json:"project,omitzero"`
	// EnvID identifies the interpreter and install plan the environment was built from.
	EnvID string `json:"env_id,omitzero"`
	// RequirementsHash fingerprints the requirements file written after the setup.
	RequirementsHash string `json:"requirements_hash,omitzero"`
	// Packages records the final status of every package in the plan.
	Packages  map[string]VertexStatus `json:"packages,omitzero"`
	Timestamp time.Time               `json:"timestamp,omitzero"`
}
