package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/tripwrap/internal/models"
)

// Export is a trip with everything recorded under it, as written by the
// web app's export or by hand.
type Export struct {
	Trip           models.Trip            `json:"trip" yaml:"trip"`
	Transactions   []models.Transaction   `json:"transactions,omitempty" yaml:"transactions,omitempty"`
	Media          []models.Media         `json:"media,omitempty" yaml:"media,omitempty"`
	Payments       []models.Payment       `json:"payments,omitempty" yaml:"payments,omitempty"`
	SavedLocations []models.SavedLocation `json:"savedLocations,omitempty" yaml:"savedLocations,omitempty"`
}

// LoadExport reads an export file. Files ending in .yaml or .yml are parsed
// as YAML; anything else as JSON.
func LoadExport(path string) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	var export Export
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &export); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &export); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return &export, nil
}

// members lists the trip members, adding anyone who paid or shared an
// expense but is missing from the member list.
func (e *Export) members() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range e.Trip.Members {
		add(id)
	}
	for _, tx := range e.Transactions {
		add(tx.PaidBy)
		for _, id := range tx.SplitBetween {
			add(id)
		}
	}
	return out
}
