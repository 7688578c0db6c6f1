// Package file loads rosters from a YAML or JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
)

// Name identifies the provider in logs and config.
const Name = "file"

// Provider reads the document at Path on every fetch.
type Provider struct {
	path string
}

// New creates a file provider.
func New(path string) *Provider {
	return &Provider{path: path}
}

type document struct {
	Teams []teams.Team `json:"teams"`
}

// FetchTeams parses the roster document. YAML keys match the JSON field names of the domain
// models, so a YAML document is normalized through JSON before decoding.
func (p *Provider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read rosters: %w", err)
	}

	switch strings.ToLower(filepath.Ext(p.path)) {
	case ".yaml", ".yml":
		var generic any
		if err := yaml.Unmarshal(raw, &generic); err != nil {
			return nil, fmt.Errorf("parse rosters: %w", err)
		}
		if raw, err = json.Marshal(generic); err != nil {
			return nil, fmt.Errorf("normalize rosters: %w", err)
		}
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode rosters: %w", err)
	}
	return doc.Teams, nil
}
