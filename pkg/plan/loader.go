package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type planFile struct {
	Steps []stepFile `json:"steps" yaml:"steps"`
}

type stepFile struct {
	Name    string   `json:"name" yaml:"name"`
	Names   []string `json:"names" yaml:"names"`
	Checked *bool    `json:"checked" yaml:"checked"`
}

// Load reads and parses the plan at path inside fsys.
func Load(fsys fs.FS, path string) (Plan, error) {
	if fsys == nil {
		return Plan{}, fmt.Errorf("plan: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Plan{}, fmt.Errorf("plan: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a plan. Files ending in .json are decoded strictly as JSON;
// anything else is decoded as YAML, which also accepts JSON documents.
func Parse(data []byte, source string) (Plan, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Plan{}, fmt.Errorf("%w: %s", ErrEmptyFile, source)
	}

	var raw planFile
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return Plan{}, fmt.Errorf("plan: parse %s: %w", source, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil {
			return Plan{}, fmt.Errorf("plan: parse %s: %w", source, err)
		}
	}

	p := Plan{Source: source, Steps: make([]Step, 0, len(raw.Steps))}
	for idx, s := range raw.Steps {
		if s.Checked == nil {
			return Plan{}, fmt.Errorf("plan: %s step %d: %w: checked is required", source, idx, ErrInvalidStep)
		}
		step := Step{
			Name:    s.Name,
			Names:   s.Names,
			Checked: *s.Checked,
		}
		if err := step.Validate(); err != nil {
			return Plan{}, fmt.Errorf("plan: %s step %d: %w", source, idx, err)
		}
		p.Steps = append(p.Steps, step)
	}
	return p, nil
}
