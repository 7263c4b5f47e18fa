package plan

import (
	"fmt"
	"os"
	"slices"

	"fitctl/pkg/catalog"

	"gopkg.in/yaml.v3"
)

// Selection is a student's chosen course keys per plan slot
type Selection struct {
	Spec         string                      `yaml:"spec,omitempty"`
	ExtraCredits int                         `yaml:"extra_credits,omitempty"`
	Semesters    [catalog.SlotCount][]string `yaml:"semesters"`
}

// LoadSelection reads a selection plan from a YAML file
func LoadSelection(path string) (*Selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	// Decode through a slice so a plan with more than four semesters is rejected
	var raw struct {
		Spec         string     `yaml:"spec"`
		ExtraCredits int        `yaml:"extra_credits"`
		Semesters    [][]string `yaml:"semesters"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}
	if len(raw.Semesters) > catalog.SlotCount {
		return nil, fmt.Errorf("plan has %d semesters, at most %d are supported", len(raw.Semesters), catalog.SlotCount)
	}
	if raw.ExtraCredits < 0 {
		return nil, fmt.Errorf("extra credits cannot be negative")
	}

	sel := &Selection{Spec: raw.Spec, ExtraCredits: raw.ExtraCredits}
	copy(sel.Semesters[:], raw.Semesters)
	return sel, nil
}

// Save writes the selection plan as YAML
func (s *Selection) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to serialize plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}

// RequiredSelection is the plan made of a specialization's mandatory courses only
func RequiredSelection(spec catalog.Specialization) Selection {
	var sel Selection
	sel.Spec = spec.Abbrv
	for i, slot := range spec.Req {
		sel.Semesters[i] = slices.Clone(slot)
	}
	return sel
}

// WithRequired returns a copy of the selection with the specialization's
// mandatory courses prepended to each slot. Courses already listed in a slot
// are not repeated.
func (s Selection) WithRequired(spec catalog.Specialization) Selection {
	out := RequiredSelection(spec)
	out.ExtraCredits = s.ExtraCredits
	for i, slot := range s.Semesters {
		for _, c := range slot {
			if !slices.Contains(out.Semesters[i], c) {
				out.Semesters[i] = append(out.Semesters[i], c)
			}
		}
	}
	return out
}
