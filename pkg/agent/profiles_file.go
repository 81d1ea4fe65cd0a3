package agent

import (
	"fmt"
	"os"

	"robi-be/pkg/intent"

	"gopkg.in/yaml.v3"
)

// ProfileOverride replaces parts of a built-in profile. Nil fields keep the default.
type ProfileOverride struct {
	Category          string  `yaml:"category"`
	Template          *string `yaml:"template"`
	PriorityDocument  *string `yaml:"priority_document"`
	ReplaceTranscript *bool   `yaml:"replace_transcript"`
}

type profilesFile struct {
	Profiles []ProfileOverride `yaml:"profiles"`
}

// LoadProfiles reads persona overrides from a YAML file and merges them into base.
// An empty path returns base unchanged. Every resulting template is parsed so a bad
// file fails at startup rather than on the first query.
func LoadProfiles(path string, base map[intent.Category]Profile) (map[intent.Category]Profile, error) {
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}
	return MergeProfiles(data, base)
}

// MergeProfiles applies the YAML document in data on top of base.
func MergeProfiles(data []byte, base map[intent.Category]Profile) (map[intent.Category]Profile, error) {
	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse profiles file: %w", err)
	}

	out := make(map[intent.Category]Profile, len(base))
	for c, p := range base {
		out[c] = p
	}

	for _, o := range file.Profiles {
		category, err := intent.ParseCategory(o.Category)
		if err != nil {
			return nil, err
		}
		p, ok := out[category]
		if !ok {
			p = Profile{Category: category}
		}
		if o.Template != nil {
			p.Template = *o.Template
		}
		if o.PriorityDocument != nil {
			p.PriorityDocument = *o.PriorityDocument
		}
		if o.ReplaceTranscript != nil {
			p.ReplaceTranscript = *o.ReplaceTranscript
		}
		if _, err := p.Parse(); err != nil {
			return nil, err
		}
		out[category] = p
	}
	return out, nil
}

// PriorityDocuments lists the priority document of every profile that has one.
func PriorityDocuments(profiles map[intent.Category]Profile) map[intent.Category]string {
	out := map[intent.Category]string{}
	for c, p := range profiles {
		if p.PriorityDocument != "" {
			out[c] = p.PriorityDocument
		}
	}
	return out
}
