package authors

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasesYAML []byte

type aliasFile struct {
	Authors []struct {
		Canonical string   `yaml:"canonical"`
		Aliases   []string `yaml:"aliases"`
	} `yaml:"authors"`
	DetectionOrder []string `yaml:"detection_order"`
}

// aliasTable maps folded alias forms to canonical names. Canonical names
// are self-aliased so Normalize is idempotent.
type aliasTable struct {
	byAlias map[string]string
	// detection holds canonical names in scan priority order, each with
	// its folded aliases longest-first so specific forms match before
	// bare surnames.
	detection []detectionEntry
}

type detectionEntry struct {
	canonical string
	aliases   []string
}

func loadAliasTable() (*aliasTable, error) {
	var file aliasFile
	if err := yaml.Unmarshal(aliasesYAML, &file); err != nil {
		return nil, fmt.Errorf("parse alias table: %w", err)
	}

	t := &aliasTable{byAlias: make(map[string]string)}
	byCanonical := make(map[string][]string)
	for _, a := range file.Authors {
		folded := make([]string, 0, len(a.Aliases)+1)
		for _, alias := range append(a.Aliases, a.Canonical) {
			f := fold(alias)
			t.byAlias[f] = a.Canonical
			folded = append(folded, f)
		}
		byCanonical[a.Canonical] = folded
	}
	for _, canonical := range file.DetectionOrder {
		aliases, ok := byCanonical[canonical]
		if !ok {
			return nil, fmt.Errorf("detection_order names unknown author %q", canonical)
		}
		t.detection = append(t.detection, detectionEntry{canonical, aliases})
	}
	return t, nil
}
