package staticcatalog

import (
	"encoding/json"
	"os"
	"path/filepath"

	"transportgame/internal/domain/industry"
)

// Provider serves building definitions from an optional on-disk catalog,
// falling back to the built-in set for anything the catalog does not cover.
type Provider struct {
	defs map[string]industry.Definition
}

func Defaults() []industry.Definition {
	return []industry.Definition{
		{TypeID: "farm", FootprintWidth: 3, FootprintHeight: 3, MaxHealth: 100, ConstructionSeconds: 30},
		{TypeID: "mine", FootprintWidth: 2, FootprintHeight: 2, MaxHealth: 150, ConstructionSeconds: 45},
		{TypeID: "depot", FootprintWidth: 4, FootprintHeight: 4, MaxHealth: 200, ConstructionSeconds: 60},
		{TypeID: "station", FootprintWidth: 2, FootprintHeight: 4, MaxHealth: 120, ConstructionSeconds: 40},
	}
}

// NewProvider loads catalog.json under root when root is non-empty. A missing
// file is not an error; a malformed one is.
func NewProvider(root string) (Provider, error) {
	defs := map[string]industry.Definition{}
	for _, d := range Defaults() {
		defs[d.TypeID] = d
	}
	if root != "" {
		loaded, err := loadFile(filepath.Join(root, "catalog.json"))
		if err != nil {
			return Provider{}, err
		}
		for _, d := range loaded {
			defs[d.TypeID] = d
		}
	}
	return Provider{defs: defs}, nil
}

func (p Provider) Definition(typeID string) (industry.Definition, bool) {
	d, ok := p.defs[typeID]
	return d, ok
}

func (p Provider) Types() []string {
	out := make([]string, 0, len(p.defs))
	for id := range p.defs {
		out = append(out, id)
	}
	return out
}

func loadFile(path string) ([]industry.Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var defs []industry.Definition
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, err
	}
	return defs, nil
}
