package seeding

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/utils"
)

//go:embed fixtures/*.json
var fixtures embed.FS

const (
	defaultPropertyFixture      = "fixtures/properties.json"
	defaultSavedPropertyFixture = "fixtures/saved_properties.json"
)

// LoadProperties reads the property fixture at path, or the embedded
// default fixture when path is empty. Duplicate ids fail the load.
func LoadProperties(path string) ([]*models.Property, error) {
	var props []*models.Property
	if err := readFixture(path, defaultPropertyFixture, &props); err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}

	seen := make(map[string]struct{}, len(props))
	for i, p := range props {
		if p == nil {
			return nil, fmt.Errorf("load properties: entry %d is null", i)
		}
		if p.ID == "" {
			return nil, fmt.Errorf("load properties: entry %d has no id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("load properties: duplicate id %q", p.ID)
		}
		seen[p.ID] = struct{}{}

		if !p.PropertyType.IsValid() {
			utils.Logger.Warnf("seeding: property id=%s has unknown type %q", p.ID, p.PropertyType)
		}
	}
	return props, nil
}

// LoadSavedProperties reads the saved-property fixture at path, or the
// embedded default when path is empty.
func LoadSavedProperties(path string) ([]*models.SavedProperty, error) {
	var saved []*models.SavedProperty
	if err := readFixture(path, defaultSavedPropertyFixture, &saved); err != nil {
		return nil, fmt.Errorf("load saved properties: %w", err)
	}

	seenID := make(map[string]struct{}, len(saved))
	seenProperty := make(map[string]struct{}, len(saved))
	for i, sp := range saved {
		if sp == nil || sp.ID == "" {
			return nil, fmt.Errorf("load saved properties: entry %d has no id", i)
		}
		if _, dup := seenID[sp.ID]; dup {
			return nil, fmt.Errorf("load saved properties: duplicate id %q", sp.ID)
		}
		if _, dup := seenProperty[sp.PropertyID]; dup {
			return nil, fmt.Errorf("load saved properties: property %q saved more than once", sp.PropertyID)
		}
		seenID[sp.ID] = struct{}{}
		seenProperty[sp.PropertyID] = struct{}{}
	}
	return saved, nil
}

func readFixture(path, fallback string, out any) error {
	var (
		raw []byte
		err error
	)
	if path == "" {
		path = fallback
		raw, err = fixtures.ReadFile(fallback)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, out)
	default:
		err = json.Unmarshal(raw, out)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
