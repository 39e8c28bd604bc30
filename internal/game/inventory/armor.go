package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ArmorDef defines the static properties of a wearable armor piece loaded from YAML.
type ArmorDef struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Coverage    []BodyPart `yaml:"covers"`
	Encumbrance int        `yaml:"encumbrance"`
	Bash        int        `yaml:"bash"` // bash protection
	Cut         int        `yaml:"cut"`  // cut protection
	Materials   []string   `yaml:"materials"`
}

// Covers reports whether the piece covers part.
func (a *ArmorDef) Covers(part BodyPart) bool {
	for _, p := range a.Coverage {
		if p == part {
			return true
		}
	}
	return false
}

// Validate reports an error if the ArmorDef is missing required fields or contains illegal values.
// Precondition: def is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (a *ArmorDef) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if len(a.Coverage) == 0 {
		errs = append(errs, errors.New("covers must list at least one body part"))
	}
	for _, p := range a.Coverage {
		if _, ok := validBodyParts[p]; !ok {
			errs = append(errs, fmt.Errorf("covers: %q is not a valid body part", p))
		}
	}
	if a.Encumbrance < 0 {
		errs = append(errs, errors.New("encumbrance must be >= 0"))
	}
	if a.Bash < 0 || a.Cut < 0 {
		errs = append(errs, errors.New("bash and cut protection must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("armor validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// LoadArmors reads all .yaml files in dir and returns parsed ArmorDef slice.
// Precondition: dir must be a readable directory.
// Postcondition: Returns non-nil slice and nil error on success; all returned defs pass Validate.
func LoadArmors(dir string) ([]*ArmorDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadArmors: cannot read directory %q: %w", dir, err)
	}

	var armors []*ArmorDef
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadArmors: cannot read file %q: %w", path, err)
		}
		var a ArmorDef
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("LoadArmors: cannot parse file %q: %w", path, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("LoadArmors: invalid armor in %q: %w", path, err)
		}
		armors = append(armors, &a)
	}
	if armors == nil {
		armors = []*ArmorDef{}
	}
	return armors, nil
}
