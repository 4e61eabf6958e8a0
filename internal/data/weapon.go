package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WeaponTemplate holds tuning data for a weapon type loaded from YAML.
type WeaponTemplate struct {
	Name            string  `yaml:"name"`
	Damage          int     `yaml:"damage"`
	FireRate        float64 `yaml:"fire_rate"` // shots per second
	MaxAmmo         int     `yaml:"max_ammo"`
	ReloadTime      float64 `yaml:"reload_time"` // seconds
	Projectile      string  `yaml:"projectile"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	ProjectileLife  float64 `yaml:"projectile_lifetime"` // seconds
}

type weaponListFile struct {
	Weapons []WeaponTemplate `yaml:"weapons"`
}

// WeaponTable holds weapon templates indexed by name, plus load order.
type WeaponTable struct {
	templates map[string]*WeaponTemplate
	order     []string
}

// LoadWeaponTable loads weapon templates from a YAML file.
func LoadWeaponTable(path string) (*WeaponTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weapon list: %w", err)
	}
	return ParseWeaponTable(raw)
}

// ParseWeaponTable decodes a weapon list document.
func ParseWeaponTable(raw []byte) (*WeaponTable, error) {
	var f weaponListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse weapon list: %w", err)
	}
	t := &WeaponTable{templates: make(map[string]*WeaponTemplate, len(f.Weapons))}
	for i := range f.Weapons {
		w := &f.Weapons[i]
		if w.Name == "" {
			return nil, fmt.Errorf("weapon #%d: missing name", i)
		}
		if _, dup := t.templates[w.Name]; dup {
			return nil, fmt.Errorf("weapon %q: duplicate entry", w.Name)
		}
		if w.FireRate <= 0 || w.MaxAmmo <= 0 {
			return nil, fmt.Errorf("weapon %q: fire_rate and max_ammo must be positive", w.Name)
		}
		t.templates[w.Name] = w
		t.order = append(t.order, w.Name)
	}
	return t, nil
}

// Get returns a weapon template by name, or nil if not found.
func (t *WeaponTable) Get(name string) *WeaponTemplate {
	return t.templates[name]
}

// Names lists weapons in file order.
func (t *WeaponTable) Names() []string {
	return append([]string(nil), t.order...)
}

// Count returns the number of loaded templates.
func (t *WeaponTable) Count() int {
	return len(t.templates)
}
