package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnemyTemplate holds tuning data for an enemy type loaded from YAML.
type EnemyTemplate struct {
	Type            string  `yaml:"type"`
	Health          int     `yaml:"health"`
	Damage          int     `yaml:"damage"`
	Speed           float64 `yaml:"speed"`
	DetectionRadius float64 `yaml:"detection_radius"`
	AttackRadius    float64 `yaml:"attack_radius"`
	AttackCooldown  float64 `yaml:"attack_cooldown"` // seconds
	Size            float64 `yaml:"size"`
}

type enemyListFile struct {
	Enemies []EnemyTemplate `yaml:"enemies"`
}

// EnemyTable holds enemy templates indexed by type.
type EnemyTable struct {
	templates map[string]*EnemyTemplate
}

// LoadEnemyTable loads enemy templates from a YAML file.
func LoadEnemyTable(path string) (*EnemyTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemy list: %w", err)
	}
	return ParseEnemyTable(raw)
}

// ParseEnemyTable decodes an enemy list document.
func ParseEnemyTable(raw []byte) (*EnemyTable, error) {
	var f enemyListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse enemy list: %w", err)
	}
	t := &EnemyTable{templates: make(map[string]*EnemyTemplate, len(f.Enemies))}
	for i := range f.Enemies {
		e := &f.Enemies[i]
		if e.Type == "" {
			return nil, fmt.Errorf("enemy #%d: missing type", i)
		}
		if e.AttackRadius > e.DetectionRadius {
			return nil, fmt.Errorf("enemy %q: attack_radius exceeds detection_radius", e.Type)
		}
		if e.Size <= 0 {
			e.Size = 1
		}
		t.templates[e.Type] = e
	}
	return t, nil
}

// Get returns an enemy template by type, or nil if not found.
func (t *EnemyTable) Get(typ string) *EnemyTemplate {
	return t.templates[typ]
}

// Count returns the number of loaded templates.
func (t *EnemyTable) Count() int {
	return len(t.templates)
}
