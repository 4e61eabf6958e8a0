package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vec is a YAML-friendly [x, y, z] triple.
type Vec [3]float64

// PlayerSpawn holds the player's start position, stats and loadout.
type PlayerSpawn struct {
	Position  Vec      `yaml:"position"`
	Yaw       float64  `yaml:"yaw"`
	Health    int      `yaml:"health"`
	Speed     float64  `yaml:"speed"`
	JumpForce float64  `yaml:"jump_force"`
	Size      Vec      `yaml:"size"`
	Loadout   []string `yaml:"loadout"`
}

// Brush is one static geometry box.
type Brush struct {
	Name     string `yaml:"name"`
	Position Vec    `yaml:"position"`
	Size     Vec    `yaml:"size"`
}

// EnemySpawn places one enemy and its optional patrol route.
type EnemySpawn struct {
	Type      string `yaml:"type"`
	Position  Vec    `yaml:"position"`
	Waypoints []Vec  `yaml:"waypoints"`
}

// Level is a playable map.
type Level struct {
	Name     string       `yaml:"name"`
	Player   PlayerSpawn  `yaml:"player"`
	Geometry []Brush      `yaml:"geometry"`
	Enemies  []EnemySpawn `yaml:"enemies"`
}

// LoadLevel loads a level and checks its references against the tables.
func LoadLevel(path string, weapons *WeaponTable, enemies *EnemyTable) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return ParseLevel(raw, weapons, enemies)
}

// ParseLevel decodes a level document.
func ParseLevel(raw []byte, weapons *WeaponTable, enemies *EnemyTable) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(raw, &lvl); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if lvl.Player.Health <= 0 {
		return nil, fmt.Errorf("level %q: player health must be positive", lvl.Name)
	}
	for _, name := range lvl.Player.Loadout {
		if weapons.Get(name) == nil {
			return nil, fmt.Errorf("level %q: unknown weapon %q in loadout", lvl.Name, name)
		}
	}
	for i, s := range lvl.Enemies {
		if enemies.Get(s.Type) == nil {
			return nil, fmt.Errorf("level %q: enemy #%d has unknown type %q", lvl.Name, i, s.Type)
		}
	}
	return &lvl, nil
}
