package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version     string      `yaml:"version" json:"version"`
	Server      Server      `yaml:"server" json:"server"`
	Storage     Storage     `yaml:"storage" json:"storage"`
	Subjects    Subjects    `yaml:"subjects" json:"subjects"`
	Assignments Assignments `yaml:"assignments" json:"assignments"`
}

type Server struct {
	Addr string `yaml:"addr" json:"addr"`
}

type Storage struct {
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

type Subjects struct {
	// Palette is the closed set of subject colors. Each color may be used
	// by at most one subject at a time.
	Palette []string `yaml:"palette" json:"palette"`
}

type Assignments struct {
	// SpecialKeywords flag an assignment as special when its name contains
	// one of them as a whole word, case-insensitively.
	SpecialKeywords []string `yaml:"special_keywords" json:"special_keywords"`

	// DueSoonDays is the inclusive upper bound of the due-soon window.
	DueSoonDays int `yaml:"due_soon_days" json:"due_soon_days"`
}

// DefaultPalette matches the ten swatches the UI offers.
var DefaultPalette = []string{
	"#B58463", "#845C66", "#6D4C41", "#8D6E63", "#3E2723",
	"#556B2F", "#8B4513", "#BC8F8F", "#607D8B", "#778899",
}

var DefaultSpecialKeywords = []string{"quiz", "exam", "midterm"}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8650"
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if len(c.Subjects.Palette) == 0 {
		c.Subjects.Palette = append([]string(nil), DefaultPalette...)
	}
	if len(c.Assignments.SpecialKeywords) == 0 {
		c.Assignments.SpecialKeywords = append([]string(nil), DefaultSpecialKeywords...)
	}
	if c.Assignments.DueSoonDays <= 0 {
		c.Assignments.DueSoonDays = 3
	}
}

func Default() *Config {
	var c Config
	c.ApplyDefaults()
	return &c
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}
