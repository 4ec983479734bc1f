package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dynresp/internal/dynamo"
)

const (
	DefaultMass      = 1.0
	DefaultDamping   = 0.1
	DefaultStiffness = 1.0
	DefaultLoad      = 1.0
	DefaultWidth     = 80
	DefaultHeight    = 15

	WindowLiteral = "literal"
	WindowNatural = "natural"

	StyleLine    = "line"
	StyleBraille = "braille"
)

type Config struct {
	System dynamo.SystemParameters `yaml:"system"`
	Window WindowConfig            `yaml:"window"`
	Plot   PlotConfig              `yaml:"plot"`
}

// WindowConfig selects the sampled time range. The literal mode spans half
// of 2π seconds regardless of the system; the natural mode spans half of
// the natural period 2π/ωn.
type WindowConfig struct {
	Mode string  `yaml:"mode"`
	Step float64 `yaml:"step"`
}

type PlotConfig struct {
	Title  string `yaml:"title"`
	Style  string `yaml:"style"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Grid   bool   `yaml:"grid"`
	SVG    string `yaml:"svg,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		System: dynamo.SystemParameters{
			Mass:      DefaultMass,
			Damping:   DefaultDamping,
			Stiffness: DefaultStiffness,
			Load:      DefaultLoad,
		},
		Window: WindowConfig{
			Mode: WindowLiteral,
			Step: dynamo.DefaultStep,
		},
		Plot: PlotConfig{
			Title:  "Total Response",
			Style:  StyleLine,
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Grid:   true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() dynamo.SystemParameters {
	return c.System
}

// ResolveWindow resolves the configured window for a system with modal properties m.
func (c *Config) ResolveWindow(m dynamo.ModalProperties) (dynamo.Window, error) {
	step := c.Window.Step
	if step == 0 {
		step = dynamo.DefaultStep
	}

	var w dynamo.Window
	switch c.Window.Mode {
	case "", WindowLiteral:
		w = dynamo.DefaultWindow()
		w.Step = step
	case WindowNatural:
		w = dynamo.NaturalWindow(m, step)
	default:
		return dynamo.Window{}, fmt.Errorf("unknown window mode: %s (available: %s, %s)", c.Window.Mode, WindowLiteral, WindowNatural)
	}

	if err := w.Validate(); err != nil {
		return dynamo.Window{}, err
	}
	return w, nil
}
