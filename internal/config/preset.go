package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/neon-rain/internal/rain"
	"github.com/iburimskiy/neon-rain/internal/starfield"
	"github.com/iburimskiy/neon-rain/internal/vectorfield"
)

// Preset is the YAML document describing every layer of the scene. Keys that
// are left out keep their defaults.
type Preset struct {
	Title       string              `yaml:"title"`
	Matrix      rain.Options        `yaml:"matrix"`
	Fire        rain.Options        `yaml:"fire"`
	FireEnabled bool                `yaml:"fireEnabled"`
	VectorField vectorfield.Options `yaml:"vectorField"`
	StarField   starfield.Options   `yaml:"starField"`
	Soundtrack  string              `yaml:"soundtrack"`
}

// DefaultPreset mirrors the promotional page: dense matrix rain over the
// whole window and fire rain in the content box. The alphabet sticks to glyphs
// the bundled Go Mono face can draw.
func DefaultPreset() Preset {
	matrix := rain.DefaultOptions(rain.VariantMatrix)
	matrix.Density = 0.5
	matrix.FontSize = 18
	matrix.Alphabet = "01ΑΒΓΔΕΖΗΘΙΚΛΜΝΞΟΠΡΣΤΥΦΧΨΩ<>/\\|=+*"
	matrix.FadeLength = 0.7
	matrix.PointerRadius = 150
	matrix.PointerForce = 2.5

	fire := rain.DefaultOptions(rain.VariantFire)
	fire.Density = 0.6
	fire.FontSize = 16
	fire.Alphabet = "01"
	fire.FadeLength = 0.9

	return Preset{
		Title:       "NEON RAIN",
		Matrix:      matrix,
		Fire:        fire,
		FireEnabled: true,
		VectorField: vectorfield.DefaultOptions(),
		StarField:   starfield.DefaultOptions(),
	}
}

// ParsePreset decodes data on top of DefaultPreset and validates the result.
func ParsePreset(data []byte) (*Preset, error) {
	p := DefaultPreset()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse preset: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid preset: %w", err)
	}
	return &p, nil
}

// LoadPreset reads and validates a YAML preset file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}
	return ParsePreset(data)
}

// Validate checks every layer the way its constructor would.
func (p *Preset) Validate() error {
	var errs []error
	if p.Matrix.Variant != rain.VariantMatrix {
		errs = append(errs, fmt.Errorf("matrix: variant must be %q, got %q", rain.VariantMatrix, p.Matrix.Variant))
	}
	if _, err := rain.Configure(p.Matrix); err != nil {
		errs = append(errs, fmt.Errorf("matrix: %w", err))
	}
	if p.FireEnabled {
		if p.Fire.Variant != rain.VariantFire {
			errs = append(errs, fmt.Errorf("fire: variant must be %q, got %q", rain.VariantFire, p.Fire.Variant))
		}
		if _, err := rain.Configure(p.Fire); err != nil {
			errs = append(errs, fmt.Errorf("fire: %w", err))
		}
	}
	if !(p.VectorField.Spacing > 0) {
		errs = append(errs, fmt.Errorf("vectorField: spacing must be positive, got %v", p.VectorField.Spacing))
	}
	if p.StarField.StarCount < 0 {
		errs = append(errs, fmt.Errorf("starField: starCount must not be negative, got %d", p.StarField.StarCount))
	}
	return errors.Join(errs...)
}
