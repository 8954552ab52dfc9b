// Package picker implements the geometry and interaction model of the HSV
// color picker: a hue ring around a saturation/value square.
package picker

// Default widget configuration.
const (
	DefaultSize                   = 400.0
	DefaultInnerRadiusPercentage  = 65.0
	DefaultOuterRadiusPercentage  = 80.0
	DefaultSelectorSizePercentage = 80.0
	DefaultAngleStepSize          = 0.1
)

// Config describes the picker widget geometry. Percentages are not validated;
// out-of-range values produce degenerate (zero-size) regions.
type Config struct {
	Size                   float64 `yaml:"size" json:"size"`
	InnerRadiusPercentage  float64 `yaml:"inner_radius_percentage" json:"inner_radius_percentage"`
	OuterRadiusPercentage  float64 `yaml:"outer_radius_percentage" json:"outer_radius_percentage"`
	SelectorSizePercentage float64 `yaml:"selector_size_percentage" json:"selector_size_percentage"`
	AngleStepSize          float64 `yaml:"angle_step_size,omitempty" json:"angle_step_size,omitempty"` // degrees; 0 = 80/Size
}

// DefaultConfig returns the configuration of a 400px picker.
func DefaultConfig() Config {
	return Config{
		Size:                   DefaultSize,
		InnerRadiusPercentage:  DefaultInnerRadiusPercentage,
		OuterRadiusPercentage:  DefaultOuterRadiusPercentage,
		SelectorSizePercentage: DefaultSelectorSizePercentage,
		AngleStepSize:          DefaultAngleStepSize,
	}
}

// AngleStep returns the hue track resolution in degrees. Without an explicit
// step it is 80/Size, so larger widgets get finer steps.
func (c Config) AngleStep() float64 {
	if c.AngleStepSize > 0 {
		return c.AngleStepSize
	}
	if c.Size <= 0 {
		return 1
	}
	return 80 / c.Size
}
