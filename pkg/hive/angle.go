package hive

import (
	"math"

	"github.com/matzehuels/hiveplot/pkg/errors"
)

// MajorAngle returns the angular separation between axes: 2π / numGroups.
func MajorAngle(numGroups int) float64 {
	return 2 * math.Pi / float64(numGroups)
}

// DefaultMinorAngle returns the default duplication offset: 2π / (6·numGroups).
func DefaultMinorAngle(numGroups int) float64 {
	return 2 * math.Pi / float64(6*numGroups)
}

// MajorAngle returns the angle between consecutive group axes.
func (p *Plot) MajorAngle() float64 { return p.majorAngle }

// MinorAngle returns the offset of duplicated axes from their base angle.
func (p *Plot) MinorAngle() float64 { return p.minorAngle }

// SetMinorAngle overrides the minor angle. It must be positive and
// strictly less than the major angle.
//
// SetMinorAngle must not be called concurrently with other methods.
func (p *Plot) SetMinorAngle(angle float64) error {
	if math.IsNaN(angle) || angle <= 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "minor angle must be positive, got %v", angle)
	}
	if angle >= p.majorAngle {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"minor angle %.6f must be less than the major angle %.6f", angle, p.majorAngle)
	}
	p.minorAngle = angle
	return nil
}

// GroupAngle returns the base angle of a group's axis before any
// duplication offset.
func (p *Plot) GroupAngle(group string) (float64, error) {
	i, err := p.groupIdx(group)
	if err != nil {
		return 0, err
	}
	return p.baseAngle(i), nil
}

func (p *Plot) baseAngle(i int) float64 {
	return float64(i) * p.majorAngle
}

// wrapNegative maps a negative angle onto its positive equivalent.
func wrapNegative(angle float64) float64 {
	if angle < 0 {
		return 2*math.Pi + angle
	}
	return angle
}
