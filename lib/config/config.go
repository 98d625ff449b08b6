/*package config reads analysis parameters from gcfg-style config files. The
library itself never touches the file system outside this package: the
structs here are plain data that callers pass down to the numerical
components.
*/
package config

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/ovitrac/Pizza3-sub001/lib/forcefield"
	"github.com/ovitrac/Pizza3-sub001/lib/kernel"
)

const ExampleAnalysisFile = `[Viscosity]

#######################
# Required Parameters #
#######################

# SmoothingLength is the kernel support radius h, in simulation length units.
SmoothingLength = 1.5

# SoundSpeed is the sound speed c0 of the artificial viscosity model.
SoundSpeed = 10.0

# ReferenceDensity is the reference density rho0.
ReferenceDensity = 1000.0

# Mass is the particle mass.
Mass = 1.0

#######################
# Optional Parameters #
#######################

# Q1 is the linear artificial viscosity coefficient. Default is 1.
# Q1 = 1.0

# Kernel selects the smoothing kernel: lucy, cubic-spline, or poly6.
# Default is lucy.
# Kernel = lucy

# Dim is the spatial dimension, 2 or 3. Default is 3.
# Dim = 3

[Grid]

# Periodic flags per axis. Default is false everywhere.
# PeriodicX = true
# PeriodicY = true
# PeriodicZ = true

# Per-axis padding cutoffs. Zero or unset selects the default
# spacing*pointCount^(1/d)/4.
# CutoffX = 0
# CutoffY = 0
# CutoffZ = 0`

// ViscosityConfig holds the parameters of the dissipative force model.
type ViscosityConfig struct {
	// Required
	SmoothingLength, SoundSpeed, ReferenceDensity, Mass float64
	// Optional
	Q1  float64
	Kernel string
	Dim int
}

// GridConfig holds the periodic padding parameters.
type GridConfig struct {
	PeriodicX, PeriodicY, PeriodicZ bool
	CutoffX, CutoffY, CutoffZ       float64
}

// Analysis is the top-level config structure. Its fields map to the
// [Viscosity] and [Grid] sections.
type Analysis struct {
	Viscosity ViscosityConfig
	Grid      GridConfig
}

// Default returns an Analysis with every optional parameter set to its
// default, ready to be overwritten by a config file.
func Default() *Analysis {
	return &Analysis{
		Viscosity: ViscosityConfig{Q1: 1, Kernel: "lucy", Dim: 3},
	}
}

func (v *ViscosityConfig) ValidSmoothingLength() bool {
	return v.SmoothingLength > 0
}
func (v *ViscosityConfig) ValidSoundSpeed() bool {
	return v.SoundSpeed > 0
}
func (v *ViscosityConfig) ValidReferenceDensity() bool {
	return v.ReferenceDensity > 0
}
func (v *ViscosityConfig) ValidMass() bool {
	return v.Mass > 0
}
func (v *ViscosityConfig) ValidKernel() bool {
	switch strings.ToLower(v.Kernel) {
	case "lucy", "cubic-spline", "poly6":
		return true
	}
	return false
}
func (v *ViscosityConfig) ValidDim() bool {
	return v.Dim == 2 || v.Dim == 3
}

// Validate checks every parameter and returns an error naming the first
// invalid one.
func (a *Analysis) Validate() error {
	v := &a.Viscosity
	switch {
	case !v.ValidSmoothingLength():
		return fmt.Errorf("SmoothingLength is %g, but must be positive.",
			v.SmoothingLength)
	case !v.ValidSoundSpeed():
		return fmt.Errorf("SoundSpeed is %g, but must be positive.",
			v.SoundSpeed)
	case !v.ValidReferenceDensity():
		return fmt.Errorf("ReferenceDensity is %g, but must be positive.",
			v.ReferenceDensity)
	case !v.ValidMass():
		return fmt.Errorf("Mass is %g, but must be positive.", v.Mass)
	case !v.ValidKernel():
		return fmt.Errorf("Kernel is '%s', but must be one of 'lucy', "+
			"'cubic-spline', or 'poly6'.", v.Kernel)
	case !v.ValidDim():
		return fmt.Errorf("Dim is %d, but must be 2 or 3.", v.Dim)
	}
	return nil
}

// ReadFile reads and validates an Analysis from a config file.
func ReadFile(fname string) (*Analysis, error) {
	a := Default()
	if err := gcfg.ReadFileInto(a, fname); err != nil {
		return nil, fmt.Errorf("Could not read the config file '%s': %s",
			fname, err.Error())
	}
	if err := a.Validate(); err != nil { return nil, err }
	return a, nil
}

// ReadString reads and validates an Analysis from config text.
func ReadString(text string) (*Analysis, error) {
	a := Default()
	if err := gcfg.ReadStringInto(a, text); err != nil {
		return nil, fmt.Errorf("Could not parse the config text: %s",
			err.Error())
	}
	if err := a.Validate(); err != nil { return nil, err }
	return a, nil
}

// ForceConfig converts the [Viscosity] section into a bound forcefield
// configuration.
func (a *Analysis) ForceConfig() (*forcefield.Config, error) {
	if err := a.Validate(); err != nil { return nil, err }
	v := &a.Viscosity

	var k kernel.Kernel
	switch strings.ToLower(v.Kernel) {
	case "lucy":
		k = kernel.Lucy(v.SmoothingLength, v.Dim)
	case "cubic-spline":
		k = kernel.CubicSpline(v.SmoothingLength, v.Dim)
	case "poly6":
		k = kernel.Poly6(v.SmoothingLength, v.Dim)
	}

	return &forcefield.Config{
		Kernel: k,
		C0:     v.SoundSpeed,
		Q1:     v.Q1,
		Rho0:   v.ReferenceDensity,
		Mass:   v.Mass,
	}, nil
}

// PeriodicFlags expands the [Grid] section into a per-axis flag array of
// the given dimension.
func (a *Analysis) PeriodicFlags(dim int) []bool {
	flags := []bool{a.Grid.PeriodicX, a.Grid.PeriodicY, a.Grid.PeriodicZ}
	return flags[:dim]
}

// Cutoffs expands the [Grid] section into a per-axis cutoff array of the
// given dimension. Zero entries select the padding default.
func (a *Analysis) Cutoffs(dim int) []float64 {
	cutoffs := []float64{a.Grid.CutoffX, a.Grid.CutoffY, a.Grid.CutoffZ}
	return cutoffs[:dim]
}
