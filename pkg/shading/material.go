// Package shading turns a lit fragment into a final surface color. Each
// material is a pure function of the fragment's model-space position, the
// lighting color computed by the rasterizer, and the scene time.
package shading

import (
	"errors"
	"fmt"
	"strings"
)

// Material selects the procedural surface used for a body.
type Material int

const (
	Rocky Material = iota
	GasGiant
	Lava
	IceWorld
	CloudPlanet
	Star
	// Rings routes through the dispatcher to the rocky surface. Ring
	// geometry is drawn by the separate RingVertex/RingFragment pass.
	Rings

	numMaterials
)

var materialNames = [numMaterials]string{
	Rocky:       "rocky",
	GasGiant:    "gas_giant",
	Lava:        "lava",
	IceWorld:    "ice",
	CloudPlanet: "cloud",
	Star:        "star",
	Rings:       "rings",
}

// ErrUnknownMaterial is returned when parsing an unrecognised material name.
var ErrUnknownMaterial = errors.New("unknown material")

// Materials returns every material in declaration order.
func Materials() []Material {
	ms := make([]Material, numMaterials)
	for i := range ms {
		ms[i] = Material(i)
	}
	return ms
}

// Valid reports whether m is one of the declared materials.
func (m Material) Valid() bool {
	return m >= 0 && m < numMaterials
}

func (m Material) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Material(%d)", int(m))
	}
	return materialNames[m]
}

// ParseMaterial looks a material up by name. Matching ignores case and
// treats '-' and ' ' like '_'.
func ParseMaterial(name string) (Material, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for i, n := range materialNames {
		if n == key {
			return Material(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Material) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMaterial, int(m))
	}
	return []byte(materialNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, which lets scene files
// name materials directly.
func (m *Material) UnmarshalText(text []byte) error {
	parsed, err := ParseMaterial(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
