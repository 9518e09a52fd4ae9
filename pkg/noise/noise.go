// Package noise implements the deterministic procedural noise fields used
// by the planet materials: lattice hashing, value and simplex noise,
// fractal sums, cellular distance and domain warping.
//
// Every function is a pure function of its arguments and is safe to call
// concurrently.
package noise

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Hash returns a pseudo-random value in (-1, 1) for p. The fractional part
// keeps the sign of the scaled sine, so negative outputs occur.
func Hash(p math3d.Vec3) float64 {
	h := p.X*127.1 + p.Y*311.7 + p.Z*74.7
	_, frac := math.Modf(math.Sin(h) * 43758.5453)
	return frac
}

// hash01 maps Hash into [0, 1).
func hash01(p math3d.Vec3) float64 {
	return (Hash(p) + 1) * 0.5
}

func ease(t float64) float64 {
	return t * t * (3 - 2*t)
}

// ValueNoise trilinearly blends the lattice hashes of the eight integer
// corners around p.
func ValueNoise(p math3d.Vec3) float64 {
	i := p.Floor()
	f := p.Sub(i)
	u, v, w := ease(f.X), ease(f.Y), ease(f.Z)

	c000 := Hash(i)
	c100 := Hash(i.Add(math3d.V3(1, 0, 0)))
	c010 := Hash(i.Add(math3d.V3(0, 1, 0)))
	c110 := Hash(i.Add(math3d.V3(1, 1, 0)))
	c001 := Hash(i.Add(math3d.V3(0, 0, 1)))
	c101 := Hash(i.Add(math3d.V3(1, 0, 1)))
	c011 := Hash(i.Add(math3d.V3(0, 1, 1)))
	c111 := Hash(i.Add(math3d.V3(1, 1, 1)))

	x00 := lerp(c000, c100, u)
	x10 := lerp(c010, c110, u)
	x01 := lerp(c001, c101, u)
	x11 := lerp(c011, c111, u)

	return lerp(lerp(x00, x10, v), lerp(x01, x11, v), w)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

const (
	skew3   = 1.0 / 3.0
	unskew3 = 1.0 / 6.0
)

// grad3 dots (x, y, z) with one of 16 gradient directions selected by the
// low four bits of h (the 12 cube edge midpoints, four of them repeated).
func grad3(h int, x, y, z float64) float64 {
	h &= 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// latticeIndex turns the hash of a lattice point into an 8-bit index.
func latticeIndex(p math3d.Vec3) int {
	return int(hash01(p)*256) & 255
}

// SimplexNoise evaluates 3D simplex noise at p. The result lies roughly
// in [-1, 1].
func SimplexNoise(p math3d.Vec3) float64 {
	s := (p.X + p.Y + p.Z) * skew3
	i, j, k := math.Floor(p.X+s), math.Floor(p.Y+s), math.Floor(p.Z+s)

	t := (i + j + k) * unskew3
	x0, y0, z0 := p.X-(i-t), p.Y-(j-t), p.Z-(k-t)

	// Offsets of the second and third simplex corners.
	var i1, j1, k1, i2, j2, k2 float64
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, i2, j2 = 1, 1, 1
		case x0 >= z0:
			i1, i2, k2 = 1, 1, 1
		default:
			k1, i2, k2 = 1, 1, 1
		}
	} else {
		switch {
		case y0 < z0:
			k1, j2, k2 = 1, 1, 1
		case x0 < z0:
			j1, j2, k2 = 1, 1, 1
		default:
			j1, i2, j2 = 1, 1, 1
		}
	}

	corners := [4][3]float64{
		{x0, y0, z0},
		{x0 - i1 + unskew3, y0 - j1 + unskew3, z0 - k1 + unskew3},
		{x0 - i2 + 2*unskew3, y0 - j2 + 2*unskew3, z0 - k2 + 2*unskew3},
		{x0 - 1 + 3*unskew3, y0 - 1 + 3*unskew3, z0 - 1 + 3*unskew3},
	}
	cells := [4]math3d.Vec3{
		{X: i, Y: j, Z: k},
		{X: i + i1, Y: j + j1, Z: k + k1},
		{X: i + i2, Y: j + j2, Z: k + k2},
		{X: i + 1, Y: j + 1, Z: k + 1},
	}

	var n float64
	for c := range 4 {
		x, y, z := corners[c][0], corners[c][1], corners[c][2]
		a := 0.6 - x*x - y*y - z*z
		if a < 0 {
			continue
		}
		a *= a
		n += a * a * grad3(latticeIndex(cells[c]), x, y, z)
	}
	return 32 * n
}
