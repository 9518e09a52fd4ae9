package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shading"
)

func TestKindText(t *testing.T) {
	for _, k := range []Kind{KindStar, KindPlanet, KindMoon} {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", k, err)
		}
		var got Kind
		if err := got.UnmarshalText(text); err != nil || got != k {
			t.Errorf("round trip of %v gave %v, %v", k, got, err)
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("comet")); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("comet: err = %v, want ErrUnknownKind", err)
	}
	if _, err := Kind(7).MarshalText(); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Kind(7): err = %v, want ErrUnknownKind", err)
	}
	if Kind(7).String() != "Kind(7)" {
		t.Errorf("String() = %q", Kind(7).String())
	}
}

func TestUpdateKepler(t *testing.T) {
	s := NewSystem("test")
	sun := s.Add(NewStar("sun", 1))
	near := s.Add(NewPlanet("near", sun, 4, 1, 0.5, shading.Rocky, 0))
	far := s.Add(NewPlanet("far", sun, 16, 1, 0.5, shading.Rocky, 0))

	s.Update(1)

	tests := []struct {
		idx   int
		angle float64
	}{
		{near, 1 / math.Sqrt(4)},
		{far, 1 / math.Sqrt(16)},
	}
	for _, tc := range tests {
		b := s.Bodies[tc.idx]
		if math.Abs(b.OrbitAngle-tc.angle) > 1e-12 {
			t.Errorf("%s: angle = %v, want %v", b.Name, b.OrbitAngle, tc.angle)
		}
		want := math3d.V3(b.OrbitRadius*math.Cos(tc.angle), 0, b.OrbitRadius*math.Sin(tc.angle))
		if b.Position.Sub(want).Len() > 1e-12 {
			t.Errorf("%s: position = %v, want %v", b.Name, b.Position, want)
		}
	}
}

func TestUpdateHierarchy(t *testing.T) {
	s := NewSystem("test")
	sun := s.Add(NewStar("sun", 1))
	planet := s.Add(NewPlanet("planet", sun, 10, 0.5, 1, shading.CloudPlanet, 0.3))
	moon := s.Add(NewMoon("moon", planet, 1.5, 0.2, 0.2, shading.Rocky))

	for range 240 {
		s.Update(1.0 / 60)
		p, m := s.Bodies[planet].Position, s.Bodies[moon].Position
		if d := m.Distance(p); math.Abs(d-1.5) > 1e-9 {
			t.Fatalf("moon %v from its planet, want 1.5", d)
		}
		if m.Y != p.Y {
			t.Fatalf("moon left the planet's plane")
		}
	}
	if s.Bodies[sun].Position != (math3d.Vec3{}) {
		t.Errorf("root body moved to %v", s.Bodies[sun].Position)
	}
	if math.Abs(s.Time-4) > 1e-9 {
		t.Errorf("time = %v, want 4", s.Time)
	}
}

func TestUpdateSpin(t *testing.T) {
	s := NewSystem("test")
	sun := s.Add(NewStar("sun", 1))
	planet := s.Add(NewPlanet("planet", sun, 5, 0, 1, shading.Rocky, 0))
	moon := s.Add(NewMoon("moon", planet, 2, 0, 0.3, shading.Rocky))

	s.Update(2)

	tests := []struct {
		idx  int
		want float64
	}{
		{sun, 2 * starSpin},
		{planet, 2 * (planetSpin + planetExtraSpin)},
		{moon, 2 * moonSpin},
	}
	for _, tc := range tests {
		if got := s.Bodies[tc.idx].Rotation.Y; math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("%s: rotation.y = %v, want %v", s.Bodies[tc.idx].Name, got, tc.want)
		}
	}
}

func TestMoonDoublesSpeed(t *testing.T) {
	m := NewMoon("m", 0, 1, 0.15, 0.1, shading.Rocky)
	if m.OrbitSpeed != 0.3 || m.OrbitAngle != 0 || m.Kind != KindMoon {
		t.Errorf("moon = %+v", m)
	}
}

func TestValidate(t *testing.T) {
	star := NewStar("sun", 1)
	planet := NewPlanet("p", 0, 5, 0.1, 1, shading.Rocky, 0)

	tests := []struct {
		name   string
		bodies []Body
		want   error
	}{
		{"empty", nil, ErrNoBodies},
		{"ok", []Body{star, planet}, nil},
		{"forward parent", []Body{func() Body { b := planet; b.Parent = 1; return b }(), star}, ErrParentOrder},
		{"self parent", []Body{star, func() Body { b := planet; b.Parent = 1; return b }()}, ErrParentOrder},
		{"missing parent", []Body{star, func() Body { b := planet; b.Parent = 9; return b }()}, ErrUnknownParent},
		{"duplicate", []Body{star, star}, ErrDuplicateName},
		{"zero scale", []Body{func() Body { b := star; b.Scale = 0; return b }()}, ErrBadScale},
		{"bad material", []Body{func() Body { b := star; b.Material = 42; return b }()}, shading.ErrUnknownMaterial},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &System{Bodies: tc.bodies}
			err := s.Validate()
			if tc.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name   string
		bodies int
		stars  int
		moons  int
		rings  int
	}{
		{"alien", 8, 2, 3, 0},
		{"basic", 9, 1, 3, 1},
	}

	if names := PresetNames(); len(names) != len(tests) || names[0] != "alien" || names[1] != "basic" {
		t.Fatalf("PresetNames() = %v", names)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Preset(tc.name, 1)
			if err != nil {
				t.Fatal(err)
			}
			if err := s.Validate(); err != nil {
				t.Fatalf("preset does not validate: %v", err)
			}
			if s.Len() != tc.bodies {
				t.Errorf("bodies = %d, want %d", s.Len(), tc.bodies)
			}
			var stars, moons, rings int
			for _, b := range s.Bodies {
				switch b.Kind {
				case KindStar:
					stars++
				case KindMoon:
					moons++
				}
				if b.Rings {
					rings++
				}
			}
			if stars != tc.stars || moons != tc.moons || rings != tc.rings {
				t.Errorf("stars %d moons %d rings %d", stars, moons, rings)
			}

			again, _ := Preset(tc.name, 1)
			other, _ := Preset(tc.name, 2)
			same, differs := true, false
			for i := range s.Bodies {
				if s.Bodies[i].OrbitAngle != again.Bodies[i].OrbitAngle {
					same = false
				}
				if s.Bodies[i].OrbitAngle != other.Bodies[i].OrbitAngle {
					differs = true
				}
			}
			if !same {
				t.Error("same seed gave different starting angles")
			}
			if !differs {
				t.Error("different seeds gave identical starting angles")
			}
		})
	}

	if _, err := Preset("andromeda", 1); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
}

func TestSceneObjects(t *testing.T) {
	s := Basic(5)
	s.Update(0.5)

	for i := range s.Len() {
		model, obj := s.Object(i)
		b := s.Bodies[i]
		if model != math3d.ModelMatrix(b.Position, b.Scale, b.Rotation) {
			t.Errorf("body %d: model matrix mismatch", i)
		}
		if obj.Material != b.Material || obj.Rings != b.Rings {
			t.Errorf("body %d: object %+v", i, obj)
		}
		if got := model.Translation(); got.Sub(b.Position).Len() > 1e-12 {
			t.Errorf("body %d: translation %v, want %v", i, got, b.Position)
		}
	}

	orbits := 0
	s.Orbits(func(center math3d.Vec3, radius float64) {
		orbits++
		if radius <= 0 {
			t.Errorf("orbit with radius %v", radius)
		}
	})
	if orbits != s.Len()-1 {
		t.Errorf("orbits = %d, want %d", orbits, s.Len()-1)
	}
}

func BenchmarkUpdate(b *testing.B) {
	s := Basic(1)
	for b.Loop() {
		s.Update(1.0 / 60)
	}
}
