package noise

import (
	"math"
	"testing"
)

func TestSampleDeterministic(t *testing.T) {
	f1 := New(12345)
	f2 := New(12345)

	for i := 0; i < 100; i++ {
		x := float64(i) * 0.1
		z := float64(i) * 0.2
		if f1.Sample(x, z) != f2.Sample(x, z) {
			t.Fatalf("Sample not deterministic at (%f, %f)", x, z)
		}
	}
}

func TestSampleRange(t *testing.T) {
	f := New(42)

	for i := 0; i < 10000; i++ {
		x := float64(i)*0.37 - 500
		z := float64(i)*0.53 - 500
		v := f.Sample(x, z)
		if v < -1.0 || v > 1.0 {
			t.Fatalf("Sample(%f, %f) = %f, out of [-1,1]", x, z, v)
		}
	}
}

func TestDifferentSeedsDifferentNoise(t *testing.T) {
	f1 := New(1)
	f2 := New(2)

	different := false
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.1
		z := float64(i) * 0.2
		if f1.Sample(x, z) != f2.Sample(x, z) {
			different = true
			break
		}
	}
	if !different {
		t.Error("different seeds should produce different noise")
	}
}

func TestChannelsUncorrelated(t *testing.T) {
	height := Channel(77, 0)
	temp := Channel(77, 100)

	different := false
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.13
		z := float64(i) * 0.29
		if height.Sample(x, z) != temp.Sample(x, z) {
			different = true
			break
		}
	}
	if !different {
		t.Error("channels derived with different offsets should differ")
	}
}

func TestFractalBounded(t *testing.T) {
	f := New(123)

	// Boundedness must hold regardless of octave count or persistence: the
	// normalization divides by the max possible amplitude sum.
	cases := []struct {
		octaves     int
		persistence float64
		lacunarity  float64
	}{
		{1, 0.5, 2.0},
		{4, 0.5, 2.0},
		{8, 0.5, 2.0},
		{16, 0.9, 2.0},
		{6, 0.3, 3.0},
	}
	for _, tc := range cases {
		for i := 0; i < 1000; i++ {
			x := float64(i)*0.11 - 50
			z := float64(i)*0.23 - 50
			v := f.Fractal(x, z, tc.octaves, 1.0, 1.0, tc.persistence, tc.lacunarity)
			if v < -1.0 || v > 1.0 {
				t.Fatalf("Fractal(octaves=%d, persistence=%f) = %f, out of [-1,1]",
					tc.octaves, tc.persistence, v)
			}
		}
	}
}

func TestFractalZeroOctaves(t *testing.T) {
	f := New(9)
	if v := f.Fractal(1, 2, 0, 1, 1, 0.5, 2); v != 0 {
		t.Errorf("Fractal with 0 octaves = %f, want 0", v)
	}
}

func TestOctaveSmoothness(t *testing.T) {
	f := New(456)

	// Adjacent samples should not differ by more than some reasonable amount.
	prev := f.Octave(0, 0, 4, 0.5)
	step := 0.01
	for i := 1; i < 1000; i++ {
		x := float64(i) * step
		v := f.Octave(x, 0, 4, 0.5)
		if math.Abs(v-prev) > 0.2 {
			t.Fatalf("noise jumped by %f between adjacent samples", math.Abs(v-prev))
		}
		prev = v
	}
}
