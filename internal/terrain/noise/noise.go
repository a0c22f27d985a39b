package noise

// Simplex noise implementation based on the original algorithm by Ken Perlin.
// Produces values in the range [-1, 1].

// grad2 are gradient vectors for 2D simplex noise.
var grad2 = [12][2]float64{
	{1, 1},
	{-1, 1},
	{1, -1},
	{-1, -1},
	{1, 0},
	{-1, 0},
	{1, 0},
	{-1, 0},
	{0, 1},
	{0, -1},
	{0, 1},
	{0, -1},
}

// Field is a deterministic scalar noise field over continuous 2D coordinates,
// seeded once at construction. It is stateless after construction and safe for
// concurrent reads.
type Field struct {
	perm [512]int
}

// New creates a noise field with a seeded permutation table.
func New(seed int64) *Field {
	f := &Field{}

	// Initialize with identity permutation.
	var p [256]int
	for i := range p {
		p[i] = i
	}

	// Fisher-Yates shuffle with seed-derived random.
	s := seed
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407 // LCG
		j := int((s>>33)&0x7FFFFFFF) % (i + 1)
		if j < 0 {
			j = -j
		}
		p[i], p[j] = p[j], p[i]
	}

	// Double the permutation table for wrapping.
	for i := 0; i < 512; i++ {
		f.perm[i] = p[i&255]
	}
	return f
}

// Channel derives an independent noise field from a master seed. Fields for
// different channels (height, temperature, moisture, shaping) use distinct
// offsets so their signals are uncorrelated.
func Channel(masterSeed, offset int64) *Field {
	return New(masterSeed + offset)
}

// Sample returns 2D simplex noise for the given coordinates.
// Output is in the range [-1, 1].
func (f *Field) Sample(x, z float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	// Skew input space to determine simplex cell.
	s := (x + z) * f2
	i := fastFloor(x + s)
	j := fastFloor(z + s)

	t := float64(i+j) * g2
	x0 := x - (float64(i) - t)
	z0 := z - (float64(j) - t)

	// Determine which simplex we are in.
	var i1, j1 int
	if x0 > z0 {
		i1 = 1
	} else {
		j1 = 1
	}

	x1 := x0 - float64(i1) + g2
	z1 := z0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	z2 := z0 - 1.0 + 2.0*g2

	ii := i & 255
	jj := j & 255
	gi0 := f.perm[ii+f.perm[jj]] % 12
	gi1 := f.perm[ii+i1+f.perm[jj+j1]] % 12
	gi2 := f.perm[ii+1+f.perm[jj+1]] % 12

	var n0, n1, n2 float64

	t0 := 0.5 - x0*x0 - z0*z0
	if t0 >= 0 {
		t0 *= t0
		n0 = t0 * t0 * dot2(grad2[gi0], x0, z0)
	}

	t1 := 0.5 - x1*x1 - z1*z1
	if t1 >= 0 {
		t1 *= t1
		n1 = t1 * t1 * dot2(grad2[gi1], x1, z1)
	}

	t2 := 0.5 - x2*x2 - z2*z2
	if t2 >= 0 {
		t2 *= t2
		n2 = t2 * t2 * dot2(grad2[gi2], x2, z2)
	}

	return 70.0 * (n0 + n1 + n2)
}

// Fractal sums octaves of Sample at geometrically increasing frequency and
// decreasing amplitude (frequency *= lacunarity, amplitude *= persistence per
// octave). The result is normalized by the maximum possible amplitude sum, so
// output stays within the single-octave range regardless of octave count.
func (f *Field) Fractal(x, z float64, octaves int, baseFrequency, baseAmplitude, persistence, lacunarity float64) float64 {
	var total, maxVal float64
	frequency := baseFrequency
	amplitude := baseAmplitude

	for i := 0; i < octaves; i++ {
		total += f.Sample(x*frequency, z*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if maxVal == 0 {
		return 0
	}
	return total / maxVal
}

// Octave is Fractal with the conventional base frequency/amplitude of 1 and
// lacunarity of 2, the common case for terrain layering.
func (f *Field) Octave(x, z float64, octaves int, persistence float64) float64 {
	return f.Fractal(x, z, octaves, 1.0, 1.0, persistence, 2.0)
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}

func dot2(g [2]float64, x, z float64) float64 {
	return g[0]*x + g[1]*z
}
