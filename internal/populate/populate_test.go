package populate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/emberwood/terrain-server/internal/assets"
	"github.com/emberwood/terrain-server/internal/terrain"
	"github.com/emberwood/terrain-server/internal/terrain/biome"
)

// flatQuery is a fixed-height terrain for populator tests.
type flatQuery struct {
	height   float64
	water    float64
	walkable bool
}

func (q flatQuery) HeightAt(x, z float64) float64    { return q.height }
func (q flatQuery) BiomeAt(x, z float64) biome.Biome { return biome.Forest }
func (q flatQuery) WaterLevel() float64              { return q.water }
func (q flatQuery) Walkable(x, z float64) bool       { return q.walkable }

// stubProvider fails loads for names in fail, succeeds otherwise.
type stubProvider struct {
	fail map[string]bool
}

func (s stubProvider) LoadModel(_ context.Context, name string) (*assets.Model, error) {
	if s.fail == nil || s.fail[name] {
		return nil, errors.New("model unavailable")
	}
	return &assets.Model{Name: name}, nil
}

func testSurface(b biome.Biome) *terrain.Surface {
	res := 5
	s := &terrain.Surface{
		Pos:        terrain.ChunkPos{X: 1, Z: 2},
		Size:       64,
		Resolution: res,
		Heights:    make([]float64, res*res),
		Biome:      b,
	}
	for i := range s.Heights {
		s.Heights[i] = 30
	}
	return s
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestVegetationDeterministic(t *testing.T) {
	chunk := &Chunk{
		Surface: testSurface(biome.Forest),
		Query:   flatQuery{height: 30, water: 12, walkable: true},
	}
	provider := stubProvider{fail: map[string]bool{}}

	v1 := NewVegetation(12345, provider, discardLogger())
	v2 := NewVegetation(12345, provider, discardLogger())

	first, err := v1.Populate(context.Background(), chunk)
	if err != nil {
		t.Fatal(err)
	}
	second, err := v2.Populate(context.Background(), chunk)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("placement counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a := first[i].(*Instance)
		b := second[i].(*Instance)
		if *a != *b {
			t.Fatalf("placement %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestVegetationAssetFailureSkipsDecoration(t *testing.T) {
	chunk := &Chunk{
		Surface: testSurface(biome.Forest),
		Query:   flatQuery{height: 30, water: 12, walkable: true},
	}
	v := NewVegetation(1, stubProvider{}, discardLogger())

	out, err := v.Populate(context.Background(), chunk)
	if err != nil {
		t.Fatalf("asset failures must not fail the populator: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("got %d placements with all loads failing, want 0", len(out))
	}
}

func TestVegetationSkipsUnderwater(t *testing.T) {
	chunk := &Chunk{
		Surface: testSurface(biome.Forest),
		Query:   flatQuery{height: 5, water: 12, walkable: true},
	}
	v := NewVegetation(1, stubProvider{fail: map[string]bool{}}, discardLogger())

	out, err := v.Populate(context.Background(), chunk)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("got %d underwater placements, want 0", len(out))
	}
}

func TestWaterPlaneWhenTerrainDips(t *testing.T) {
	s := testSurface(biome.Swamp)
	s.Heights[7] = 3 // below water level

	w := NewWater()
	out, err := w.Populate(context.Background(), &Chunk{
		Surface: s,
		Query:   flatQuery{height: 30, water: 12},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d renderables, want 1 water plane", len(out))
	}
	plane := out[0].(*WaterPlane)
	if plane.Level != 12 {
		t.Errorf("plane level = %f, want 12", plane.Level)
	}
	if plane.OriginX != 64 || plane.OriginZ != 128 {
		t.Errorf("plane origin = (%f, %f), want (64, 128)", plane.OriginX, plane.OriginZ)
	}
}

func TestNoWaterPlaneAboveLevel(t *testing.T) {
	w := NewWater()
	out, err := w.Populate(context.Background(), &Chunk{
		Surface: testSurface(biome.Plains),
		Query:   flatQuery{height: 30, water: 12},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("got %d renderables for dry chunk, want 0", len(out))
	}
}

func TestGrassDeterministicAndDry(t *testing.T) {
	classifier := biome.NewClassifier(9,
		func(x, z float64) float64 { return 0.4 },
		biome.DefaultThresholds(), biome.DefaultTable())

	chunk := &Chunk{
		Surface: testSurface(biome.Forest),
		Query:   flatQuery{height: 30, water: 12, walkable: true},
	}

	g1 := NewGrass(12345, classifier)
	g2 := NewGrass(12345, classifier)

	first, err := g1.Populate(context.Background(), chunk)
	if err != nil {
		t.Fatal(err)
	}
	second, err := g2.Populate(context.Background(), chunk)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("patch counts differ: %d vs %d", len(first), len(second))
	}

	for _, r := range first {
		p := r.(*GrassPatch)
		if p.Y <= 12 {
			t.Fatalf("grass patch at height %f, below water level", p.Y)
		}
	}
}
