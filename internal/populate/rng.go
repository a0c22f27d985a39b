package populate

// chunkRNG is a simple deterministic RNG for per-chunk placement. Seeding
// mixes the world seed with the chunk coordinate and a per-populator salt so
// different populators on the same chunk draw independent sequences.
type chunkRNG struct {
	state int64
}

func newChunkRNG(seed int64, cx, cz int, salt int64) *chunkRNG {
	s := seed ^ (int64(cx)*341873128712 + int64(cz)*132897987541 + salt)
	return &chunkRNG{state: s}
}

func (r *chunkRNG) next() int64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

func (r *chunkRNG) nextN(n int) int {
	v := int(r.next()>>33) % n
	if v < 0 {
		v = -v
	}
	return v
}

// nextFloat returns a value in [0, 1).
func (r *chunkRNG) nextFloat() float64 {
	return float64(r.next()>>11&((1<<52)-1)) / (1 << 52)
}
