package allocation

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collidingProbe simulates collision pressure: every probe whose
// counter is not a multiple of probe.every reports a collision, and any
// reference previously issued always collides.
type collidingProbe struct {
	issued map[string]struct{}
	every  int
	calls  int
}

func newCollidingProbe(every int) *collidingProbe {
	return &collidingProbe{issued: make(map[string]struct{}), every: every}
}

func (p *collidingProbe) ReferenceExists(_ context.Context, ref string) (bool, error) {
	p.calls++
	if _, ok := p.issued[ref]; ok {
		return true, nil
	}
	if p.every > 1 && p.calls%p.every != 0 {
		return true, nil
	}
	return false, nil
}

func (p *collidingProbe) accept(ref string) { p.issued[ref] = struct{}{} }

func TestGenerateUniqueUnderCollisionPressure(t *testing.T) {
	probe := newCollidingProbe(3) // two of every three probes collide
	gen := NewReferenceGenerator(probe)
	ctx := context.Background()

	const n = 10000
	for i := 0; i < n; i++ {
		ref, err := gen.Generate(ctx)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(ref, "BK"), "reference %q lacks BK prefix", ref)
		_, dup := probe.issued[ref]
		require.False(t, dup, "duplicate reference %q", ref)
		probe.accept(ref)
	}
	assert.Len(t, probe.issued, n)
}

// alwaysCollideN reports collisions for the first n probes and accepts
// afterwards.
type alwaysCollideN struct {
	n     int
	calls int
}

func (p *alwaysCollideN) ReferenceExists(context.Context, string) (bool, error) {
	p.calls++
	return p.calls <= p.n, nil
}

func TestGenerateFallsBackToHash(t *testing.T) {
	probe := &alwaysCollideN{n: maxReferenceAttempts}
	gen := NewReferenceGenerator(probe)

	ref, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "BK"))
	// all direct strategies collided, so the accepted candidate is the
	// hash fallback produced on the probe after the bounded loop
	assert.Equal(t, maxReferenceAttempts+1, probe.calls)
}

func TestGenerateExhaustionIsTransient(t *testing.T) {
	probe := &alwaysCollideN{n: 1 << 30}
	gen := NewReferenceGenerator(probe)

	_, err := gen.Generate(context.Background())
	require.Error(t, err)
	var transient *TransientError
	assert.ErrorAs(t, err, &transient)
}

func TestGenerateDistinctWithoutCollisions(t *testing.T) {
	probe := newCollidingProbe(1) // never collides
	gen := NewReferenceGenerator(probe)

	a, err := gen.Generate(context.Background())
	require.NoError(t, err)
	probe.accept(a)
	b, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
