package allocation

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Booking references start with a fixed marker followed by a timestamp
// and random alphanumeric entropy.  Uniqueness is verified against the
// store before a candidate is accepted.
const (
	referencePrefix  = "BK"
	referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// maxReferenceAttempts bounds the probe loop; the generator never
	// blocks indefinitely on a pathological store.
	maxReferenceAttempts = 20
)

// refStrategy tags the entropy level of a candidate reference.  The
// generator escalates through the strategies as collisions accumulate
// instead of recursing.
type refStrategy int

const (
	refShortRandom refStrategy = iota // microsecond timestamp + UUID fragment + 6 random chars
	refLongRandom                     // nanosecond timestamp + 15 random chars
	refWideRandom                     // nanosecond timestamp + 20 random chars
)

func strategyFor(attempt int) refStrategy {
	switch {
	case attempt < 10:
		return refShortRandom
	case attempt < 15:
		return refLongRandom
	default:
		return refWideRandom
	}
}

// ReferenceProbe checks a candidate reference against existing
// bookings.  Read-only; the generator never allocates anything.
type ReferenceProbe interface {
	ReferenceExists(ctx context.Context, reference string) (bool, error)
}

// ReferenceGenerator produces booking references that are unique among
// all existing bookings.
type ReferenceGenerator struct {
	probe ReferenceProbe
}

// NewReferenceGenerator returns a generator probing uniqueness through
// the given store.
func NewReferenceGenerator(probe ReferenceProbe) *ReferenceGenerator {
	return &ReferenceGenerator{probe: probe}
}

// Generate returns a reference not present in the store.  It tries up
// to maxReferenceAttempts candidates with escalating entropy, then a
// content-hash fallback.  If even the fallback collides it returns a
// *TransientError; the whole booking request is safe to retry.
func (g *ReferenceGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		candidate, err := buildCandidate(strategyFor(attempt))
		if err != nil {
			return "", err
		}
		exists, err := g.probe.ReferenceExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	candidate, err := hashFallback()
	if err != nil {
		return "", err
	}
	exists, err := g.probe.ReferenceExists(ctx, candidate)
	if err != nil {
		return "", err
	}
	if exists {
		return "", &TransientError{Op: "generate booking reference", Err: errors.New("all candidates collided")}
	}
	return candidate, nil
}

func buildCandidate(s refStrategy) (string, error) {
	now := time.Now()
	switch s {
	case refShortRandom:
		frag := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:12]
		suffix, err := randomAlnum(6)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s%d%s%s", referencePrefix, now.UnixMicro(), frag, suffix), nil
	case refLongRandom:
		suffix, err := randomAlnum(15)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s%d%s", referencePrefix, now.UnixNano(), suffix), nil
	default:
		suffix, err := randomAlnum(20)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s%d%s", referencePrefix, now.UnixNano(), suffix), nil
	}
}

// hashFallback derives a reference from a digest of timestamp and two
// fresh random draws.  Used only after every direct strategy collided.
func hashFallback() (string, error) {
	salt, err := randomAlnum(8)
	if err != nil {
		return "", err
	}
	now := time.Now()
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s|%s", now.UnixNano(), uuid.New().String(), salt)))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))[:20]
	return fmt.Sprintf("%s%d%s", referencePrefix, now.UnixNano(), digest), nil
}

// randomAlnum returns n cryptographically random characters drawn from
// the reference charset.
func randomAlnum(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, v := range b {
		out[i] = referenceCharset[int(v)%len(referenceCharset)]
	}
	return string(out), nil
}
