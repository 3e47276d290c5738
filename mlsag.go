package ringct

import (
	"fmt"

	"github.com/bwesterb/go-ristretto"
	"github.com/dchest/blake2b"
)

// signMLSAG produces the legacy matrix ring signature for one input. The
// matrix has one row per ring member and two columns: the response for the
// one-time key and the response for the commitment difference against the
// pseudo-output.
func signMLSAG(message []byte, ring []ringEntry, realIndex int, spend, z *ristretto.Scalar, pseudoOut *ristretto.Point) (*MGSignature, error) {
	size := len(ring)
	if realIndex < 0 || realIndex >= size {
		return nil, fmt.Errorf("real index %d outside ring of %d", realIndex, size)
	}

	var image ristretto.Point
	image.ScalarMult(hashToPoint(ring[realIndex].dest), spend)

	c := make([]*ristretto.Scalar, size)

	// Decoy responses are random; the real row's are solved for below.
	r := make([]*ristretto.Scalar, 2*size)
	for i := 0; i < size; i++ {
		if i == realIndex {
			continue
		}
		var r0, r1 ristretto.Scalar
		r[2*i] = r0.Rand()
		r[2*i+1] = r1.Rand()
	}

	var alpha0, alpha1 ristretto.Scalar
	alpha0.Rand()
	alpha1.Rand()

	for n := 0; n < size; n++ {
		i := (realIndex + n) % size
		hp := hashToPoint(ring[i].dest)

		var delta ristretto.Point
		delta.Sub(ring[i].mask, pseudoOut)

		var L0, R0, L1 ristretto.Point
		if i == realIndex {
			L0.ScalarMultBase(&alpha0)
			R0.ScalarMult(hp, &alpha0)
			L1.ScalarMultBase(&alpha1)
		} else {
			var p0, p1 ristretto.Point
			L0.Add(p0.ScalarMultBase(r[2*i]), p1.ScalarMult(ring[i].dest, c[i]))
			var p2, p3 ristretto.Point
			R0.Add(p2.ScalarMult(hp, r[2*i]), p3.ScalarMult(&image, c[i]))
			var p4, p5 ristretto.Point
			L1.Add(p4.ScalarMultBase(r[2*i+1]), p5.ScalarMult(&delta, c[i]))
		}

		c[(i+1)%size] = ringChallenge(MLSAG_CHALLENGE_DOMAIN_TAG, message, &image, &L0, &R0, &L1)
	}

	var s0, t0 ristretto.Scalar
	r[2*realIndex] = s0.Sub(&alpha0, t0.Mul(c[realIndex], spend))
	var s1, t1 ristretto.Scalar
	r[2*realIndex+1] = s1.Sub(&alpha1, t1.Mul(c[realIndex], z))

	ss := make([][]Key, size)
	for i := 0; i < size; i++ {
		ss[i] = []Key{scalarToKey(r[2*i]), scalarToKey(r[2*i+1])}
	}
	return &MGSignature{SS: ss, CC: scalarToKey(c[0])}, nil
}

func ringChallenge(tag string, message []byte, image *ristretto.Point, points ...*ristretto.Point) *ristretto.Scalar {
	hash := blake2b.New512()
	hash.Write([]byte(tag))
	hash.Write(message)
	hash.Write(image.Bytes())
	for _, p := range points {
		hash.Write(p.Bytes())
	}

	var key [64]byte
	copy(key[:], hash.Sum(nil))

	var s ristretto.Scalar
	return s.SetReduced(&key)
}
