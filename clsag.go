package ringct

import (
	"fmt"

	"github.com/bwesterb/go-ristretto"
	"github.com/dchest/blake2b"
)

// signCLSAG produces the compact linear ring signature for one input: a
// single response per ring member plus the auxiliary key image D for the
// commitment part. The key and commitment relations are folded into one
// chain through the two aggregation scalars.
func signCLSAG(message []byte, ring []ringEntry, realIndex int, spend, z *ristretto.Scalar, pseudoOut *ristretto.Point) (*CLSAG, error) {
	size := len(ring)
	if realIndex < 0 || realIndex >= size {
		return nil, fmt.Errorf("real index %d outside ring of %d", realIndex, size)
	}

	hpReal := hashToPoint(ring[realIndex].dest)
	var image, D ristretto.Point
	image.ScalarMult(hpReal, spend)
	D.ScalarMult(hpReal, z)

	muP := aggregationScalar(CLSAG_AGG_KEY_DOMAIN_TAG, ring, &image, &D, pseudoOut)
	muC := aggregationScalar(CLSAG_AGG_COMMITMENT_DOMAIN_TAG, ring, &image, &D, pseudoOut)

	// Aggregate key image: muP*I + muC*D.
	aggImage := multiscalarMul(
		[]*ristretto.Scalar{muP, muC},
		[]*ristretto.Point{&image, &D},
	)

	s := make([]*ristretto.Scalar, size)
	for i := 0; i < size; i++ {
		if i == realIndex {
			continue
		}
		var r ristretto.Scalar
		s[i] = r.Rand()
	}

	var alpha ristretto.Scalar
	alpha.Rand()

	c := make([]*ristretto.Scalar, size)
	for n := 0; n < size; n++ {
		i := (realIndex + n) % size

		var L, R ristretto.Point
		if i == realIndex {
			L.ScalarMultBase(&alpha)
			R.ScalarMult(hpReal, &alpha)
		} else {
			var delta ristretto.Point
			delta.Sub(ring[i].mask, pseudoOut)
			// W_i = muP*P_i + muC*(C_i - pseudoOut)
			W := multiscalarMul(
				[]*ristretto.Scalar{muP, muC},
				[]*ristretto.Point{ring[i].dest, &delta},
			)

			var p0, p1 ristretto.Point
			L.Add(p0.ScalarMultBase(s[i]), p1.ScalarMult(W, c[i]))
			var p2, p3 ristretto.Point
			R.Add(p2.ScalarMult(hashToPoint(ring[i].dest), s[i]), p3.ScalarMult(aggImage, c[i]))
		}

		c[(i+1)%size] = ringChallenge(CLSAG_CHALLENGE_DOMAIN_TAG, message, &image, &L, &R)
	}

	// s_real = alpha - c_real*(muP*spend + muC*z)
	var w, wz, cw, closing ristretto.Scalar
	w.Mul(muP, spend)
	wz.Mul(muC, z)
	w.Add(&w, &wz)
	cw.Mul(c[realIndex], &w)
	s[realIndex] = closing.Sub(&alpha, &cw)

	keys := make([]Key, size)
	for i := range s {
		keys[i] = scalarToKey(s[i])
	}
	return &CLSAG{S: keys, C1: scalarToKey(c[0]), D: pointToKey(&D)}, nil
}

// aggregationScalar binds the whole ring, both key images and the
// pseudo-output into one folding coefficient.
func aggregationScalar(tag string, ring []ringEntry, image, D, pseudoOut *ristretto.Point) *ristretto.Scalar {
	hash := blake2b.New512()
	hash.Write([]byte(tag))
	for i := range ring {
		hash.Write(ring[i].dest.Bytes())
		hash.Write(ring[i].mask.Bytes())
	}
	hash.Write(image.Bytes())
	hash.Write(D.Bytes())
	hash.Write(pseudoOut.Bytes())

	var key [64]byte
	copy(key[:], hash.Sum(nil))

	var s ristretto.Scalar
	return s.SetReduced(&key)
}
