package ringct

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/bwesterb/go-ristretto"
	"github.com/dchest/blake2b"
)

func decodeScalar(k Key) (*ristretto.Scalar, error) {
	var s ristretto.Scalar
	s.SetBytes((*[KeyLength]byte)(&k))
	if !bytes.Equal(s.Bytes(), k[:]) {
		return nil, fmt.Errorf("%w: scalar is not reduced", ErrInvalidEncoding)
	}
	return &s, nil
}

func decodePoint(k Key) (*ristretto.Point, error) {
	var p ristretto.Point
	if err := p.UnmarshalBinary(k[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return &p, nil
}

func scalarToKey(s *ristretto.Scalar) Key {
	var k Key
	copy(k[:], s.Bytes())
	return k
}

func pointToKey(p *ristretto.Point) Key {
	var k Key
	copy(k[:], p.Bytes())
	return k
}

// hashToPoint maps a public key to a second, unlinkable point. Key images
// and ring signature challenges both build on this mapping, so it must stay
// byte-for-byte stable.
func hashToPoint(public *ristretto.Point) *ristretto.Point {
	hash := blake2b.New512()
	hash.Write([]byte(HASH_TO_POINT_DOMAIN_TAG))
	hash.Write(public.Bytes())
	var key [64]byte
	copy(key[:], hash.Sum(nil))
	return pointFromUniformBytes(key[:])
}

func hashToScalar(tag string, data ...[]byte) *ristretto.Scalar {
	hash := blake2b.New512()
	hash.Write([]byte(tag))
	for _, d := range data {
		hash.Write(d)
	}
	var key [64]byte
	copy(key[:], hash.Sum(nil))

	var s ristretto.Scalar
	return s.SetReduced(&key)
}

func uint64ToScalar(i uint64) *ristretto.Scalar {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:], i)
	var s ristretto.Scalar
	return s.SetBytes(&buf)
}

func multiscalarMul(scalars []*ristretto.Scalar, points []*ristretto.Point) *ristretto.Point {
	var p ristretto.Point
	p.SetZero()
	for i := range scalars {
		var t ristretto.Point
		t.ScalarMult(points[i], scalars[i])
		p.Add(&p, &t)
	}
	return &p
}

func resizeUint64ToPow2(vec []uint64) []uint64 {
	l := nextPowerOfTwo(len(vec))
	for i := len(vec); i < l; i++ {
		vec = append(vec, vec[i-1])
	}
	return vec
}

func resizeScalarToPow2(vec []*ristretto.Scalar) []*ristretto.Scalar {
	l := nextPowerOfTwo(len(vec))
	for i := len(vec); i < l; i++ {
		var clone ristretto.Scalar
		vec = append(vec, clone.Add(&clone, vec[i-1]))
	}
	return vec
}

func nextPowerOfTwo(v int) int {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v++
	return v
}
