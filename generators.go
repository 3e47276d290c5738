package ringct

import (
	"encoding/binary"

	"github.com/bwesterb/go-ristretto"
	"golang.org/x/crypto/sha3"
)

// PedersenGens holds the two commitment generators: B carries the committed
// value, BBlinding the blinding factor. B is derived from the base point via
// hashToPoint, so no one knows the discrete log between the two.
type PedersenGens struct {
	B         *ristretto.Point
	BBlinding *ristretto.Point
}

func NewPedersenGens() *PedersenGens {
	var base ristretto.Point
	base.SetBase()

	return &PedersenGens{
		B:         hashToPoint(&base),
		BBlinding: &base,
	}
}

func (pg *PedersenGens) Commit(value, blinding *ristretto.Scalar) *ristretto.Point {
	return multiscalarMul(
		[]*ristretto.Scalar{value, blinding},
		[]*ristretto.Point{pg.B, pg.BBlinding},
	)
}

// BulletproofGens is the table of per-party generator vectors. Each party j
// draws its G and H points from a SHAKE-256 chain labelled with j, so the
// table is deterministic across processes.
type BulletproofGens struct {
	GensCapacity  int64
	PartyCapacity int64
	GVec          [][]*ristretto.Point
	HVec          [][]*ristretto.Point
}

func NewBulletproofGens(gensCapacity, partyCapacity int64) *BulletproofGens {
	b := &BulletproofGens{
		PartyCapacity: partyCapacity,
		GVec:          make([][]*ristretto.Point, partyCapacity),
		HVec:          make([][]*ristretto.Point, partyCapacity),
	}
	b.increaseCapacity(gensCapacity)
	return b
}

func (b *BulletproofGens) increaseCapacity(capacity int64) {
	if b.GensCapacity >= capacity {
		return
	}
	for j := int64(0); j < b.PartyCapacity; j++ {
		var party [4]byte
		binary.LittleEndian.PutUint32(party[:], uint32(j))

		label := append([]byte("G"), party[:]...)
		chain := newGeneratorsChain(label)
		chain.fastForward(b.GensCapacity)
		points := make([]*ristretto.Point, capacity-b.GensCapacity)
		for i := range points {
			points[i] = chain.Next()
		}
		b.GVec[j] = append(b.GVec[j], points...)

		label[0] = 'H'
		chain = newGeneratorsChain(label)
		chain.fastForward(b.GensCapacity)
		points = make([]*ristretto.Point, capacity-b.GensCapacity)
		for i := range points {
			points[i] = chain.Next()
		}
		b.HVec[j] = append(b.HVec[j], points...)
	}
	b.GensCapacity = capacity
}

// G iterates the first n G generators of each of the first m parties.
func (b *BulletproofGens) G(n, m int64) *AggregatedGensIter {
	return &AggregatedGensIter{N: n, M: m, Array: b.GVec}
}

// H iterates the first n H generators of each of the first m parties.
func (b *BulletproofGens) H(n, m int64) *AggregatedGensIter {
	return &AggregatedGensIter{N: n, M: m, Array: b.HVec}
}

type AggregatedGensIter struct {
	Array    [][]*ristretto.Point
	N, M     int64
	partyIdx int64
	genIdx   int64
}

func (a *AggregatedGensIter) Next() *ristretto.Point {
	if a.genIdx >= a.N {
		a.genIdx = 0
		a.partyIdx++
	}
	if a.partyIdx >= a.M {
		return nil
	}
	cur := a.genIdx
	a.genIdx++
	return a.Array[a.partyIdx][cur]
}

type generatorsChain struct {
	sha3.ShakeHash
}

func newGeneratorsChain(label []byte) *generatorsChain {
	h := sha3.NewShake256()
	h.Write([]byte("GeneratorsChain"))
	h.Write(label)
	return &generatorsChain{h}
}

func (c *generatorsChain) fastForward(n int64) {
	for i := int64(0); i < n; i++ {
		var data [64]byte
		c.Read(data[:])
	}
}

func (c *generatorsChain) Next() *ristretto.Point {
	var data [64]byte
	c.Read(data[:])
	return pointFromUniformBytes(data[:])
}

func pointFromUniformBytes(key []byte) *ristretto.Point {
	var r1Bytes, r2Bytes [32]byte
	copy(r1Bytes[:], key[:32])
	copy(r2Bytes[:], key[32:])
	var r, r1, r2 ristretto.Point
	return r.Add(r1.SetElligator(&r1Bytes), r2.SetElligator(&r2Bytes))
}

// BulletproofGensShare is party j's view of the shared generator table.
type BulletproofGensShare struct {
	Gens  *BulletproofGens
	Share int
}

func (b *BulletproofGens) share(j int) *BulletproofGensShare {
	return &BulletproofGensShare{Gens: b, Share: j}
}

func (g *BulletproofGensShare) G(n int64) []*ristretto.Point {
	return g.Gens.GVec[g.Share][:n]
}

func (g *BulletproofGensShare) H(n int64) []*ristretto.Point {
	return g.Gens.HVec[g.Share][:n]
}
