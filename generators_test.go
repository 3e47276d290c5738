package ringct

import (
	"testing"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulletproofGens(t *testing.T) {
	assert := assert.New(t)

	bg := NewBulletproofGens(64, 8)
	assert.Equal(int64(64), bg.GensCapacity)
	assert.Equal(int64(8), bg.PartyCapacity)
	assert.Len(bg.GVec, 8)
	assert.Len(bg.HVec, 8)
	for j := range bg.GVec {
		assert.Len(bg.GVec[j], 64)
		assert.Len(bg.HVec[j], 64)
	}

	// The chains are deterministic, so a second table must match.
	again := NewBulletproofGens(64, 8)
	assert.Equal(bg.GVec[3][17].Bytes(), again.GVec[3][17].Bytes())
	assert.Equal(bg.HVec[7][63].Bytes(), again.HVec[7][63].Bytes())

	// G and H chains must not collide.
	assert.NotEqual(bg.GVec[0][0].Bytes(), bg.HVec[0][0].Bytes())
}

func TestAggregatedGensIter(t *testing.T) {
	require := require.New(t)

	bg := NewBulletproofGens(16, 4)
	iter := bg.G(16, 2)
	var count int
	for iter.Next() != nil {
		count++
	}
	require.Equal(32, count)
}

func TestPedersenGens(t *testing.T) {
	assert := assert.New(t)

	pg := NewPedersenGens()
	assert.NotEqual(pg.B.Bytes(), pg.BBlinding.Bytes())

	again := NewPedersenGens()
	assert.Equal(pg.B.Bytes(), again.B.Bytes())
}

func TestPedersenCommitHomomorphic(t *testing.T) {
	require := require.New(t)

	pg := NewPedersenGens()
	var x, y ristretto.Scalar
	x.Rand()
	y.Rand()

	left := pg.Commit(uint64ToScalar(300), &x)
	right := pg.Commit(uint64ToScalar(700), &y)
	var sum ristretto.Point
	sum.Add(left, right)

	var xy ristretto.Scalar
	xy.Add(&x, &y)
	require.Equal(sum.Bytes(), pg.Commit(uint64ToScalar(1000), &xy).Bytes())
}
