package ringct

import (
	"errors"
	"fmt"

	"github.com/bwesterb/go-ristretto"
)

// A party proves one commitment of the aggregated range proof. The dealer
// drives every party through the three rounds in-process; the states below
// mirror the rounds.

type partyAwaitingPosition struct {
	bpGens    *BulletproofGens
	pcGens    *PedersenGens
	n         int64
	value     uint64
	vBlinding *ristretto.Scalar
	v         *ristretto.Point
}

func newParty(bg *BulletproofGens, pg *PedersenGens, value uint64, blinding *ristretto.Scalar, n int64) (*partyAwaitingPosition, error) {
	switch n {
	case 8, 16, 32, 64:
	default:
		return nil, fmt.Errorf("newParty invalid bitsize %d", n)
	}
	if bg.GensCapacity < n {
		return nil, fmt.Errorf("newParty generators capacity %d below bitsize %d", bg.GensCapacity, n)
	}

	return &partyAwaitingPosition{
		bpGens:    bg,
		pcGens:    pg,
		n:         n,
		value:     value,
		vBlinding: blinding,
		v:         pg.Commit(uint64ToScalar(value), blinding),
	}, nil
}

type partyAwaitingBitChallenge struct {
	n         int64
	value     uint64
	vBlinding *ristretto.Scalar
	j         int
	pcGens    *PedersenGens
	aBlinding *ristretto.Scalar
	sBlinding *ristretto.Scalar
	sL        []*ristretto.Scalar
	sR        []*ristretto.Scalar
}

func (p *partyAwaitingPosition) assignPosition(j int) (*partyAwaitingBitChallenge, *bitCommitment, error) {
	if p.bpGens.PartyCapacity <= int64(j) {
		return nil, nil, fmt.Errorf("assignPosition party %d beyond capacity %d", j, p.bpGens.PartyCapacity)
	}
	share := p.bpGens.share(j)

	var aBlinding ristretto.Scalar
	aBlinding.Rand()
	var A ristretto.Point
	A.ScalarMult(p.pcGens.BBlinding, &aBlinding)

	// Bit i contributes G[i] when set and -H[i] when clear.
	Gs := share.G(p.n)
	Hs := share.H(p.n)
	for i := range Gs {
		var point ristretto.Point
		point.Neg(Hs[i])
		if (p.value>>i)&1 == 1 {
			point = *Gs[i]
		}
		A.Add(&A, &point)
	}

	var sBlinding ristretto.Scalar
	sBlinding.Rand()

	sL := make([]*ristretto.Scalar, p.n)
	sR := make([]*ristretto.Scalar, p.n)
	for i := range sL {
		var l, r ristretto.Scalar
		sL[i] = l.Rand()
		sR[i] = r.Rand()
	}

	// S = s_blinding * B_blinding + <s_L, G> + <s_R, H>
	scalars := append([]*ristretto.Scalar{&sBlinding}, sL...)
	scalars = append(scalars, sR...)
	points := append([]*ristretto.Point{p.pcGens.BBlinding}, Gs...)
	points = append(points, Hs...)
	S := multiscalarMul(scalars, points)

	next := &partyAwaitingBitChallenge{
		n:         p.n,
		value:     p.value,
		vBlinding: p.vBlinding,
		j:         j,
		pcGens:    p.pcGens,
		aBlinding: &aBlinding,
		sBlinding: &sBlinding,
		sL:        sL,
		sR:        sR,
	}
	return next, &bitCommitment{VJ: p.v, AJ: &A, SJ: S}, nil
}

type partyAwaitingPolyChallenge struct {
	offsetZZ   *ristretto.Scalar
	lPoly      *vecPoly1
	rPoly      *vecPoly1
	tPoly      *poly2
	vBlinding  *ristretto.Scalar
	aBlinding  *ristretto.Scalar
	sBlinding  *ristretto.Scalar
	t1Blinding *ristretto.Scalar
	t2Blinding *ristretto.Scalar
}

func (p *partyAwaitingBitChallenge) applyBitChallenge(bc *bitChallenge) (*partyAwaitingPolyChallenge, *polyCommitment) {
	offsetY := scalarExpVartime(bc.Y, uint64(int64(p.j)*p.n))
	offsetZ := scalarExpVartime(bc.Z, uint64(p.j))

	lPoly := zeroVecPoly1(p.n)
	rPoly := zeroVecPoly1(p.n)

	var offsetZZ ristretto.Scalar
	offsetZZ.Mul(bc.Z, bc.Z)
	offsetZZ.Mul(&offsetZZ, offsetZ)

	expY := offsetY
	var exp2 ristretto.Scalar
	exp2.SetOne()

	for i := int64(0); i < p.n; i++ {
		aLi := uint64ToScalar((p.value >> i) & 1)
		var one, aRi ristretto.Scalar
		one.SetOne()
		aRi.Sub(aLi, &one)

		lPoly.As[i].Sub(aLi, bc.Z)
		lPoly.Bs[i] = p.sL[i]

		var tmp1, tmp2 ristretto.Scalar
		tmp1.Add(&aRi, bc.Z)
		tmp1.Mul(expY, &tmp1)
		tmp2.Mul(&offsetZZ, &exp2)
		rPoly.As[i].Add(&tmp1, &tmp2)
		rPoly.Bs[i].Mul(expY, p.sR[i])

		expY.Mul(expY, bc.Y)
		exp2.Add(&exp2, &exp2)
	}

	tPoly := lPoly.InnerProduct(rPoly)

	var t1Blinding, t2Blinding ristretto.Scalar
	t1Blinding.Rand()
	t2Blinding.Rand()

	commitment := &polyCommitment{
		T1J: p.pcGens.Commit(tPoly.B, &t1Blinding),
		T2J: p.pcGens.Commit(tPoly.C, &t2Blinding),
	}

	next := &partyAwaitingPolyChallenge{
		offsetZZ:   &offsetZZ,
		lPoly:      lPoly,
		rPoly:      rPoly,
		tPoly:      tPoly,
		vBlinding:  p.vBlinding,
		aBlinding:  p.aBlinding,
		sBlinding:  p.sBlinding,
		t1Blinding: &t1Blinding,
		t2Blinding: &t2Blinding,
	}
	return next, commitment
}

func (p *partyAwaitingPolyChallenge) applyPolyChallenge(pc *polyChallenge) (*proofShare, error) {
	var zero ristretto.Scalar
	zero.SetZero()
	if zero.Equals(pc.X) {
		return nil, errors.New("dealer issued a zero challenge")
	}

	var a ristretto.Scalar
	a.Mul(p.offsetZZ, p.vBlinding)
	tBlindingPoly := poly2{A: &a, B: p.t1Blinding, C: p.t2Blinding}

	var eBlinding ristretto.Scalar
	eBlinding.Mul(p.sBlinding, pc.X)
	eBlinding.Add(p.aBlinding, &eBlinding)

	return &proofShare{
		TX:         p.tPoly.Eval(pc.X),
		TXBlinding: tBlindingPoly.Eval(pc.X),
		EBlinding:  &eBlinding,
		LVec:       p.lPoly.Eval(pc.X),
		RVec:       p.rPoly.Eval(pc.X),
	}, nil
}
