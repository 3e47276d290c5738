package ringct

import (
	"fmt"
	"math/bits"

	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"
)

// The dealer runs the transcript for an aggregated range proof over m
// commitments of n bits each, collecting commitments from the parties and
// handing back challenges.

type dealerAwaitingBitCommitments struct {
	bpGens     *BulletproofGens
	pcGens     *PedersenGens
	transcript *merlin.Transcript
	n, m       int64
}

func newDealer(bg *BulletproofGens, pg *PedersenGens, t *merlin.Transcript, n, m int64) (*dealerAwaitingBitCommitments, error) {
	switch n {
	case 8, 16, 32, 64:
	default:
		return nil, fmt.Errorf("newDealer invalid bitsize %d", n)
	}
	if bits.OnesCount64(uint64(m)) > 1 {
		return nil, fmt.Errorf("newDealer aggregation size %d is not a power of two", m)
	}
	if bg.GensCapacity < n {
		return nil, fmt.Errorf("newDealer generators capacity %d below bitsize %d", bg.GensCapacity, n)
	}
	if bg.PartyCapacity < m {
		return nil, fmt.Errorf("newDealer party capacity %d below aggregation size %d", bg.PartyCapacity, m)
	}

	rangeproofDomainSep(n, m, t)

	return &dealerAwaitingBitCommitments{
		bpGens:     bg,
		pcGens:     pg,
		transcript: t,
		n:          n,
		m:          m,
	}, nil
}

type dealerAwaitingPolyCommitments struct {
	n, m           int64
	transcript     *merlin.Transcript
	bpGens         *BulletproofGens
	pcGens         *PedersenGens
	bitChallenge   *bitChallenge
	bitCommitments []*bitCommitment
	A              *ristretto.Point
	S              *ristretto.Point
}

func (d *dealerAwaitingBitCommitments) receiveBitCommitments(commitments []*bitCommitment) (*dealerAwaitingPolyCommitments, *bitChallenge, error) {
	if int(d.m) != len(commitments) {
		return nil, nil, fmt.Errorf("receiveBitCommitments want %d commitments, have %d", d.m, len(commitments))
	}

	var A, S ristretto.Point
	A.SetZero()
	S.SetZero()
	for i := range commitments {
		d.transcript.AppendMessage([]byte("V"), commitments[i].VJ.Bytes())
		A.Add(&A, commitments[i].AJ)
		S.Add(&S, commitments[i].SJ)
	}
	appendPoint("A", &A, d.transcript)
	appendPoint("S", &S, d.transcript)

	challenge := &bitChallenge{
		Y: challengeScalar("y", d.transcript),
		Z: challengeScalar("z", d.transcript),
	}

	return &dealerAwaitingPolyCommitments{
		n:              d.n,
		m:              d.m,
		transcript:     d.transcript,
		bpGens:         d.bpGens,
		pcGens:         d.pcGens,
		bitChallenge:   challenge,
		bitCommitments: commitments,
		A:              &A,
		S:              &S,
	}, challenge, nil
}

type dealerAwaitingProofShares struct {
	n, m         int64
	transcript   *merlin.Transcript
	bpGens       *BulletproofGens
	pcGens       *PedersenGens
	bitChallenge *bitChallenge
	A            *ristretto.Point
	S            *ristretto.Point
	T1, T2       *ristretto.Point
}

func (d *dealerAwaitingPolyCommitments) receivePolyCommitments(commitments []*polyCommitment) (*dealerAwaitingProofShares, *polyChallenge, error) {
	if int(d.m) != len(commitments) {
		return nil, nil, fmt.Errorf("receivePolyCommitments want %d commitments, have %d", d.m, len(commitments))
	}

	var T1, T2 ristretto.Point
	T1.SetZero()
	T2.SetZero()
	for i := range commitments {
		T1.Add(&T1, commitments[i].T1J)
		T2.Add(&T2, commitments[i].T2J)
	}
	appendPoint("T_1", &T1, d.transcript)
	appendPoint("T_2", &T2, d.transcript)

	challenge := &polyChallenge{X: challengeScalar("x", d.transcript)}

	return &dealerAwaitingProofShares{
		n:            d.n,
		m:            d.m,
		transcript:   d.transcript,
		bpGens:       d.bpGens,
		pcGens:       d.pcGens,
		bitChallenge: d.bitChallenge,
		A:            d.A,
		S:            d.S,
		T1:           &T1,
		T2:           &T2,
	}, challenge, nil
}

func (s *proofShare) checkSize(n int64, bpGens *BulletproofGens, j int) error {
	if len(s.LVec) != int(n) || len(s.RVec) != int(n) {
		return fmt.Errorf("share %d has vectors of %d and %d entries, want %d", j, len(s.LVec), len(s.RVec), n)
	}
	if n > bpGens.GensCapacity {
		return fmt.Errorf("share %d needs %d generators, have %d", j, n, bpGens.GensCapacity)
	}
	return nil
}

// assembleShares sums the shares into the final proof and runs the
// inner-product argument over the concatenated vectors.
func (d *dealerAwaitingProofShares) assembleShares(shares []*proofShare) (*Bulletproof, error) {
	if int(d.m) != len(shares) {
		return nil, fmt.Errorf("assembleShares want %d shares, have %d", d.m, len(shares))
	}
	for j, s := range shares {
		if err := s.checkSize(d.n, d.bpGens, j); err != nil {
			return nil, err
		}
	}

	var tx, txBlinding, eBlinding ristretto.Scalar
	tx.SetZero()
	txBlinding.SetZero()
	eBlinding.SetZero()
	for i := range shares {
		tx.Add(&tx, shares[i].TX)
		txBlinding.Add(&txBlinding, shares[i].TXBlinding)
		eBlinding.Add(&eBlinding, shares[i].EBlinding)
	}

	appendScalar("t_x", &tx, d.transcript)
	appendScalar("t_x_blinding", &txBlinding, d.transcript)
	appendScalar("e_blinding", &eBlinding, d.transcript)

	w := challengeScalar("w", d.transcript)
	var Q ristretto.Point
	Q.ScalarMult(d.pcGens.B, w)

	gFactors := make([]*ristretto.Scalar, d.n*d.m)
	hFactors := make([]*ristretto.Scalar, d.n*d.m)
	var inverseY ristretto.Scalar
	inverseY.Inverse(d.bitChallenge.Y)
	exp := newScalarExp(&inverseY)
	for i := range gFactors {
		var one ristretto.Scalar
		gFactors[i] = one.SetOne()
		hFactors[i] = exp.Next()
	}

	// Clone the share vectors before the inner-product argument folds them
	// in place.
	var lVec, rVec []*ristretto.Scalar
	for i := range shares {
		for j := range shares[i].LVec {
			var l ristretto.Scalar
			lVec = append(lVec, l.Add(&l, shares[i].LVec[j]))
		}
		for j := range shares[i].RVec {
			var r ristretto.Scalar
			rVec = append(rVec, r.Add(&r, shares[i].RVec[j]))
		}
	}

	G := d.bpGens.G(d.n, d.m)
	H := d.bpGens.H(d.n, d.m)
	gVec := make([]*ristretto.Point, len(gFactors))
	hVec := make([]*ristretto.Point, len(hFactors))
	for i := range gVec {
		var g, h ristretto.Point
		g.SetZero()
		h.SetZero()
		gVec[i] = g.Add(&g, G.Next())
		hVec[i] = h.Add(&h, H.Next())
	}

	ipp, err := createInnerProductProof(d.transcript, &Q, gFactors, hFactors, gVec, hVec, lVec, rVec)
	if err != nil {
		return nil, err
	}

	proof := &Bulletproof{
		A:    pointToKey(d.A),
		S:    pointToKey(d.S),
		T1:   pointToKey(d.T1),
		T2:   pointToKey(d.T2),
		Taux: scalarToKey(&txBlinding),
		Mu:   scalarToKey(&eBlinding),
		T:    scalarToKey(&tx),
		Aa:   scalarToKey(ipp.a),
		Bb:   scalarToKey(ipp.b),
	}
	proof.L = make([]Key, len(ipp.lVec))
	proof.R = make([]Key, len(ipp.rVec))
	for i := range ipp.lVec {
		proof.L[i] = pointToKey(ipp.lVec[i])
		proof.R[i] = pointToKey(ipp.rVec[i])
	}
	return proof, nil
}
