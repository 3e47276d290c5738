package ringct

import "github.com/bwesterb/go-ristretto"

// Messages exchanged between the dealer and the per-commitment parties while
// building an aggregated range proof.

type bitCommitment struct {
	VJ *ristretto.Point
	AJ *ristretto.Point
	SJ *ristretto.Point
}

type bitChallenge struct {
	Y *ristretto.Scalar
	Z *ristretto.Scalar
}

type polyCommitment struct {
	T1J *ristretto.Point
	T2J *ristretto.Point
}

type polyChallenge struct {
	X *ristretto.Scalar
}

type proofShare struct {
	TX         *ristretto.Scalar
	TXBlinding *ristretto.Scalar
	EBlinding  *ristretto.Scalar
	LVec       []*ristretto.Scalar
	RVec       []*ristretto.Scalar
}
