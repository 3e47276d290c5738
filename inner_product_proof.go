package ringct

import (
	"fmt"
	"math/bits"

	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"
)

type innerProductProof struct {
	lVec []*ristretto.Point
	rVec []*ristretto.Point
	a, b *ristretto.Scalar
}

// createInnerProductProof folds the a and b vectors down to single scalars,
// emitting one L/R pair per halving round. The first round also folds the
// per-generator factors in; aVec, bVec, gVec and hVec are consumed.
func createInnerProductProof(transcript *merlin.Transcript, Q *ristretto.Point, gFactors, hFactors []*ristretto.Scalar, gVec, hVec []*ristretto.Point, aVec, bVec []*ristretto.Scalar) (*innerProductProof, error) {
	n := len(gVec)
	if len(hVec) != n || len(aVec) != n || len(bVec) != n || len(gFactors) != n || len(hFactors) != n {
		return nil, fmt.Errorf("inner product vectors disagree: %d, %d, %d, %d, %d, %d",
			len(gVec), len(hVec), len(aVec), len(bVec), len(gFactors), len(hFactors))
	}
	if bits.OnesCount(uint(n)) > 1 {
		return nil, fmt.Errorf("inner product size %d is not a power of two", n)
	}

	G := gVec
	H := hVec
	a := aVec
	b := bVec

	innerproductDomainSep(uint64(n), transcript)

	var lVec, rVec []*ristretto.Point

	if n != 1 {
		n = n / 2
		aL, aR := a[:n], a[n:]
		bL, bR := b[:n], b[n:]
		gL, gR := G[:n], G[n:]
		hL, hR := H[:n], H[n:]

		cL := innerProduct(aL, bR)
		cR := innerProduct(aR, bL)

		scalarsL := make([]*ristretto.Scalar, 0, 2*n+1)
		for i := range aL {
			var r ristretto.Scalar
			scalarsL = append(scalarsL, r.Mul(aL[i], gFactors[n+i]))
		}
		for i := range bR {
			var r ristretto.Scalar
			scalarsL = append(scalarsL, r.Mul(bR[i], hFactors[i]))
		}
		scalarsL = append(scalarsL, cL)

		pointsL := make([]*ristretto.Point, 0, 2*n+1)
		pointsL = append(pointsL, gR...)
		pointsL = append(pointsL, hL...)
		pointsL = append(pointsL, Q)
		L := multiscalarMul(scalarsL, pointsL)

		scalarsR := make([]*ristretto.Scalar, 0, 2*n+1)
		for i := range aR {
			var r ristretto.Scalar
			scalarsR = append(scalarsR, r.Mul(aR[i], gFactors[i]))
		}
		for i := range bL {
			var r ristretto.Scalar
			scalarsR = append(scalarsR, r.Mul(bL[i], hFactors[n+i]))
		}
		scalarsR = append(scalarsR, cR)

		pointsR := make([]*ristretto.Point, 0, 2*n+1)
		pointsR = append(pointsR, gL...)
		pointsR = append(pointsR, hR...)
		pointsR = append(pointsR, Q)
		R := multiscalarMul(scalarsR, pointsR)

		lVec = append(lVec, L)
		rVec = append(rVec, R)
		appendPoint("L", L, transcript)
		appendPoint("R", R, transcript)

		u := challengeScalar("u", transcript)
		var uInv ristretto.Scalar
		uInv.Inverse(u)

		for i := 0; i < n; i++ {
			var r1, r2 ristretto.Scalar
			aL[i].Add(r1.Mul(aL[i], u), r2.Mul(&uInv, aR[i]))
			var r3, r4 ristretto.Scalar
			bL[i].Add(r3.Mul(bL[i], &uInv), r4.Mul(u, bR[i]))
			var f1, f2 ristretto.Scalar
			f1.Mul(&uInv, gFactors[i])
			f2.Mul(u, gFactors[n+i])
			gL[i] = multiscalarMul([]*ristretto.Scalar{&f1, &f2}, []*ristretto.Point{gL[i], gR[i]})
			var f3, f4 ristretto.Scalar
			f3.Mul(u, hFactors[i])
			f4.Mul(&uInv, hFactors[n+i])
			hL[i] = multiscalarMul([]*ristretto.Scalar{&f3, &f4}, []*ristretto.Point{hL[i], hR[i]})
		}

		a = aL
		b = bL
		G = gL
		H = hL
	}

	for n != 1 {
		n = n / 2
		aL, aR := a[:n], a[n:]
		bL, bR := b[:n], b[n:]
		gL, gR := G[:n], G[n:]
		hL, hR := H[:n], H[n:]

		cL := innerProduct(aL, bR)
		cR := innerProduct(aR, bL)

		scalarsL := make([]*ristretto.Scalar, 0, 2*n+1)
		scalarsL = append(scalarsL, aL...)
		scalarsL = append(scalarsL, bR...)
		scalarsL = append(scalarsL, cL)
		pointsL := make([]*ristretto.Point, 0, 2*n+1)
		pointsL = append(pointsL, gR...)
		pointsL = append(pointsL, hL...)
		pointsL = append(pointsL, Q)
		L := multiscalarMul(scalarsL, pointsL)

		scalarsR := make([]*ristretto.Scalar, 0, 2*n+1)
		scalarsR = append(scalarsR, aR...)
		scalarsR = append(scalarsR, bL...)
		scalarsR = append(scalarsR, cR)
		pointsR := make([]*ristretto.Point, 0, 2*n+1)
		pointsR = append(pointsR, gL...)
		pointsR = append(pointsR, hR...)
		pointsR = append(pointsR, Q)
		R := multiscalarMul(scalarsR, pointsR)

		lVec = append(lVec, L)
		rVec = append(rVec, R)
		appendPoint("L", L, transcript)
		appendPoint("R", R, transcript)

		u := challengeScalar("u", transcript)
		var uInv ristretto.Scalar
		uInv.Inverse(u)

		for i := 0; i < n; i++ {
			var r1, r2 ristretto.Scalar
			aL[i].Add(r1.Mul(aL[i], u), r2.Mul(&uInv, aR[i]))
			var r3, r4 ristretto.Scalar
			bL[i].Add(r3.Mul(bL[i], &uInv), r4.Mul(u, bR[i]))
			gL[i] = multiscalarMul([]*ristretto.Scalar{&uInv, u}, []*ristretto.Point{gL[i], gR[i]})
			hL[i] = multiscalarMul([]*ristretto.Scalar{u, &uInv}, []*ristretto.Point{hL[i], hR[i]})
		}

		a = aL
		b = bL
		G = gL
		H = hL
	}

	return &innerProductProof{lVec: lVec, rVec: rVec, a: a[0], b: b[0]}, nil
}
