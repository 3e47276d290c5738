package ringct

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fieldsOf flattens a generated envelope into the raw per-field buffers a
// caller holds after computing the signature elsewhere.
func fieldsOf(sigs *RingCTSignatures, variant Variant) *ReconstructParams {
	params := &ReconstructParams{Variant: variant}

	for o := range sigs.ECDHInfo {
		params.Amounts = append(params.Amounts, sigs.ECDHInfo[o].Amount[:AmountLength])
	}
	for k := range sigs.OutPublicKeys {
		params.OutPublicKeys = append(params.OutPublicKeys, sigs.OutPublicKeys[k].Mask[:])
	}

	for _, proof := range sigs.Prunable.Bulletproofs {
		params.A = append(params.A, proof.A[:])
		params.S = append(params.S, proof.S[:])
		params.T1 = append(params.T1, proof.T1[:])
		params.T2 = append(params.T2, proof.T2[:])
		params.Taux = append(params.Taux, proof.Taux[:])
		params.Mu = append(params.Mu, proof.Mu[:])
		var l, r [][]byte
		for i := range proof.L {
			l = append(l, proof.L[i][:])
		}
		for i := range proof.R {
			r = append(r, proof.R[i][:])
		}
		params.L = append(params.L, l)
		params.R = append(params.R, r)
		params.Aa = append(params.Aa, proof.Aa[:])
		params.Bb = append(params.Bb, proof.Bb[:])
		params.T = append(params.T, proof.T[:])
	}

	for _, sig := range sigs.Prunable.RingSignatures {
		switch sig.Variant {
		case VariantMG:
			var matrix [][][]byte
			for row := range sig.MG.SS {
				var cols [][]byte
				for col := range sig.MG.SS[row] {
					cols = append(cols, sig.MG.SS[row][col][:])
				}
				matrix = append(matrix, cols)
			}
			params.RingScalars = append(params.RingScalars, matrix)
			params.RingChallenges = append(params.RingChallenges, sig.MG.CC[:])
		case VariantCLSAG:
			var scalars [][]byte
			for i := range sig.CLSAG.S {
				scalars = append(scalars, sig.CLSAG.S[i][:])
			}
			params.LinearScalars = append(params.LinearScalars, scalars)
			params.LinearChallenges = append(params.LinearChallenges, sig.CLSAG.C1[:])
			params.LinearD = append(params.LinearD, sig.CLSAG.D[:])
		}
	}

	for i := range sigs.Prunable.PseudoOuts {
		params.PseudoOuts = append(params.PseudoOuts, sigs.Prunable.PseudoOuts[i][:])
	}
	return params
}

func TestReconstructRoundTripLinear(t *testing.T) {
	require := require.New(t)

	device := NewDevice()
	bridge := NewBridge(device, VariantCLSAG)
	// Three outputs, so the range proof commitments are padded to four.
	params := signParams(device, 11, []int{7}, []uint64{1010}, []uint64{400, 350, 250}, 10)

	sigs, err := bridge.Generate(params)
	require.NoError(err)
	require.Len(sigs.Prunable.Bulletproofs[0].V, 4)

	rebuilt, err := Reconstruct(fieldsOf(sigs, VariantCLSAG))
	require.NoError(err)

	// The field values never carry destinations; everything else must
	// match the generated envelope exactly, padded commitments included.
	for k := range sigs.OutPublicKeys {
		sigs.OutPublicKeys[k].Dest = Key{}
	}
	require.Equal(sigs, rebuilt)
}

func TestReconstructRoundTripMatrix(t *testing.T) {
	require := require.New(t)

	device := NewDevice()
	bridge := NewBridge(device, VariantMG)
	params := signParams(device, 4, []int{2, 0}, []uint64{300, 200}, []uint64{490}, 10)

	sigs, err := bridge.Generate(params)
	require.NoError(err)

	rebuilt, err := Reconstruct(fieldsOf(sigs, VariantMG))
	require.NoError(err)

	for k := range sigs.OutPublicKeys {
		sigs.OutPublicKeys[k].Dest = Key{}
	}
	require.Equal(sigs, rebuilt)
}

func TestReconstructRejections(t *testing.T) {
	device := NewDevice()

	build := func(t *testing.T, variant Variant) *ReconstructParams {
		bridge := NewBridge(device, variant)
		sigs, err := bridge.Generate(signParams(device, 3, []int{1}, []uint64{100}, []uint64{90}, 10))
		require.NoError(t, err)
		return fieldsOf(sigs, variant)
	}

	cases := []struct {
		name    string
		variant Variant
		mutate  func(*ReconstructParams)
	}{
		{"short amount", VariantCLSAG, func(p *ReconstructParams) { p.Amounts[0] = p.Amounts[0][:7] }},
		{"amount count mismatch", VariantCLSAG, func(p *ReconstructParams) { p.Amounts = append(p.Amounts, p.Amounts[0]) }},
		{"short output key", VariantCLSAG, func(p *ReconstructParams) { p.OutPublicKeys[0] = p.OutPublicKeys[0][:31] }},
		{"proof field count mismatch", VariantCLSAG, func(p *ReconstructParams) { p.T1 = nil }},
		{"short proof field", VariantCLSAG, func(p *ReconstructParams) { p.Taux[0] = p.Taux[0][:16] }},
		{"round count mismatch", VariantCLSAG, func(p *ReconstructParams) { p.L[0] = p.L[0][:5] }},
		{"short round element", VariantCLSAG, func(p *ReconstructParams) { p.R[0][2] = p.R[0][2][:8] }},
		{"challenge count mismatch", VariantCLSAG, func(p *ReconstructParams) { p.LinearChallenges = nil }},
		{"short D", VariantCLSAG, func(p *ReconstructParams) { p.LinearD[0] = p.LinearD[0][:30] }},
		{"matrix fields on linear variant", VariantCLSAG, func(p *ReconstructParams) {
			p.RingChallenges = [][]byte{p.LinearChallenges[0]}
		}},
		{"pseudo output count mismatch", VariantCLSAG, func(p *ReconstructParams) { p.PseudoOuts = nil }},
		{"short pseudo output", VariantCLSAG, func(p *ReconstructParams) { p.PseudoOuts[0] = p.PseudoOuts[0][:20] }},
		{"wide matrix row", VariantMG, func(p *ReconstructParams) {
			p.RingScalars[0][1] = append(p.RingScalars[0][1], p.RingScalars[0][1][0])
		}},
		{"linear fields on matrix variant", VariantMG, func(p *ReconstructParams) {
			p.LinearD = [][]byte{p.RingChallenges[0]}
		}},
		{"unknown variant", VariantCLSAG, func(p *ReconstructParams) { p.Variant = Variant(7) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := build(t, tc.variant)
			tc.mutate(params)
			_, err := Reconstruct(params)
			require.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}
