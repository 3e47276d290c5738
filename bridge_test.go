package ringct

import (
	"bytes"
	"testing"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRing builds a ring of random decoys with one real member at index: the
// spend key's public key and a commitment to amount under a fresh blinding.
func testRing(device *Device, size, index int, amount uint64) ([]RingMember, InputKey) {
	var spend, mask ristretto.Scalar
	spend.Rand()
	mask.Rand()

	ring := make([]RingMember, size)
	for j := range ring {
		var d, c ristretto.Scalar
		var dp, cp ristretto.Point
		dp.ScalarMultBase(d.Rand())
		cp.ScalarMultBase(c.Rand())
		ring[j] = RingMember{Dest: dp.Bytes(), Mask: cp.Bytes()}
	}

	var public ristretto.Point
	public.ScalarMultBase(&spend)
	ring[index] = RingMember{
		Dest: public.Bytes(),
		Mask: device.Commit(amount, &mask).Bytes(),
	}
	return ring, InputKey{Spend: spend.Bytes(), Mask: mask.Bytes()}
}

func signParams(device *Device, ringSize int, indexes []int, inputs, outputs []uint64, fee uint64) *GenerateParams {
	params := &GenerateParams{
		PrefixHash: bytes.Repeat([]byte{0x42}, KeyLength),
		Indexes:    indexes,
		Inputs:     inputs,
		Outputs:    outputs,
		Fee:        fee,
	}
	for i := range inputs {
		ring, key := testRing(device, ringSize, indexes[i], inputs[i])
		params.Ring = append(params.Ring, ring)
		params.PrivateKeys = append(params.PrivateKeys, key)
	}
	for range outputs {
		var d, a ristretto.Scalar
		var dp ristretto.Point
		dp.ScalarMultBase(d.Rand())
		params.Destinations = append(params.Destinations, dp.Bytes())
		params.AmountKeys = append(params.AmountKeys, a.Rand().Bytes())
	}
	return params
}

func TestGenerateSingleInput(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	device := NewDevice()
	bridge := NewBridge(device, VariantCLSAG)
	params := signParams(device, 11, []int{7}, []uint64{1010}, []uint64{1000}, 10)

	sigs, err := bridge.Generate(params)
	require.NoError(err)

	require.Len(sigs.Prunable.RingSignatures, 1)
	sig := sigs.Prunable.RingSignatures[0]
	assert.Equal(VariantCLSAG, sig.Variant)
	assert.Nil(sig.MG)
	require.NotNil(sig.CLSAG)
	assert.Len(sig.CLSAG.S, 11)
	assert.NotEqual(Key{}, sig.CLSAG.C1)
	assert.NotEqual(Key{}, sig.CLSAG.D)

	require.Len(sigs.Prunable.PseudoOuts, 1)
	require.Len(sigs.Prunable.Bulletproofs, 1)
	proof := sigs.Prunable.Bulletproofs[0]
	assert.Len(proof.V, 1)
	assert.Len(proof.L, 6)
	assert.Equal(sigs.OutPublicKeys[0].Mask, proof.V[0])

	require.Len(sigs.OutPublicKeys, 1)
	assert.Equal(params.Destinations[0], sigs.OutPublicKeys[0].Dest[:])

	require.Len(sigs.ECDHInfo, 1)
	assert.Equal(Key{}, sigs.ECDHInfo[0].Mask)
	var amountKey Key
	copy(amountKey[:], params.AmountKeys[0])
	assert.Equal(uint64(1000), DecryptAmount(sigs.ECDHInfo[0], amountKey))
}

func TestGenerateMatrixVariant(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	device := NewDevice()
	bridge := NewBridge(device, VariantMG)
	params := signParams(device, 5, []int{0, 3}, []uint64{500, 410}, []uint64{600, 300}, 10)

	sigs, err := bridge.Generate(params)
	require.NoError(err)

	require.Len(sigs.Prunable.RingSignatures, 2)
	for _, sig := range sigs.Prunable.RingSignatures {
		assert.Equal(VariantMG, sig.Variant)
		assert.Nil(sig.CLSAG)
		require.NotNil(sig.MG)
		require.Len(sig.MG.SS, 5)
		for _, row := range sig.MG.SS {
			assert.Len(row, 2)
		}
		assert.NotEqual(Key{}, sig.MG.CC)
	}

	require.Len(sigs.Prunable.PseudoOuts, 2)
	require.Len(sigs.Prunable.Bulletproofs, 1)
	assert.Len(sigs.Prunable.Bulletproofs[0].V, 2)
}

func TestGenerateCommitmentBalance(t *testing.T) {
	require := require.New(t)

	device := NewDevice()
	bridge := NewBridge(device, VariantCLSAG)
	fee := uint64(25)
	params := signParams(device, 4, []int{1, 2, 0}, []uint64{700, 200, 125}, []uint64{400, 600}, fee)

	sigs, err := bridge.Generate(params)
	require.NoError(err)

	var sum ristretto.Point
	sum.SetZero()
	for _, out := range sigs.Prunable.PseudoOuts {
		p, err := decodePoint(out)
		require.NoError(err)
		sum.Add(&sum, p)
	}
	for _, out := range sigs.OutPublicKeys {
		p, err := decodePoint(out.Mask)
		require.NoError(err)
		sum.Sub(&sum, p)
	}

	// With balanced amounts the pseudo-outputs exceed the output
	// commitments by exactly the fee, with no residual blinding.
	var zero ristretto.Scalar
	zero.SetZero()
	require.Equal(device.Commit(fee, &zero).Bytes(), sum.Bytes())
}

func TestGenerateOutputCommitmentDerivation(t *testing.T) {
	require := require.New(t)

	device := NewDevice()
	bridge := NewBridge(device, VariantCLSAG)
	params := signParams(device, 3, []int{0}, []uint64{1500}, []uint64{900, 550}, 50)

	sigs, err := bridge.Generate(params)
	require.NoError(err)

	// The recipient recomputes each commitment from the shared amount key.
	for o := range sigs.OutPublicKeys {
		var amountKey Key
		copy(amountKey[:], params.AmountKeys[o])
		blinding := hashToScalar(COMMITMENT_MASK_DOMAIN_TAG, amountKey[:])
		amount := DecryptAmount(sigs.ECDHInfo[o], amountKey)
		require.Equal(sigs.OutPublicKeys[o].Mask, pointToKey(device.Commit(amount, blinding)))
	}
}

func TestGenerateMalformed(t *testing.T) {
	device := NewDevice()
	bridge := NewBridge(device, VariantCLSAG)

	cases := []struct {
		name   string
		mutate func(*GenerateParams)
	}{
		{"short prefix hash", func(p *GenerateParams) { p.PrefixHash = p.PrefixHash[:31] }},
		{"short spend key", func(p *GenerateParams) { p.PrivateKeys[0].Spend = p.PrivateKeys[0].Spend[:31] }},
		{"long mask", func(p *GenerateParams) { p.PrivateKeys[0].Mask = append(p.PrivateKeys[0].Mask, 0) }},
		{"no inputs", func(p *GenerateParams) { p.PrivateKeys = nil }},
		{"no outputs", func(p *GenerateParams) { p.Destinations = nil }},
		{"empty ring", func(p *GenerateParams) { p.Ring[0] = nil }},
		{"index out of range", func(p *GenerateParams) { p.Indexes[0] = len(p.Ring[0]) }},
		{"negative index", func(p *GenerateParams) { p.Indexes[0] = -1 }},
		{"ring count mismatch", func(p *GenerateParams) { p.Ring = append(p.Ring, p.Ring[0]) }},
		{"amount key count mismatch", func(p *GenerateParams) { p.AmountKeys = p.AmountKeys[:0] }},
		{"short ring member", func(p *GenerateParams) { p.Ring[0][2].Dest = p.Ring[0][2].Dest[:16] }},
		{"too many outputs", func(p *GenerateParams) {
			for len(p.Destinations) <= MAX_OUTPUTS {
				p.Destinations = append(p.Destinations, p.Destinations[0])
				p.AmountKeys = append(p.AmountKeys, p.AmountKeys[0])
				p.Outputs = append(p.Outputs, 1)
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := signParams(device, 11, []int{7}, []uint64{1010}, []uint64{1000}, 10)
			tc.mutate(params)
			_, err := bridge.Generate(params)
			require.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestGenerateInvalidRingEncoding(t *testing.T) {
	device := NewDevice()
	bridge := NewBridge(device, VariantCLSAG)

	params := signParams(device, 11, []int{7}, []uint64{1010}, []uint64{1000}, 10)
	params.Ring[0][3].Dest = bytes.Repeat([]byte{0xff}, KeyLength)

	_, err := bridge.Generate(params)
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestGenerateValueNotConserved(t *testing.T) {
	device := NewDevice()
	bridge := NewBridge(device, VariantCLSAG)

	params := signParams(device, 11, []int{7}, []uint64{1010}, []uint64{1000}, 10)
	// Claim one more than the real member's commitment holds.
	params.Inputs[0] = 1011

	_, err := bridge.Generate(params)
	require.ErrorIs(t, err, ErrSigningFailure)
}

func TestGenerateUnknownVariant(t *testing.T) {
	device := NewDevice()
	bridge := NewBridge(device, Variant(9))

	params := signParams(device, 3, []int{0}, []uint64{100}, []uint64{100}, 0)
	_, err := bridge.Generate(params)
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestDecryptAmountRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, amount := range []uint64{0, 1, 10, 1000, 1 << 40, ^uint64(0)} {
		var k ristretto.Scalar
		key := scalarToKey(k.Rand())
		tuple := encryptAmount(amount, key)
		require.Equal(amount, DecryptAmount(tuple, key))

		var other ristretto.Scalar
		wrong := DecryptAmount(tuple, scalarToKey(other.Rand()))
		require.NotEqual(amount, wrong)
	}
}
