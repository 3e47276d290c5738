package ringct

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/bwesterb/go-ristretto"
	"github.com/dchest/blake2b"
)

// Generate produces the full signature envelope for a transaction: encrypted
// amounts and commitments per output, then one pseudo-output, and one ring
// signature of the configured variant per input, all bound to the prefix
// hash through the signed message.
func (b *Bridge) Generate(params *GenerateParams) (*RingCTSignatures, error) {
	enc, err := params.encode()
	if err != nil {
		return nil, err
	}

	ins := len(params.PrivateKeys)
	outs := len(params.Destinations)

	// Output commitments. The blinding of each output is derived from its
	// amount key, which is how the recipient recovers it.
	outBlindings := make([]*ristretto.Scalar, outs)
	outPublicKeys := make([]CTKey, outs)
	ecdhInfo := make([]ECDHTuple, outs)
	var sumOfOutputBlindings ristretto.Scalar
	sumOfOutputBlindings.SetZero()
	for o := 0; o < outs; o++ {
		outBlindings[o] = hashToScalar(COMMITMENT_MASK_DOMAIN_TAG, enc.amountKeys[o][:])
		sumOfOutputBlindings.Add(&sumOfOutputBlindings, outBlindings[o])

		commitment := b.device.Commit(params.Outputs[o], outBlindings[o])
		outPublicKeys[o] = CTKey{Dest: enc.dests[o], Mask: pointToKey(commitment)}
		ecdhInfo[o] = encryptAmount(params.Outputs[o], enc.amountKeys[o])
	}

	// Pseudo-output commitments. The last blinding closes the sum so the
	// pseudo-outputs balance the output commitments plus fee.
	pseudoBlindings := make([]*ristretto.Scalar, ins)
	var sumOfPseudoBlindings ristretto.Scalar
	sumOfPseudoBlindings.SetZero()
	for i := 0; i < ins-1; i++ {
		var r ristretto.Scalar
		pseudoBlindings[i] = r.Rand()
		sumOfPseudoBlindings.Add(&sumOfPseudoBlindings, pseudoBlindings[i])
	}
	var lastBlinding ristretto.Scalar
	lastBlinding.Sub(&sumOfOutputBlindings, &sumOfPseudoBlindings)
	pseudoBlindings[ins-1] = &lastBlinding

	pseudoPoints := make([]*ristretto.Point, ins)
	pseudoOuts := make([]Key, ins)
	for i := 0; i < ins; i++ {
		pseudoPoints[i] = b.device.Commit(params.Inputs[i], pseudoBlindings[i])
		pseudoOuts[i] = pointToKey(pseudoPoints[i])
	}

	proof, err := proveRangeBulletproof(b.device, params.Outputs, outBlindings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailure, err)
	}

	message := signedMessage(enc.prefixHash, params.Fee, pseudoOuts, proof)

	ringSignatures := make([]*RingSignature, ins)
	for i := 0; i < ins; i++ {
		// z is the secret behind C_real - pseudoOut. If the caller's
		// claimed amount or mask disagrees with the real ring member's
		// commitment, the difference is not z*G and the signature could
		// never verify, so fail here.
		var z ristretto.Scalar
		z.Sub(enc.maskKeys[i], pseudoBlindings[i])

		real := enc.ring[i][enc.indexes[i]]
		var diff, zg ristretto.Point
		diff.Sub(real.mask, pseudoPoints[i])
		if !bytes.Equal(diff.Bytes(), zg.ScalarMultBase(&z).Bytes()) {
			return nil, fmt.Errorf("%w: input %d value not conserved", ErrSigningFailure, i)
		}

		switch b.variant {
		case VariantMG:
			mg, err := signMLSAG(message, enc.ring[i], enc.indexes[i], enc.spendKeys[i], &z, pseudoPoints[i])
			if err != nil {
				return nil, fmt.Errorf("%w: input %d: %v", ErrSigningFailure, i, err)
			}
			ringSignatures[i] = &RingSignature{Variant: VariantMG, MG: mg}
		case VariantCLSAG:
			cl, err := signCLSAG(message, enc.ring[i], enc.indexes[i], enc.spendKeys[i], &z, pseudoPoints[i])
			if err != nil {
				return nil, fmt.Errorf("%w: input %d: %v", ErrSigningFailure, i, err)
			}
			ringSignatures[i] = &RingSignature{Variant: VariantCLSAG, CLSAG: cl}
		default:
			return nil, fmt.Errorf("%w: unknown signature variant %d", ErrMalformedInput, b.variant)
		}
	}

	return &RingCTSignatures{
		ECDHInfo:      ecdhInfo,
		OutPublicKeys: outPublicKeys,
		Prunable: RingCTPrunable{
			PseudoOuts:     pseudoOuts,
			Bulletproofs:   []*Bulletproof{proof},
			RingSignatures: ringSignatures,
		},
	}, nil
}

// signedMessage binds the ring signatures to the transaction body, the fee,
// the pseudo-outputs and the range proof.
func signedMessage(prefixHash []byte, fee uint64, pseudoOuts []Key, proof *Bulletproof) []byte {
	hash := blake2b.New256()
	hash.Write([]byte(MESSAGE_DOMAIN_TAG))
	hash.Write(prefixHash)
	hash.Write(binary.AppendUvarint(nil, fee))
	for i := range pseudoOuts {
		hash.Write(pseudoOuts[i][:])
	}
	hash.Write(appendBulletproof(nil, proof))
	return hash.Sum(nil)
}

func amountMask(amountKey Key) uint64 {
	hash := blake2b.New512()
	hash.Write([]byte(ECDH_AMOUNT_DOMAIN_TAG))
	hash.Write(amountKey[:])
	var key [64]byte
	copy(key[:], hash.Sum(nil))

	var hs ristretto.Scalar
	return binary.LittleEndian.Uint64(hs.SetReduced(&key).Bytes()[:AmountLength])
}

// encryptAmount stores the amount XORed with a mask only the holder of the
// amount key can recompute. Under the compact encoding the mask field stays
// zero and only the first AmountLength bytes of the amount are meaningful.
func encryptAmount(amount uint64, amountKey Key) ECDHTuple {
	var t ECDHTuple
	binary.LittleEndian.PutUint64(t.Amount[:AmountLength], amount^amountMask(amountKey))
	return t
}

// DecryptAmount is the inverse of the encryption Generate applies, for use
// by the receiving side.
func DecryptAmount(tuple ECDHTuple, amountKey Key) uint64 {
	return binary.LittleEndian.Uint64(tuple.Amount[:AmountLength]) ^ amountMask(amountKey)
}
