package ringct

import "encoding/binary"

// Wire type bytes for the two signature variants.
const (
	typeBulletproofMG    byte = 4
	typeBulletproofCLSAG byte = 5
)

func (r *RingCTSignatures) typeByte() byte {
	if len(r.Prunable.RingSignatures) > 0 && r.Prunable.RingSignatures[0].Variant == VariantMG {
		return typeBulletproofMG
	}
	return typeBulletproofCLSAG
}

// SerializeBase encodes the non-prunable half of the envelope: the type
// byte, the fee, the compact encrypted amounts and the output commitments.
func (r *RingCTSignatures) SerializeBase(fee uint64) []byte {
	buf := []byte{r.typeByte()}
	buf = binary.AppendUvarint(buf, fee)
	for o := range r.ECDHInfo {
		buf = append(buf, r.ECDHInfo[o].Amount[:AmountLength]...)
	}
	for k := range r.OutPublicKeys {
		buf = append(buf, r.OutPublicKeys[k].Mask[:]...)
	}
	return buf
}

// SerializePrunable encodes the witness half: range proofs, ring signatures
// and pseudo-outputs. Only the inner-product rounds carry explicit counts;
// everything else is implied by the transaction shape.
func (r *RingCTSignatures) SerializePrunable() []byte {
	buf := binary.AppendUvarint(nil, uint64(len(r.Prunable.Bulletproofs)))
	for _, proof := range r.Prunable.Bulletproofs {
		buf = appendBulletproof(buf, proof)
	}

	for _, sig := range r.Prunable.RingSignatures {
		switch sig.Variant {
		case VariantMG:
			for row := range sig.MG.SS {
				for col := range sig.MG.SS[row] {
					buf = append(buf, sig.MG.SS[row][col][:]...)
				}
			}
			buf = append(buf, sig.MG.CC[:]...)
		case VariantCLSAG:
			for i := range sig.CLSAG.S {
				buf = append(buf, sig.CLSAG.S[i][:]...)
			}
			buf = append(buf, sig.CLSAG.C1[:]...)
			buf = append(buf, sig.CLSAG.D[:]...)
		}
	}

	for i := range r.Prunable.PseudoOuts {
		buf = append(buf, r.Prunable.PseudoOuts[i][:]...)
	}
	return buf
}

func appendBulletproof(buf []byte, proof *Bulletproof) []byte {
	buf = append(buf, proof.A[:]...)
	buf = append(buf, proof.S[:]...)
	buf = append(buf, proof.T1[:]...)
	buf = append(buf, proof.T2[:]...)
	buf = append(buf, proof.Taux[:]...)
	buf = append(buf, proof.Mu[:]...)

	buf = binary.AppendUvarint(buf, uint64(len(proof.L)))
	for i := range proof.L {
		buf = append(buf, proof.L[i][:]...)
	}
	buf = binary.AppendUvarint(buf, uint64(len(proof.R)))
	for i := range proof.R {
		buf = append(buf, proof.R[i][:]...)
	}

	buf = append(buf, proof.Aa[:]...)
	buf = append(buf, proof.Bb[:]...)
	buf = append(buf, proof.T[:]...)
	return buf
}
