package ringct

import "fmt"

// ReconstructParams carries already-computed field values, one raw buffer
// per field. Exactly one of the two ring signature groups may be populated,
// according to Variant: the matrix group (RingScalars, RingChallenges) or
// the linear group (LinearScalars, LinearChallenges, LinearD).
type ReconstructParams struct {
	Variant Variant

	Amounts       [][]byte // AmountLength bytes each, one per output
	OutPublicKeys [][]byte // one commitment per output

	// Bulletproof fields, one entry per proof.
	A    [][]byte
	S    [][]byte
	T1   [][]byte
	T2   [][]byte
	Taux [][]byte
	Mu   [][]byte
	L    [][][]byte
	R    [][][]byte
	Aa   [][]byte
	Bb   [][]byte
	T    [][]byte

	// Matrix variant, one entry per input. Each scalar matrix has one row
	// per ring member and exactly two columns.
	RingScalars    [][][][]byte
	RingChallenges [][]byte

	// Linear variant, one entry per input.
	LinearScalars    [][][]byte
	LinearChallenges [][]byte
	LinearD          [][]byte

	PseudoOuts [][]byte // one per input
}

// Reconstruct assembles a RingCTSignatures from raw field values without any
// proving work. It validates widths and parallel lengths only; whether the
// assembled object satisfies the signature equations is the verifier's
// business, not this function's.
func Reconstruct(params *ReconstructParams) (*RingCTSignatures, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	result := &RingCTSignatures{}

	result.ECDHInfo = make([]ECDHTuple, len(params.Amounts))
	for o := range params.Amounts {
		copy(result.ECDHInfo[o].Amount[:AmountLength], params.Amounts[o])
	}

	result.OutPublicKeys = make([]CTKey, len(params.OutPublicKeys))
	for k := range params.OutPublicKeys {
		copy(result.OutPublicKeys[k].Mask[:], params.OutPublicKeys[k])
	}

	result.Prunable.Bulletproofs = make([]*Bulletproof, len(params.A))
	for bp := range params.A {
		proof := &Bulletproof{}
		copy(proof.A[:], params.A[bp])
		copy(proof.S[:], params.S[bp])
		copy(proof.T1[:], params.T1[bp])
		copy(proof.T2[:], params.T2[bp])
		copy(proof.Taux[:], params.Taux[bp])
		copy(proof.Mu[:], params.Mu[bp])

		proof.L = make([]Key, len(params.L[bp]))
		for i := range params.L[bp] {
			copy(proof.L[i][:], params.L[bp][i])
		}
		proof.R = make([]Key, len(params.R[bp]))
		for i := range params.R[bp] {
			copy(proof.R[i][:], params.R[bp][i])
		}

		copy(proof.Aa[:], params.Aa[bp])
		copy(proof.Bb[:], params.Bb[bp])
		copy(proof.T[:], params.T[bp])
		result.Prunable.Bulletproofs[bp] = proof
	}

	// The reconstruction inputs never carry V: under the padded
	// configuration a single proof's commitments are the output
	// commitments, padded by repeating the last one.
	if len(result.Prunable.Bulletproofs) == 1 && len(result.OutPublicKeys) > 0 {
		padded := nextPowerOfTwo(len(result.OutPublicKeys))
		v := make([]Key, padded)
		for i := 0; i < padded; i++ {
			if i < len(result.OutPublicKeys) {
				v[i] = result.OutPublicKeys[i].Mask
			} else {
				v[i] = v[i-1]
			}
		}
		result.Prunable.Bulletproofs[0].V = v
	}

	switch params.Variant {
	case VariantMG:
		result.Prunable.RingSignatures = make([]*RingSignature, len(params.RingScalars))
		for i := range params.RingScalars {
			mg := &MGSignature{SS: make([][]Key, len(params.RingScalars[i]))}
			for row := range params.RingScalars[i] {
				mg.SS[row] = make([]Key, len(params.RingScalars[i][row]))
				for col := range params.RingScalars[i][row] {
					copy(mg.SS[row][col][:], params.RingScalars[i][row][col])
				}
			}
			copy(mg.CC[:], params.RingChallenges[i])
			result.Prunable.RingSignatures[i] = &RingSignature{Variant: VariantMG, MG: mg}
		}
	case VariantCLSAG:
		result.Prunable.RingSignatures = make([]*RingSignature, len(params.LinearScalars))
		for i := range params.LinearScalars {
			cl := &CLSAG{S: make([]Key, len(params.LinearScalars[i]))}
			for j := range params.LinearScalars[i] {
				copy(cl.S[j][:], params.LinearScalars[i][j])
			}
			copy(cl.C1[:], params.LinearChallenges[i])
			copy(cl.D[:], params.LinearD[i])
			result.Prunable.RingSignatures[i] = &RingSignature{Variant: VariantCLSAG, CLSAG: cl}
		}
	}

	result.Prunable.PseudoOuts = make([]Key, len(params.PseudoOuts))
	for o := range params.PseudoOuts {
		copy(result.Prunable.PseudoOuts[o][:], params.PseudoOuts[o])
	}

	return result, nil
}

func (p *ReconstructParams) validate() error {
	if len(p.Amounts) != len(p.OutPublicKeys) {
		return fmt.Errorf("%w: %d amounts, %d output keys", ErrMalformedInput, len(p.Amounts), len(p.OutPublicKeys))
	}
	for o := range p.Amounts {
		if len(p.Amounts[o]) != AmountLength {
			return fmt.Errorf("%w: amount %d is %d bytes, want %d", ErrMalformedInput, o, len(p.Amounts[o]), AmountLength)
		}
	}
	if err := checkKeyVector("output key", p.OutPublicKeys); err != nil {
		return err
	}

	proofs := len(p.A)
	for name, fields := range map[string][][]byte{
		"S": p.S, "T1": p.T1, "T2": p.T2, "taux": p.Taux, "mu": p.Mu,
		"a": p.Aa, "b": p.Bb, "t": p.T,
	} {
		if len(fields) != proofs {
			return fmt.Errorf("%w: %d %s entries, %d proofs", ErrMalformedInput, len(fields), name, proofs)
		}
	}
	if len(p.L) != proofs || len(p.R) != proofs {
		return fmt.Errorf("%w: %d L and %d R vectors, %d proofs", ErrMalformedInput, len(p.L), len(p.R), proofs)
	}
	for _, fields := range [][][]byte{p.A, p.S, p.T1, p.T2, p.Taux, p.Mu, p.Aa, p.Bb, p.T} {
		if err := checkKeyVector("proof field", fields); err != nil {
			return err
		}
	}
	for bp := 0; bp < proofs; bp++ {
		if len(p.L[bp]) != len(p.R[bp]) {
			return fmt.Errorf("%w: proof %d has %d L and %d R rounds", ErrMalformedInput, bp, len(p.L[bp]), len(p.R[bp]))
		}
		if err := checkKeyVector("L", p.L[bp]); err != nil {
			return err
		}
		if err := checkKeyVector("R", p.R[bp]); err != nil {
			return err
		}
	}

	var inputs int
	switch p.Variant {
	case VariantMG:
		if len(p.LinearScalars) != 0 || len(p.LinearChallenges) != 0 || len(p.LinearD) != 0 {
			return fmt.Errorf("%w: linear fields supplied for the matrix variant", ErrMalformedInput)
		}
		inputs = len(p.RingScalars)
		if len(p.RingChallenges) != inputs {
			return fmt.Errorf("%w: %d scalar matrices, %d challenges", ErrMalformedInput, inputs, len(p.RingChallenges))
		}
		if err := checkKeyVector("ring challenge", p.RingChallenges); err != nil {
			return err
		}
		for i := range p.RingScalars {
			for row := range p.RingScalars[i] {
				if len(p.RingScalars[i][row]) != 2 {
					return fmt.Errorf("%w: matrix row [%d][%d] has %d columns, want 2",
						ErrMalformedInput, i, row, len(p.RingScalars[i][row]))
				}
				if err := checkKeyVector("ring scalar", p.RingScalars[i][row]); err != nil {
					return err
				}
			}
		}
	case VariantCLSAG:
		if len(p.RingScalars) != 0 || len(p.RingChallenges) != 0 {
			return fmt.Errorf("%w: matrix fields supplied for the linear variant", ErrMalformedInput)
		}
		inputs = len(p.LinearScalars)
		if len(p.LinearChallenges) != inputs || len(p.LinearD) != inputs {
			return fmt.Errorf("%w: %d scalar vectors, %d challenges, %d D keys",
				ErrMalformedInput, inputs, len(p.LinearChallenges), len(p.LinearD))
		}
		if err := checkKeyVector("ring challenge", p.LinearChallenges); err != nil {
			return err
		}
		if err := checkKeyVector("D", p.LinearD); err != nil {
			return err
		}
		for i := range p.LinearScalars {
			if err := checkKeyVector("ring scalar", p.LinearScalars[i]); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unknown signature variant %d", ErrMalformedInput, p.Variant)
	}

	if len(p.PseudoOuts) != inputs {
		return fmt.Errorf("%w: %d pseudo outputs, %d ring signatures", ErrMalformedInput, len(p.PseudoOuts), inputs)
	}
	return checkKeyVector("pseudo output", p.PseudoOuts)
}

func checkKeyVector(name string, keys [][]byte) error {
	for i := range keys {
		if len(keys[i]) != KeyLength {
			return fmt.Errorf("%w: %s %d is %d bytes, want %d", ErrMalformedInput, name, i, len(keys[i]), KeyLength)
		}
	}
	return nil
}
