package ringct

import (
	"fmt"

	"github.com/bwesterb/go-ristretto"
)

// proveRangeBulletproof builds one aggregated range proof over the given
// values. The set is padded to the next power of two by repeating the last
// entry, so the returned proof carries the padded commitment list in V; the
// first len(values) commitments are the callers' own.
func proveRangeBulletproof(device *Device, values []uint64, blindings []*ristretto.Scalar) (*Bulletproof, error) {
	if len(values) != len(blindings) {
		return nil, fmt.Errorf("%d values with %d blindings", len(values), len(blindings))
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("nothing to prove")
	}

	padded := resizeUint64ToPow2(values)
	paddedBlindings := resizeScalarToPow2(blindings)

	transcript := newProofTranscript()
	dealer, err := newDealer(device.bpGens, device.pcGens, transcript, RANGE_PROOF_BITS, int64(len(padded)))
	if err != nil {
		return nil, err
	}

	parties := make([]*partyAwaitingPosition, len(padded))
	for i := range padded {
		if parties[i], err = newParty(device.bpGens, device.pcGens, padded[i], paddedBlindings[i], RANGE_PROOF_BITS); err != nil {
			return nil, err
		}
	}

	positioned := make([]*partyAwaitingBitChallenge, len(parties))
	bitCommitments := make([]*bitCommitment, len(parties))
	for j := range parties {
		if positioned[j], bitCommitments[j], err = parties[j].assignPosition(j); err != nil {
			return nil, err
		}
	}

	dealer2, bitCh, err := dealer.receiveBitCommitments(bitCommitments)
	if err != nil {
		return nil, err
	}

	challenged := make([]*partyAwaitingPolyChallenge, len(positioned))
	polyCommitments := make([]*polyCommitment, len(positioned))
	for i := range positioned {
		challenged[i], polyCommitments[i] = positioned[i].applyBitChallenge(bitCh)
	}

	dealer3, polyCh, err := dealer2.receivePolyCommitments(polyCommitments)
	if err != nil {
		return nil, err
	}

	shares := make([]*proofShare, len(challenged))
	for i := range challenged {
		if shares[i], err = challenged[i].applyPolyChallenge(polyCh); err != nil {
			return nil, err
		}
	}

	proof, err := dealer3.assembleShares(shares)
	if err != nil {
		return nil, err
	}

	proof.V = make([]Key, len(bitCommitments))
	for i := range bitCommitments {
		proof.V[i] = pointToKey(bitCommitments[i].VJ)
	}
	return proof, nil
}
