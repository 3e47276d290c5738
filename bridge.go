package ringct

import (
	"fmt"

	"github.com/bwesterb/go-ristretto"
)

const (
	BULLETPROOF_DOMAIN_TAG          = "cn_bulletproof_transcript"
	HASH_TO_POINT_DOMAIN_TAG        = "cn_key_image_hash_to_point"
	COMMITMENT_MASK_DOMAIN_TAG      = "cn_commitment_mask"
	ECDH_AMOUNT_DOMAIN_TAG          = "cn_ecdh_amount"
	MLSAG_CHALLENGE_DOMAIN_TAG      = "cn_mlsag_challenge"
	CLSAG_CHALLENGE_DOMAIN_TAG      = "cn_clsag_round"
	CLSAG_AGG_KEY_DOMAIN_TAG        = "cn_clsag_agg_key"
	CLSAG_AGG_COMMITMENT_DOMAIN_TAG = "cn_clsag_agg_commitment"
	MESSAGE_DOMAIN_TAG              = "cn_ringct_message"

	RANGE_PROOF_BITS = 64
	MAX_OUTPUTS      = 16 // Aggregated range proofs cover at most this many commitments.
)

// Bridge converts raw transaction material into RingCT signatures. The
// variant chosen at construction decides which ring signature scheme every
// input receives; the two schemes never mix within one envelope.
type Bridge struct {
	device  *Device
	variant Variant
}

func NewBridge(device *Device, variant Variant) *Bridge {
	return &Bridge{device: device, variant: variant}
}

// InputKey is the private material for one input: the one-time spend scalar
// and the commitment blinding of the spent output.
type InputKey struct {
	Spend []byte
	Mask  []byte
}

// RingMember is one candidate output in an input's ring: its one-time public
// key and its amount commitment.
type RingMember struct {
	Dest []byte
	Mask []byte
}

// GenerateParams carries everything Generate needs, as raw byte buffers.
// Every key-sized field must be exactly KeyLength bytes.
type GenerateParams struct {
	PrefixHash   []byte
	PrivateKeys  []InputKey
	Destinations [][]byte
	AmountKeys   [][]byte
	Ring         [][]RingMember
	Indexes      []int
	Inputs       []uint64
	Outputs      []uint64
	Fee          uint64
}

type ringEntry struct {
	dest *ristretto.Point
	mask *ristretto.Point
}

type encodedParams struct {
	prefixHash []byte
	spendKeys  []*ristretto.Scalar
	maskKeys   []*ristretto.Scalar
	dests      []Key
	amountKeys []Key
	ring       [][]ringEntry
	indexes    []int
}

// encode validates every width and length invariant, then decodes the
// private scalars and ring points to their native representation. All
// structural checks run before the first curve operation.
func (p *GenerateParams) encode() (*encodedParams, error) {
	if len(p.PrefixHash) != KeyLength {
		return nil, fmt.Errorf("%w: prefix hash is %d bytes, want %d", ErrMalformedInput, len(p.PrefixHash), KeyLength)
	}

	ins := len(p.PrivateKeys)
	if ins == 0 {
		return nil, fmt.Errorf("%w: no inputs", ErrMalformedInput)
	}
	if len(p.Ring) != ins || len(p.Indexes) != ins || len(p.Inputs) != ins {
		return nil, fmt.Errorf("%w: %d private keys, %d rings, %d indexes, %d input amounts",
			ErrMalformedInput, ins, len(p.Ring), len(p.Indexes), len(p.Inputs))
	}

	outs := len(p.Destinations)
	if outs == 0 {
		return nil, fmt.Errorf("%w: no outputs", ErrMalformedInput)
	}
	if len(p.AmountKeys) != outs || len(p.Outputs) != outs {
		return nil, fmt.Errorf("%w: %d destinations, %d amount keys, %d output amounts",
			ErrMalformedInput, outs, len(p.AmountKeys), len(p.Outputs))
	}
	if outs > MAX_OUTPUTS {
		return nil, fmt.Errorf("%w: %d outputs exceed the range proof capacity %d", ErrMalformedInput, outs, MAX_OUTPUTS)
	}

	for i := range p.PrivateKeys {
		if len(p.PrivateKeys[i].Spend) != KeyLength {
			return nil, fmt.Errorf("%w: input %d spend key is %d bytes", ErrMalformedInput, i, len(p.PrivateKeys[i].Spend))
		}
		if len(p.PrivateKeys[i].Mask) != KeyLength {
			return nil, fmt.Errorf("%w: input %d mask is %d bytes", ErrMalformedInput, i, len(p.PrivateKeys[i].Mask))
		}
	}
	for i := range p.Ring {
		if len(p.Ring[i]) == 0 {
			return nil, fmt.Errorf("%w: input %d has an empty ring", ErrMalformedInput, i)
		}
		if p.Indexes[i] < 0 || p.Indexes[i] >= len(p.Ring[i]) {
			return nil, fmt.Errorf("%w: input %d index %d outside ring of %d", ErrMalformedInput, i, p.Indexes[i], len(p.Ring[i]))
		}
		for j := range p.Ring[i] {
			if len(p.Ring[i][j].Dest) != KeyLength || len(p.Ring[i][j].Mask) != KeyLength {
				return nil, fmt.Errorf("%w: ring member [%d][%d] has keys of %d and %d bytes",
					ErrMalformedInput, i, j, len(p.Ring[i][j].Dest), len(p.Ring[i][j].Mask))
			}
		}
	}
	for o := range p.Destinations {
		if len(p.Destinations[o]) != KeyLength {
			return nil, fmt.Errorf("%w: destination %d is %d bytes", ErrMalformedInput, o, len(p.Destinations[o]))
		}
		if len(p.AmountKeys[o]) != KeyLength {
			return nil, fmt.Errorf("%w: amount key %d is %d bytes", ErrMalformedInput, o, len(p.AmountKeys[o]))
		}
	}

	enc := &encodedParams{
		prefixHash: p.PrefixHash,
		spendKeys:  make([]*ristretto.Scalar, ins),
		maskKeys:   make([]*ristretto.Scalar, ins),
		dests:      make([]Key, outs),
		amountKeys: make([]Key, outs),
		ring:       make([][]ringEntry, ins),
		indexes:    p.Indexes,
	}

	var err error
	for i := range p.PrivateKeys {
		var spend, mask Key
		copy(spend[:], p.PrivateKeys[i].Spend)
		copy(mask[:], p.PrivateKeys[i].Mask)
		if enc.spendKeys[i], err = decodeScalar(spend); err != nil {
			return nil, fmt.Errorf("input %d spend key: %w", i, err)
		}
		if enc.maskKeys[i], err = decodeScalar(mask); err != nil {
			return nil, fmt.Errorf("input %d mask: %w", i, err)
		}
	}
	for i := range p.Ring {
		enc.ring[i] = make([]ringEntry, len(p.Ring[i]))
		for j := range p.Ring[i] {
			var dest, mask Key
			copy(dest[:], p.Ring[i][j].Dest)
			copy(mask[:], p.Ring[i][j].Mask)
			var entry ringEntry
			if entry.dest, err = decodePoint(dest); err != nil {
				return nil, fmt.Errorf("ring member [%d][%d] key: %w", i, j, err)
			}
			if entry.mask, err = decodePoint(mask); err != nil {
				return nil, fmt.Errorf("ring member [%d][%d] commitment: %w", i, j, err)
			}
			enc.ring[i][j] = entry
		}
	}
	for o := range p.Destinations {
		copy(enc.dests[o][:], p.Destinations[o])
		copy(enc.amountKeys[o][:], p.AmountKeys[o])
	}
	return enc, nil
}
