package ringct

import (
	"encoding/hex"
	"fmt"
)

const (
	// KeyLength is the width of every scalar and compressed point.
	KeyLength = 32
	// AmountLength is the width of a compact encrypted amount.
	AmountLength = 8
)

// Key is a 32-byte scalar or compressed curve point. Which of the two it is
// depends on context; the bytes are opaque until handed to the curve library.
type Key [KeyLength]byte

// NewKey copies buf into a Key, rejecting any buffer that is not exactly
// KeyLength bytes.
func NewKey(buf []byte) (Key, error) {
	var k Key
	if len(buf) != KeyLength {
		return k, fmt.Errorf("%w: key is %d bytes, want %d", ErrMalformedInput, len(buf), KeyLength)
	}
	copy(k[:], buf)
	return k, nil
}

// KeyFromHex decodes a hex-encoded Key.
func KeyFromHex(h string) (Key, error) {
	buf, err := hex.DecodeString(h)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return NewKey(buf)
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// CTKey pairs a one-time output key with its commitment mask.
type CTKey struct {
	Dest Key
	Mask Key
}

// ECDHTuple carries the encrypted mask and amount for one output. Under the
// compact encoding only the first AmountLength bytes of Amount are used and
// Mask is the zero key.
type ECDHTuple struct {
	Mask   Key
	Amount Key
}

// Bulletproof is an aggregated range proof over a set of output commitments.
// L and R hold one entry per inner-product round.
type Bulletproof struct {
	V []Key

	A  Key
	S  Key
	T1 Key
	T2 Key

	Taux Key
	Mu   Key

	L []Key
	R []Key

	Aa Key
	Bb Key
	T  Key
}

// MGSignature is the legacy matrix ring signature. SS has one row per ring
// member and two columns: the key response and the commitment response.
type MGSignature struct {
	SS [][]Key
	CC Key
}

// CLSAG is the compact linear ring signature: one response per ring member,
// the initial challenge, and the auxiliary commitment key image.
type CLSAG struct {
	S  []Key
	C1 Key
	D  Key
}

// Variant selects which ring signature scheme a transaction carries. The two
// schemes are binary-incompatible and never mix within one prunable set.
type Variant uint8

const (
	VariantMG Variant = iota
	VariantCLSAG
)

func (v Variant) String() string {
	switch v {
	case VariantMG:
		return "MG"
	case VariantCLSAG:
		return "CLSAG"
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// RingSignature is the tagged union over the two schemes. Exactly one of MG
// and CLSAG is set, according to Variant.
type RingSignature struct {
	Variant Variant
	MG      *MGSignature
	CLSAG   *CLSAG
}

// RingCTPrunable holds the witness data a pruned node may drop: one
// pseudo-output commitment and one ring signature per input, plus the range
// proofs.
type RingCTPrunable struct {
	PseudoOuts     []Key
	Bulletproofs   []*Bulletproof
	RingSignatures []*RingSignature
}

// RingCTSignatures is the full signature envelope. ECDHInfo and
// OutPublicKeys have one entry per output.
type RingCTSignatures struct {
	ECDHInfo      []ECDHTuple
	OutPublicKeys []CTKey
	Prunable      RingCTPrunable
}
