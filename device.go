package ringct

import "github.com/bwesterb/go-ristretto"

// Device is the handle onto the cryptographic backend: the Pedersen
// generators and the Bulletproof generator table. Building the table walks a
// SHAKE-256 chain per party, so a Device should be created once and reused.
// It is read-only after construction and safe for concurrent callers; callers
// that want full isolation may instead own one Device each.
type Device struct {
	pcGens *PedersenGens
	bpGens *BulletproofGens
}

func NewDevice() *Device {
	return &Device{
		pcGens: NewPedersenGens(),
		bpGens: NewBulletproofGens(RANGE_PROOF_BITS, MAX_OUTPUTS),
	}
}

// Commit returns the Pedersen commitment value*H + blinding*G.
func (d *Device) Commit(value uint64, blinding *ristretto.Scalar) *ristretto.Point {
	return d.pcGens.Commit(uint64ToScalar(value), blinding)
}
