package ringct

import (
	"testing"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomKeypair() ([]byte, []byte) {
	var x ristretto.Scalar
	x.Rand()
	var p ristretto.Point
	p.ScalarMultBase(&x)
	return x.Bytes(), p.Bytes()
}

func TestDeriveKeyImageDeterministic(t *testing.T) {
	require := require.New(t)

	priv, pub := randomKeypair()
	first, err := DeriveKeyImage(priv, pub)
	require.NoError(err)
	second, err := DeriveKeyImage(priv, pub)
	require.NoError(err)
	require.Equal(first, second)
}

func TestDeriveKeyImageSensitivity(t *testing.T) {
	require := require.New(t)

	privA, pub := randomKeypair()
	privB, _ := randomKeypair()
	imageA, err := DeriveKeyImage(privA, pub)
	require.NoError(err)
	imageB, err := DeriveKeyImage(privB, pub)
	require.NoError(err)
	require.NotEqual(imageA, imageB)
}

func TestDeriveKeyImageMalformed(t *testing.T) {
	assert := assert.New(t)

	priv, pub := randomKeypair()
	_, err := DeriveKeyImage(priv[:31], pub)
	assert.ErrorIs(err, ErrMalformedInput)

	_, err = DeriveKeyImage(append(priv, 0), pub)
	assert.ErrorIs(err, ErrMalformedInput)

	_, err = DeriveKeyImage(priv, pub[:31])
	assert.ErrorIs(err, ErrMalformedInput)
}

func TestDeriveKeyImageInvalidPoint(t *testing.T) {
	priv, _ := randomKeypair()

	bad := make([]byte, KeyLength)
	for i := range bad {
		bad[i] = 0xff
	}
	_, err := DeriveKeyImage(priv, bad)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}
