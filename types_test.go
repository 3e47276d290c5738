package ringct

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	buf := bytes.Repeat([]byte{0xab}, KeyLength)
	key, err := NewKey(buf)
	require.NoError(err)
	assert.Equal(buf, key[:])

	_, err = NewKey(buf[:31])
	assert.ErrorIs(err, ErrMalformedInput)
	_, err = NewKey(append(buf, 0))
	assert.ErrorIs(err, ErrMalformedInput)
	_, err = NewKey(nil)
	assert.ErrorIs(err, ErrMalformedInput)
}

func TestKeyFromHex(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	hexKey := "0101010101010101010101010101010101010101010101010101010101010101"
	key, err := KeyFromHex(hexKey)
	require.NoError(err)
	assert.Equal(hexKey, key.String())

	_, err = KeyFromHex("01")
	assert.ErrorIs(err, ErrMalformedInput)
	_, err = KeyFromHex("zz")
	assert.ErrorIs(err, ErrMalformedInput)
}

func TestVariantString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("MG", VariantMG.String())
	assert.Equal("CLSAG", VariantCLSAG.String())
	assert.Equal("Variant(9)", Variant(9).String())
}
