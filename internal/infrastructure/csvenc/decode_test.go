package csvenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("utf-8 with BOM", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("SKU,Name\n")...)
		text, encoding, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, EncodingUTF8BOM, encoding)
		assert.Equal(t, "SKU,Name\n", text, "BOM must be stripped")
	})

	t.Run("plain utf-8", func(t *testing.T) {
		text, encoding, err := Decode([]byte("SKU,Naïve\n"))
		require.NoError(t, err)
		assert.Equal(t, EncodingUTF8, encoding)
		assert.Equal(t, "SKU,Naïve\n", text)
	})

	t.Run("latin-1", func(t *testing.T) {
		// é as the single byte 0xE9 is not valid UTF-8.
		data := []byte{'C', 'a', 'f', 0xE9}
		text, encoding, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, EncodingLatin1, encoding)
		assert.Equal(t, "Café", text)
	})

	t.Run("empty input is valid utf-8", func(t *testing.T) {
		_, encoding, err := Decode(nil)
		require.NoError(t, err)
		assert.Equal(t, EncodingUTF8, encoding)
	})
}
