package textenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePlainUTF8(t *testing.T) {
	text, name, err := Decode([]byte("full_name,matricule\nJohn Doe,12345\n"))
	require.NoError(t, err)
	assert.Equal(t, "utf-8-sig", name)
	assert.Equal(t, "full_name,matricule\nJohn Doe,12345\n", text)
}

func TestDecodeStripsByteOrderMark(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("matricule")...)

	text, name, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "utf-8-sig", name)
	assert.Equal(t, "matricule", text)
}

func TestDecodeFallsBackToLatin1(t *testing.T) {
	// "Très Bien" encoded as ISO 8859-1: 0xE8 is not valid UTF-8 on its own.
	data := []byte{'T', 'r', 0xE8, 's', ' ', 'B', 'i', 'e', 'n'}

	text, name, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "latin-1", name)
	assert.Equal(t, "Très Bien", text)
}

func TestDecodeUTF8WinsOverLegacy(t *testing.T) {
	// Valid UTF-8 containing multi-byte runes must not be reinterpreted as
	// a single-byte encoding.
	text, name, err := Decode([]byte("Très Bien"))
	require.NoError(t, err)
	assert.Equal(t, "utf-8-sig", name)
	assert.Equal(t, "Très Bien", text)
}

func TestCandidatesOrder(t *testing.T) {
	names := []string{}
	for _, d := range Candidates() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"utf-8-sig", "latin-1", "cp1252", "iso-8859-1"}, names)
}
