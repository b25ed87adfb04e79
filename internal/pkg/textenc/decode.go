// Package textenc decodes uploaded byte streams by probing an ordered list
// of candidate encodings, first success wins.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder is one candidate decoding tried during import.
type Decoder struct {
	Name   string
	decode func(data []byte) (string, error)
}

// Candidates returns the ordered list of decoders: a Unicode-aware default
// first, then common legacy single-byte encodings.
func Candidates() []Decoder {
	return []Decoder{
		{Name: "utf-8-sig", decode: decodeUTF8Sig},
		{Name: "latin-1", decode: charmapDecoder(charmap.ISO8859_1)},
		{Name: "cp1252", decode: charmapDecoder(charmap.Windows1252)},
		{Name: "iso-8859-1", decode: charmapDecoder(charmap.ISO8859_1)},
	}
}

// Decode tries each candidate decoder in order and returns the decoded text
// together with the name of the encoding that succeeded. If every candidate
// fails, the returned error lists the attempted encodings.
func Decode(data []byte) (string, string, error) {
	candidates := Candidates()

	var attempted []string
	for _, d := range candidates {
		text, err := d.decode(data)
		if err == nil {
			return text, d.Name, nil
		}
		attempted = append(attempted, d.Name)
	}

	return "", "", fmt.Errorf("no candidate encoding succeeded (tried %s)",
		strings.Join(attempted, ", "))
}

// decodeUTF8Sig strips an optional byte order mark and validates UTF-8.
func decodeUTF8Sig(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", errors.New("invalid UTF-8 byte sequence")
	}
	return string(data), nil
}

func charmapDecoder(cm *charmap.Charmap) func([]byte) (string, error) {
	return func(data []byte) (string, error) {
		out, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}
