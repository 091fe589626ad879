// Package csvenc decodes uploaded spreadsheet exports whose encoding is
// unknown. Retail back offices routinely hand over files saved by Excel
// on Windows, so the cascade covers the encodings seen in practice.
package csvenc

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/retailpos/backoffice/internal/domain/shared"
)

// Encoding names reported back to the caller in the import summary.
const (
	EncodingUTF8BOM     = "utf-8-sig"
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin-1"
	EncodingWindows1252 = "cp1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw upload bytes to a UTF-8 string, trying UTF-8 with
// BOM, plain UTF-8, Latin-1 and Windows-1252 in that order. It returns
// the decoded text and the name of the encoding that succeeded.
func Decode(data []byte) (string, string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		stripped := data[len(utf8BOM):]
		if utf8.Valid(stripped) {
			return string(stripped), EncodingUTF8BOM, nil
		}
	}
	if utf8.Valid(data) {
		return string(data), EncodingUTF8, nil
	}
	if decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
		return string(decoded), EncodingLatin1, nil
	}
	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
		return string(decoded), EncodingWindows1252, nil
	}
	return "", "", shared.ErrUndecodableFile
}
