package textutil

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NormalizeTextContent turns raw message bytes into an NFC-normalised UTF-8
// string. A UTF-8 BOM is dropped and BOM-marked UTF-16 is decoded; content that
// fails to decode is returned as-is.
func NormalizeTextContent(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	var text string
	switch detectUnicodeEncoding(content) {
	case encodingUTF8BOM:
		text = string(content[len(utf8BOM):])
	case encodingUTF16LE:
		text = decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		text = decodeUTF16(content, unicode.BigEndian)
	default:
		text = string(content)
	}
	return norm.NFC.String(text)
}

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	if bytes.HasPrefix(sample, utf8BOM) {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
