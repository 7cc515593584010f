// Package encoding turns uploaded spreadsheets exported by office tools into
// UTF-8 text.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	CharsetUTF8    = "UTF-8"
	CharsetUTF16LE = "UTF-16LE"
	CharsetUTF16BE = "UTF-16BE"
	CharsetLatin1  = "ISO-8859-1"
	CharsetCP1252  = "windows-1252"
)

const sniffSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// legacy maps the chardet results Spanish-locale spreadsheets produce to
// their decoders. Anything else falls back to Windows-1252.
var legacy = map[string]encoding.Encoding{
	CharsetLatin1: charmap.ISO8859_1,
	CharsetCP1252: charmap.Windows1252,
}

// Decode sniffs the first bytes of r and returns a UTF-8 reader over the whole
// stream together with the name of the charset it settled on.
//
// A BOM wins. Valid UTF-8 passes through. Otherwise chardet picks between the
// Latin-1 family and Windows-1252 is the fallback.
func Decode(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("sniffing input: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, CharsetUTF8, nil
	case bytes.HasPrefix(head, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), CharsetUTF16LE, nil
	case bytes.HasPrefix(head, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), CharsetUTF16BE, nil
	}

	if validUTF8Prefix(head) {
		return br, CharsetUTF8, nil
	}

	if res, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if res.Charset == CharsetUTF8 {
			return br, CharsetUTF8, nil
		}

		if enc, ok := legacy[res.Charset]; ok {
			return transform.NewReader(br, enc.NewDecoder()), res.Charset, nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), CharsetCP1252, nil
}

// validUTF8Prefix tolerates a multi-byte rune cut off by the sniff window.
func validUTF8Prefix(b []byte) bool {
	if utf8.Valid(b) {
		return true
	}

	if len(b) < sniffSize {
		return false
	}

	for cut := 1; cut < utf8.UTFMax; cut++ {
		if utf8.Valid(b[:len(b)-cut]) {
			return true
		}
	}

	return false
}
