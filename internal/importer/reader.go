package importer

// reader.go prepares uploaded text for encoding/csv without buffering the
// whole file: the size cap is enforced while reading, a leading UTF-8 BOM is
// dropped and invalid UTF-8 bytes are replaced with '?'.

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrFileTooLarge is returned once more than the allowed bytes were read.
var ErrFileTooLarge = errors.New("file too large")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// limitReader counts bytes and fails once the count passes max.
type limitReader struct {
	r    io.Reader
	max  int64
	read int64
}

// LimitSize wraps r so reading past max bytes fails with ErrFileTooLarge.
// max <= 0 disables the cap.
func LimitSize(r io.Reader, max int64) io.Reader {
	if max <= 0 {
		return r
	}
	return &limitReader{r: r, max: max}
}

func (l *limitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.read > l.max {
		return 0, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, l.max)
	}
	return n, err
}

// textReader yields valid UTF-8 with any leading BOM removed.
type textReader struct {
	br         *bufio.Reader
	bomChecked bool
	pending    []byte // tail of a rune that did not fit the last p
}

// CleanText wraps r for text parsing.
func CleanText(r io.Reader) io.Reader {
	return &textReader{br: bufio.NewReader(r)}
}

func (t *textReader) Read(p []byte) (int, error) {
	if !t.bomChecked {
		t.bomChecked = true
		if head, err := t.br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			_, _ = t.br.Discard(len(utf8BOM))
		}
	}

	n := copy(p, t.pending)
	t.pending = t.pending[n:]

	var enc [utf8.UTFMax]byte
	for n < len(p) {
		if n > 0 && t.br.Buffered() == 0 {
			break
		}
		r, size, err := t.br.ReadRune()
		if err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}

		var w int
		if r == utf8.RuneError && size == 1 {
			enc[0], w = '?', 1
		} else {
			w = utf8.EncodeRune(enc[:], r)
		}
		c := copy(p[n:], enc[:w])
		n += c
		if c < w {
			t.pending = append(t.pending[:0], enc[c:w]...)
		}
	}
	return n, nil
}
