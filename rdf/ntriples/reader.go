package ntriples

import (
	"fmt"
	"io"
)

// DefaultBufferSize is the refill chunk size for LineReader.
const DefaultBufferSize = 2048

// LineReader presents its input one logical line at a time, stripped of the
// terminator, accepting CR, LF, and CRLF endings in any mix. Lines that
// straddle a refill boundary grow the carry-over buffer until the terminator
// arrives.
//
// Input left unterminated at end of stream is truncated input and fails with
// ErrEOFInLine, whether or not the remainder is whitespace. A stream that
// ends cleanly after its last terminator signals a plain end of lines.
type LineReader struct {
	src     io.Reader
	bufSize int
	buffer  string
	chunk   []byte
}

// NewLineReader creates a LineReader over src with the default chunk size.
func NewLineReader(src io.Reader) *LineReader {
	return NewLineReaderSize(src, DefaultBufferSize)
}

// NewLineReaderSize creates a LineReader with an explicit refill chunk size.
func NewLineReaderSize(src io.Reader, bufSize int) *LineReader {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &LineReader{
		src:     src,
		bufSize: bufSize,
		chunk:   make([]byte, bufSize),
	}
}

// ReadLine returns the next logical line. ok is false at a clean end of
// stream.
func (r *LineReader) ReadLine() (line string, ok bool, err error) {
	if r.buffer == "" {
		n, err := r.fill()
		if err != nil {
			return "", false, err
		}
		if n == 0 {
			return "", false, nil
		}
	}

	for {
		if m := reLine.FindStringSubmatch(r.buffer); m != nil {
			r.buffer = r.buffer[len(m[0]):]
			return m[1], true, nil
		}

		n, err := r.fill()
		if err != nil {
			return "", false, err
		}
		if n == 0 {
			if r.buffer != "" {
				return "", false, parseErr(ErrEOFInLine, r.buffer, "")
			}
			return "", false, nil
		}
	}
}

// fill appends one chunk from the source to the carry-over buffer and
// returns the number of bytes read. A zero count means the source is
// exhausted.
func (r *LineReader) fill() (int, error) {
	for {
		n, err := r.src.Read(r.chunk)
		if n > 0 {
			r.buffer += string(r.chunk[:n])
			return n, nil
		}
		if err == io.EOF {
			return 0, nil
		}
		if err != nil {
			return 0, fmt.Errorf("read input: %w", err)
		}
		// A reader may legally return 0, nil; retry.
	}
}
