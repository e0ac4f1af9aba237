package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// FrameSize is the fixed on-the-wire size of one encoded integer.
const FrameSize = 4

// ErrShortFrame is returned by Read when the stream ends partway through a
// frame. The stream is desynchronized at that point; callers must not retry.
var ErrShortFrame = errors.New("wire: short frame")

// Write encodes v as one big-endian frame and writes it fully to w.
// A partial write surfaces as an error from w.
func Write(w io.Writer, v int32) error {
	var buf [FrameSize]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("wire: write frame: %w", err)
	}
	return nil
}

// Read blocks until one full frame is read from r and returns the decoded
// value. A clean close before any byte of the next frame is reported as
// io.EOF, which callers treat as normal end of stream. A close mid-frame is
// reported as ErrShortFrame.
func Read(r io.Reader) (int32, error) {
	var buf [FrameSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, ErrShortFrame
		}
		return 0, fmt.Errorf("wire: read frame: %w", err)
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}
