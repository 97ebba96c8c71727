package rogrid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

// Frame recording uses a simple length-prefixed little-endian binary
// encoding rather than gob+gzip, so that recordings can be produced and
// consumed by tooling written in other languages too.
//
// Each frame is written as:
//
//	total_len   uint32  (byte length of everything that follows)
//	time_ms     uint64  (milliseconds since Unix epoch)
//	width       int32
//	height      int32
//	num_cells   uint32
//	then, for each cell:
//		x       int32
//		y       int32
//		rune    uint32 (Unicode scalar value)
//		fg      uint32
//		bg      uint32
//		attrs   uint32
const (
	cellSize   = 4 + 4 + 4 + 4 + 4 + 4 // x, y, rune, fg, bg, attrs
	headerSize = 8 + 4 + 4 + 4         // time_ms, width, height, num_cells
)

// FrameDecoder manages the decoding of the frame recording stream produced by
// the running of an application, in case a FrameWriter was provided. It can be
// used to replay an application session.
type FrameDecoder struct {
	r io.Reader
}

// NewFrameDecoder returns a FrameDecoder using a given reader as source for
// frames.
//
// It is your responsibility to call Close on the reader when done.
func NewFrameDecoder(r io.Reader) (*FrameDecoder, error) {
	return &FrameDecoder{r: r}, nil
}

// Decode retrieves the next frame from the input stream. The frame pointer
// should be non nil. If the input is at EOF, it returns the error io.EOF.
func (fd *FrameDecoder) Decode(framep *Frame) error {
	if framep == nil {
		return errors.New("frame decoding: attempt to decode into nil pointer")
	}
	var lenbuf [4]byte
	if _, err := io.ReadFull(fd.r, lenbuf[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return io.EOF
		}
		return err
	}
	totalLen := binary.LittleEndian.Uint32(lenbuf[:])
	if totalLen < headerSize {
		return fmt.Errorf("frame decoding: frame too small: %d bytes", totalLen)
	}
	data := make([]byte, totalLen)
	if _, err := io.ReadFull(fd.r, data); err != nil {
		return err
	}
	timeMs := binary.LittleEndian.Uint64(data[0:8])
	width := int32(binary.LittleEndian.Uint32(data[8:12]))
	height := int32(binary.LittleEndian.Uint32(data[12:16]))
	numCells := binary.LittleEndian.Uint32(data[16:20])

	expected := headerSize + int(numCells)*cellSize
	if int(totalLen) != expected {
		return fmt.Errorf("frame decoding: frame size mismatch: expected %d bytes, got %d", expected, totalLen)
	}

	frame := Frame{
		Time:   time.Unix(0, int64(timeMs)*int64(time.Millisecond)),
		Width:  int(width),
		Height: int(height),
	}
	if numCells > 0 {
		frame.Cells = make([]FrameCell, numCells)
	}
	off := headerSize
	for i := range frame.Cells {
		x := int32(binary.LittleEndian.Uint32(data[off : off+4]))
		y := int32(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		r := binary.LittleEndian.Uint32(data[off+8 : off+12])
		fg := binary.LittleEndian.Uint32(data[off+12 : off+16])
		bg := binary.LittleEndian.Uint32(data[off+16 : off+20])
		attrs := binary.LittleEndian.Uint32(data[off+20 : off+24])
		ch := rune(r)
		if !utf8.ValidRune(ch) {
			ch = utf8.RuneError
		}
		frame.Cells[i] = FrameCell{
			P: Point{X: int(x), Y: int(y)},
			Cell: Cell{
				Rune: ch,
				Style: Style{
					Fg:    Color(fg),
					Bg:    Color(bg),
					Attrs: AttrMask(attrs),
				},
			},
		}
		off += cellSize
	}
	*framep = frame
	return nil
}

// frameEncoder writes frames using the little-endian binary format
// documented above.
type frameEncoder struct {
	w io.Writer
}

func newFrameEncoder(w io.Writer) *frameEncoder {
	return &frameEncoder{w: w}
}

func (fe *frameEncoder) encode(fr Frame) error {
	numCells := len(fr.Cells)
	totalLen := headerSize + numCells*cellSize
	buf := make([]byte, 4+totalLen)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(totalLen))
	binary.LittleEndian.PutUint64(buf[4:12], uint64(fr.Time.UnixNano()/int64(time.Millisecond)))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(int32(fr.Width)))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(int32(fr.Height)))
	binary.LittleEndian.PutUint32(buf[20:24], uint32(numCells))
	off := 24
	for _, fc := range fr.Cells {
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(int32(fc.P.X)))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], uint32(int32(fc.P.Y)))
		binary.LittleEndian.PutUint32(buf[off+8:off+12], uint32(fc.Cell.Rune))
		binary.LittleEndian.PutUint32(buf[off+12:off+16], uint32(fc.Cell.Style.Fg))
		binary.LittleEndian.PutUint32(buf[off+16:off+20], uint32(fc.Cell.Style.Bg))
		binary.LittleEndian.PutUint32(buf[off+20:off+24], uint32(fc.Cell.Style.Attrs))
		off += cellSize
	}
	_, err := fe.w.Write(buf)
	return err
}

// Close has nothing to flush, as frames are written directly. It closes the
// underlying writer only if it implements io.Closer.
func (fe *frameEncoder) Close() error {
	if c, ok := fe.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
