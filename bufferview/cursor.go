package bufferview

import (
	"io"
)

// Cursor is a positional reader and writer over a View.
// It aliases the view's storage; its position is independent of other cursors.
type Cursor struct {
	view View
	pos  int
}

var (
	_ io.Reader     = (*Cursor)(nil)
	_ io.Writer     = (*Cursor)(nil)
	_ io.ByteReader = (*Cursor)(nil)
	_ io.ByteWriter = (*Cursor)(nil)
)

// View returns the underlying view.
func (c *Cursor) View() View {
	return c.view
}

// Position returns the current position.
func (c *Cursor) Position() int {
	return c.pos
}

// SetPosition moves the cursor; 0 <= pos <= capacity.
func (c *Cursor) SetPosition(pos int) error {
	if _, e := c.view.CheckLimit(pos); e != nil {
		return e
	}
	c.pos = pos
	return nil
}

// Remaining returns the number of bytes between the position and the end of the view.
func (c *Cursor) Remaining() int {
	return c.view.Capacity() - c.pos
}

// Read implements io.Reader.
func (c *Cursor) Read(p []byte) (n int, e error) {
	if c.Remaining() == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	return c.get(p), nil
}

// Write implements io.Writer.
// It returns io.ErrShortWrite when the view has fewer than len(p) remaining bytes.
func (c *Cursor) Write(p []byte) (n int, e error) {
	n = c.put(p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// ReadByte implements io.ByteReader.
func (c *Cursor) ReadByte() (byte, error) {
	if c.Remaining() == 0 {
		return 0, io.EOF
	}
	b := c.view.GetByte(c.pos)
	c.pos++
	return b, nil
}

// WriteByte implements io.ByteWriter.
func (c *Cursor) WriteByte(b byte) error {
	if c.Remaining() == 0 {
		return io.ErrShortWrite
	}
	c.view.PutByte(c.pos, b)
	c.pos++
	return nil
}

// get copies from the view at the position into dst and advances.
func (c *Cursor) get(dst []byte) int {
	n := c.view.GetBytes(c.pos, dst)
	c.pos += n
	return n
}

// put copies src into the view at the position and advances.
func (c *Cursor) put(src []byte) int {
	n := c.view.PutBytes(c.pos, src)
	c.pos += n
	return n
}
