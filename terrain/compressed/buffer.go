// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import "io"

const maxCount = 15

// Buffer writes the 4 most significant bits of each byte and uses run length encoding.
// Each stored byte is 4 bits of data followed by 4 bits of count - 1.
// Reading does not modify the encoded bytes, so a Buffer can be read again after Rewind.
type Buffer struct {
	buf []byte
	off int  // Read position
	run byte // Bytes already read from buf[off]
}

// Reset replaces the encoded bytes and rewinds.
func (buffer *Buffer) Reset(buf []byte) {
	buffer.buf = buf
	buffer.Rewind()
}

func (buffer *Buffer) Rewind() {
	buffer.off = 0
	buffer.run = 0
}

// Encodes a byte as its 4 most significant bits
func (buffer *Buffer) writeByte(b byte) {
	buf := buffer.buf

	// Nibble
	next := b >> 4

	var current, countMinusOne, tuple byte
	end := len(buf) - 1

	if len(buf) > 0 {
		tuple = buf[end]
		current = tuple >> 4
		countMinusOne = tuple & maxCount
	} else {
		countMinusOne = maxCount // Full
	}

	if next != current || countMinusOne == maxCount {
		// Start new tuple
		buf = append(buf, next<<4)
	} else {
		// Add 1 to count
		buf[end] = tuple + 1
	}

	buffer.buf = buf
}

func (buffer *Buffer) Write(buf []byte) (int, error) {
	for _, b := range buf {
		buffer.writeByte(b)
	}
	return len(buf), nil
}

func (buffer *Buffer) readByte() byte {
	tuple := buffer.buf[buffer.off]
	b := tuple & 0b11110000

	if buffer.run < tuple&maxCount {
		buffer.run++
	} else {
		buffer.off++
		buffer.run = 0
	}

	return b
}

func (buffer *Buffer) Read(buf []byte) (int, error) {
	i := 0
	for ; i < len(buf) && buffer.off < len(buffer.buf); i++ {
		buf[i] = buffer.readByte()
	}

	if i == 0 && len(buf) > 0 {
		return 0, io.EOF
	}

	return i, nil
}

// Grow makes space for about n elements
func (buffer *Buffer) Grow(n int) {
	compressed := n / 2
	if old := buffer.buf; cap(old)-len(old) < compressed {
		buf := make([]byte, len(old), len(old)+compressed)
		copy(buf, old)
		buffer.buf = buf
	}
}

// Bytes returns the encoded bytes.
func (buffer *Buffer) Bytes() []byte {
	return buffer.buf
}
