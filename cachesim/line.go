package cachesim

// Line is one resident cache line: a tag, a validity bit, and the line's
// bytes indexed by in-line offset. Only valid lines participate in tag
// comparison.
type Line struct {
	Tag   uint32
	Valid bool
	Data  map[uint32]byte
}

func newLine() *Line {
	return &Line{Data: make(map[uint32]byte)}
}

// byteAt returns the byte stored at the given in-line offset. Offsets never
// filled by a line refill read back as 0, matching an untouched main-memory
// address.
func (l *Line) byteAt(offset uint32) byte {
	return l.Data[offset]
}

func (l *Line) setByteAt(offset uint32, value byte) {
	l.Data[offset] = value
}

// fill refills every byte of the line from main memory, starting at the
// line-aligned base address, and marks the line valid with the given tag.
func (l *Line) fill(mem *Memory, base uint32, lineSize uint32, tag uint32) {
	for j := uint32(0); j < lineSize; j++ {
		l.Data[j] = mem.ReadByte(base + j)
	}

	l.Valid = true
	l.Tag = tag
}
