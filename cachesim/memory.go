package cachesim

// Memory is the byte-addressable main memory backing a cache. It is sparse:
// an address that was never written reads back as 0.
type Memory struct {
	bytes map[uint32]byte
}

// NewMemory creates an empty main memory.
func NewMemory() *Memory {
	return &Memory{bytes: make(map[uint32]byte)}
}

// ReadByte returns the byte at addr, or 0 if addr was never written.
func (m *Memory) ReadByte(addr uint32) byte {
	return m.bytes[addr]
}

// WriteByte stores a byte at addr.
func (m *Memory) WriteByte(addr uint32, value byte) {
	m.bytes[addr] = value
}
