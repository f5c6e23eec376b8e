package cachesim

// FourWayCache is a 4-way set-associative cache with FIFO replacement: each
// set holds up to 4 resident lines in insertion order, and the oldest
// (front) line is evicted when a miss fills a full set. Resident lines are
// kept as pointers, so a hit updates the stored line in place (the
// reference implementation's writeByte mutates a copy, losing the update;
// there is no such bug here because sets hold *Line, not Line).
type FourWayCache struct {
	name    string
	cfg     Config
	decoder addrDecoder
	mem     *Memory
	numSets uint32
	sets    [][]*Line

	hits   uint64
	misses uint64
}

func newFourWayCache(name string, cfg Config, mem *Memory) (*FourWayCache, error) {
	numSets := cfg.CacheLines / 4

	decoder, err := newAddrDecoder(cfg.LineSize, numSets)
	if err != nil {
		return nil, err
	}

	return &FourWayCache{
		name:    name,
		cfg:     cfg,
		decoder: decoder,
		mem:     mem,
		numSets: numSets,
		sets:    make([][]*Line, numSets),
	}, nil
}

// Name returns the cache's component name.
func (c *FourWayCache) Name() string { return c.name }

// Hits returns the number of requests that hit on every touched byte.
func (c *FourWayCache) Hits() uint64 { return c.hits }

// Misses returns the number of requests that missed on at least one byte.
func (c *FourWayCache) Misses() uint64 { return c.misses }

// GateCount returns the analytic primitive-gate estimate for this
// configuration.
func (c *FourWayCache) GateCount() uint64 {
	return gateCountFourWay(c.cfg.CacheLines, c.cfg.LineSize, c.decoder)
}

// ProcessRequest writes the whole word to main memory first for a write
// (write-through, ahead of touching any cache line), then performs the
// per-byte read or write against the set-associative lookup. The request
// is a hit only if every one of its four bytes hit.
func (c *FourWayCache) ProcessRequest(req *Request) Outcome {
	anyMiss := false
	var latency uint64

	if req.WE {
		for i := 0; i < 4; i++ {
			a := req.Addr + uint32(i)
			c.mem.WriteByte(a, byteOfWord(req.Data, i))
		}

		for i := 0; i < 4; i++ {
			a := req.Addr + uint32(i)
			hit, delta := c.writeByte(a)
			latency += delta
			if !hit {
				anyMiss = true
			}
		}
	} else {
		var result uint32
		for i := 0; i < 4; i++ {
			a := req.Addr + uint32(i)
			b, hit, delta := c.readByte(a)
			latency += delta
			if !hit {
				anyMiss = true
			}
			result = setByteOfWord(result, i, b)
		}
		req.Data = result
	}

	latency += c.cfg.CacheLatency

	if anyMiss {
		c.misses++
	} else {
		c.hits++
	}

	return Outcome{Hit: !anyMiss, Latency: latency}
}

func (c *FourWayCache) readByte(a uint32) (value byte, hit bool, latency uint64) {
	offset, setIndex, tag := c.decoder.decode(a)

	for _, line := range c.sets[setIndex] {
		if line.Valid && line.Tag == tag {
			return line.byteAt(offset), true, 0
		}
	}

	line := c.fillSet(setIndex, tag, a)

	return line.byteAt(offset), false, c.cfg.MemoryLatency
}

func (c *FourWayCache) writeByte(a uint32) (hit bool, latency uint64) {
	offset, setIndex, tag := c.decoder.decode(a)

	for _, line := range c.sets[setIndex] {
		if line.Valid && line.Tag == tag {
			line.setByteAt(offset, c.mem.ReadByte(a))
			return true, 0
		}
	}

	c.fillSet(setIndex, tag, a)

	return false, c.cfg.MemoryLatency
}

// fillSet evicts the oldest resident line if the set is full, then appends
// a freshly-filled line for tag at the back.
func (c *FourWayCache) fillSet(setIndex, tag, a uint32) *Line {
	set := c.sets[setIndex]
	if len(set) >= 4 {
		set = set[1:]
	}

	line := newLine()
	base := c.decoder.lineBase(a)
	line.fill(c.mem, base, c.cfg.LineSize, tag)

	set = append(set, line)
	c.sets[setIndex] = set

	return line
}
