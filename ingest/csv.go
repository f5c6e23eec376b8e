// Package ingest reads a CPU trace from CSV: one request per line, as
// `op,address[,data]`, and turns it into the []cachesim.Request slice the
// simulation core consumes. It is kept separate from the core because the
// file format is an external collaborator's contract, not the simulator's
// own concern.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/cachesim"
)

// ParseError reports a malformed trace line, with the 1-based source line
// number the diagnostic refers to.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func parseErrorf(line int, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// ReadCSV parses every non-empty line of r into a Request. A 'W'/'w' flags
// a write and requires a data column; a 'R'/'r' flags a read and must not
// carry one. Addresses and data accept decimal or 0x-prefixed hex. Empty
// lines are skipped; anything else malformed aborts with a ParseError
// naming the offending line.
func ReadCSV(r io.Reader) ([]cachesim.Request, error) {
	scanner := bufio.NewScanner(r)

	var requests []cachesim.Request
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		req, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}

		requests = append(requests, req)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	return requests, nil
}

func parseLine(line string, lineNo int) (cachesim.Request, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return cachesim.Request{}, parseErrorf(lineNo, "no address is given")
	}
	if len(fields) > 3 {
		return cachesim.Request{}, parseErrorf(lineNo, "too many columns for one operation")
	}

	we, err := parseOp(fields[0], lineNo)
	if err != nil {
		return cachesim.Request{}, err
	}

	addrTok := strings.TrimSpace(fields[1])
	if addrTok == "" {
		return cachesim.Request{}, parseErrorf(lineNo, "no address is given")
	}

	addr, err := parseUint32(addrTok)
	if err != nil {
		return cachesim.Request{}, parseErrorf(lineNo, "invalid address %q: %s", addrTok, err)
	}

	var dataTok string
	if len(fields) == 3 {
		dataTok = strings.TrimSpace(fields[2])
	}

	if we {
		if dataTok == "" {
			return cachesim.Request{}, parseErrorf(lineNo, "write operation has no data value")
		}

		data, err := parseUint32(dataTok)
		if err != nil {
			return cachesim.Request{}, parseErrorf(lineNo, "invalid data %q: %s", dataTok, err)
		}

		return cachesim.Request{Addr: addr, WE: true, Data: data}, nil
	}

	if dataTok != "" {
		return cachesim.Request{}, parseErrorf(lineNo,
			"data %q found for a read operation, ASCII: %.2x", dataTok, dataTok[0])
	}

	return cachesim.Request{Addr: addr, WE: false}, nil
}

func parseOp(col string, lineNo int) (we bool, err error) {
	trimmed := strings.TrimSpace(col)
	if trimmed == "" {
		return false, parseErrorf(lineNo, "no operation is given")
	}
	if len(trimmed) != 1 {
		return false, parseErrorf(lineNo, "invalid operation %q found: ASCII: %.2x", trimmed, trimmed[0])
	}

	switch trimmed[0] {
	case 'W', 'w':
		return true, nil
	case 'R', 'r':
		return false, nil
	default:
		return false, parseErrorf(lineNo, "invalid operation found: ASCII: %.2x", trimmed[0])
	}
}

func parseUint32(tok string) (uint32, error) {
	if len(tok) > 1 && tok[0] == '0' && (tok[1] == 'x' || tok[1] == 'X') {
		v, err := strconv.ParseUint(tok[2:], 16, 32)
		if err != nil {
			return 0, err
		}

		return uint32(v), nil
	}

	v, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, err
	}

	return uint32(v), nil
}
