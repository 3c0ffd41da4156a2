package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// logEvent is one line of a plain-text event log: "t x y p".
type logEvent struct {
	T        uint32
	X, Y     uint16
	Polarity uint8
}

// readEventLog parses a whitespace-separated event log, one event per
// line, skipping blank lines and lines starting with '#'. This is the
// event-source decoding collaborator spec.md keeps external to the
// core reconstruction package.
func readEventLog(r io.Reader) ([]logEvent, error) {
	var events []logEvent
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 4 {
			return nil, fmt.Errorf("event log line %d: want 4 fields, got %d", line, len(fields))
		}
		t, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("event log line %d: bad timestamp: %w", line, err)
		}
		x, err := strconv.ParseUint(fields[1], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("event log line %d: bad x: %w", line, err)
		}
		y, err := strconv.ParseUint(fields[2], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("event log line %d: bad y: %w", line, err)
		}
		p, err := strconv.ParseUint(fields[3], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("event log line %d: bad polarity: %w", line, err)
		}
		events = append(events, logEvent{T: uint32(t), X: uint16(x), Y: uint16(y), Polarity: uint8(p)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
