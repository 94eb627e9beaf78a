// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package outbuf

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"unicode/utf8"
)

const (
	chunkSize = 32 * 1024
	// lineKeep bounds how much of a single line is remembered for LastLine.
	lineKeep = 1024
)

// Accumulator collects chunks from any number of readers into one buffer.
// It is safe for concurrent use.
type Accumulator struct {
	buf       bytes.Buffer
	max       int64
	truncated bool
	lastLine  string
	writes    lineTracker  // partial line of Write calls
	latest    *lineTracker // tracker that appended most recently
	mu        sync.RWMutex
}

// lineTracker holds the head of the line a single source is in the middle of.
// Each Drain call has its own, so lines from different readers are never mixed.
type lineTracker struct {
	partial []byte
}

// New returns an Accumulator. A max of zero or less means no limit.
// Bytes beyond max are discarded and Truncated reports true.
func New(maxBytes int64) *Accumulator {
	return &Accumulator{max: maxBytes}
}

// Drain reads r until EOF, appending every chunk as it arrives.
// Reads continue after the limit is reached so the writer on the other end never blocks.
// It returns the number of bytes read from r. io.EOF is not reported as an error.
func (a *Accumulator) Drain(r io.Reader) (int64, error) {
	var (
		total int64
		lines lineTracker
	)

	p := make([]byte, chunkSize)

	for {
		n, err := r.Read(p)
		if n > 0 {
			total += int64(n)
			a.append(p[:n], &lines)
		}

		if errors.Is(err, io.EOF) {
			return total, nil
		}

		if err != nil {
			return total, err //nolint:wrapcheck
		}
	}
}

// Write implements io.Writer.
func (a *Accumulator) Write(p []byte) (int, error) {
	a.append(p, &a.writes)

	return len(p), nil
}

func (a *Accumulator) append(p []byte, lines *lineTracker) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.max > 0 {
		room := a.max - int64(a.buf.Len())
		if room <= 0 {
			a.truncated = true
			return
		}

		if int64(len(p)) > room {
			p = p[:room]
			a.truncated = true
		}
	}

	a.buf.Write(p)

	if len(p) == 0 {
		return
	}

	a.latest = lines

	if line, ok := lines.track(p); ok {
		a.lastLine = line
	}
}

// track consumes p and returns the last line it completes, if any.
// Only the chunk is scanned; the remembered partial line never exceeds lineKeep bytes.
func (t *lineTracker) track(p []byte) (string, bool) {
	end := bytes.LastIndexByte(p, '\n')
	if end < 0 {
		t.add(p)
		return "", false
	}

	var line string

	if start := bytes.LastIndexByte(p[:end], '\n'); start >= 0 {
		line = string(p[start+1 : min(end, start+1+lineKeep)])
	} else {
		t.add(p[:end])
		line = string(t.partial)
	}

	t.partial = t.partial[:0]
	t.add(p[end+1:])

	return line, true
}

func (t *lineTracker) add(p []byte) {
	room := lineKeep - len(t.partial)
	if room <= 0 {
		return
	}

	t.partial = append(t.partial, p[:min(len(p), room)]...)
}

// String returns a copy of everything accumulated so far.
func (a *Accumulator) String() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.buf.String()
}

// Len returns the number of bytes held.
func (a *Accumulator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.buf.Len()
}

// Truncated reports whether any bytes were dropped because of the limit.
func (a *Accumulator) Truncated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.truncated
}

// LastLine returns the last complete line, or the pending partial line if no
// line has been completed yet. Lines are tracked per reader, and only their first
// 1024 bytes are kept. If maxLength > 3 and the line is longer, it is cut at a
// character boundary and suffixed with "...".
func (a *Accumulator) LastLine(maxLength int) string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	line := a.lastLine
	if line == "" && a.latest != nil {
		line = string(a.latest.partial)
	}

	if maxLength > 3 && len(line) > maxLength {
		cut := maxLength - 3
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}

		line = line[:cut] + "..."
	}

	return line
}
