// Package stream decodes LOGAN's text/event-stream framing into chat events.
// The decoder is chunk-invariant: the same bytes produce the same events no
// matter how the transport splits them, down to one byte per read.
package stream

import "bytes"

var (
	frameSep   = []byte("\n\n")
	dataPrefix = []byte("data: ")
)

// frameDecoder reassembles logical frames from an arbitrarily chunked byte
// stream. A frame ends at a blank line; within a frame only lines with the
// "data: " prefix carry payload, and multiple data lines concatenate into
// one payload. After each extraction the buffer holds exactly the unconsumed
// trailing bytes of the next frame.
type frameDecoder struct {
	buf []byte
}

// Write appends raw bytes from the connection.
func (d *frameDecoder) Write(p []byte) {
	d.buf = append(d.buf, p...)
}

// Next extracts the payload of the next complete frame. Frames with no data
// lines (comments, keep-alive pings) are skipped. ok is false once no
// complete frame remains buffered; partial frames are never returned.
func (d *frameDecoder) Next() (payload []byte, ok bool) {
	for {
		end := bytes.Index(d.buf, frameSep)
		if end < 0 {
			return nil, false
		}
		frame := d.buf[:end]
		d.buf = d.buf[end+len(frameSep):]

		var data []byte
		for _, line := range bytes.Split(frame, []byte("\n")) {
			if bytes.HasPrefix(line, dataPrefix) {
				data = append(data, line[len(dataPrefix):]...)
			}
		}
		if len(data) == 0 {
			continue
		}
		return data, true
	}
}
