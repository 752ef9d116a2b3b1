package stream

import (
	"context"
	"io"

	"github.com/jg-phare/logan-bridge/pkg/chat"
)

// Events consumes the long-lived response body and yields one decoded event
// per frame, in arrival order. Frames whose payload is not valid JSON are
// dropped silently. The channel closes when the body ends, a read fails, or
// ctx is cancelled; the sequence is not restartable and no reconnect is
// attempted.
func Events(ctx context.Context, body io.ReadCloser) <-chan chat.Event {
	ch := make(chan chat.Event)

	go func() {
		defer close(ch)
		defer body.Close()

		var dec frameDecoder
		chunk := make([]byte, 512)
		for {
			n, err := body.Read(chunk)
			if n > 0 {
				dec.Write(chunk[:n])
				for {
					payload, ok := dec.Next()
					if !ok {
						break
					}
					ev, decErr := chat.DecodeEvent(payload)
					if decErr != nil {
						continue // malformed frame: drop, keep reading
					}
					select {
					case ch <- ev:
					case <-ctx.Done():
						return
					}
				}
			}
			if err != nil {
				// EOF or a broken connection both end the sequence. A
				// cancelled ctx closes the underlying connection, which
				// surfaces here as a read error.
				return
			}
		}
	}()

	return ch
}
