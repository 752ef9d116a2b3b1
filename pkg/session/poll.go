package session

import (
	"context"
	"sort"
	"time"

	"github.com/jg-phare/logan-bridge/pkg/chat"
)

// RunPolling registers, greets, then polls for new user messages until the
// router terminates the session or ctx is cancelled. On interrupt it sends
// the best-effort disconnect notice and returns nil.
//
// The cursor starts at the current time, so only messages arriving after the
// session begins are observed. A failed fetch skips the cycle with the
// cursor unchanged; the poll interval already rate-limits retries, so there
// is no cap and no backoff.
func (s *Session) RunPolling(ctx context.Context) error {
	cursor := time.Now().UnixMilli()

	s.register(ctx)
	s.greet(ctx, "polling")
	s.log.Info("polling for messages", "interval", s.cfg.PollInterval)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.disconnect()
			return nil
		case <-ticker.C:
		}

		msgs, err := s.client.Messages(ctx, cursor)
		if err != nil {
			s.log.Debug("fetch failed, skipping cycle", "error", err)
			continue
		}

		// The remote's since filter is not guaranteed exclusive, so drop
		// anything at or before the cursor ourselves. Delivery stays
		// exactly-once either way.
		var fresh []chat.Message
		for _, m := range msgs {
			if m.From == chat.OriginUser && m.Timestamp > cursor {
				fresh = append(fresh, m)
			}
		}
		sort.Slice(fresh, func(i, j int) bool {
			return fresh[i].Timestamp < fresh[j].Timestamp
		})

		for _, m := range fresh {
			if m.Timestamp > cursor {
				cursor = m.Timestamp
			}
			done, err := s.router.HandleMessage(ctx, m)
			if err != nil {
				s.log.Error("handle message", "error", err)
			}
			if done {
				return nil
			}
		}
	}
}
