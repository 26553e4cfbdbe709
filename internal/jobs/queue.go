package jobs

import "log"

// unbounded returns the two ends of a FIFO that never blocks its writer for
// long: a pump goroutine moves items from in to out through a growing slice.
// Once limit items are waiting the oldest one is dropped; a limit of 0 keeps
// everything. Closing in flushes the backlog and then closes out.
func unbounded[T any](limit int) (chan<- T, <-chan T) {
	in := make(chan T, 16)
	out := make(chan T, 16)

	go func() {
		defer close(out)
		var backlog []T
		for {
			var head T
			var send chan<- T
			if len(backlog) > 0 {
				head = backlog[0]
				send = out
			}

			select {
			case v, ok := <-in:
				if !ok {
					for _, item := range backlog {
						out <- item
					}
					return
				}
				if limit > 0 && len(backlog) >= limit {
					log.Printf("jobs.unbounded: backlog limit %d reached, dropping oldest item", limit)
					backlog = backlog[1:]
				}
				backlog = append(backlog, v)
			case send <- head:
				backlog = backlog[1:]
			}
		}
	}()

	return in, out
}
