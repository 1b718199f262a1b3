package conversation

import (
	"context"
	"time"
)

// Stream paces a reply character by character for typing-effect delivery.
// It is purely presentational: the turn's context mutation happened before
// streaming starts and is unaffected by how delivery goes. The channel is
// closed when the text is exhausted or ctx is canceled.
func Stream(ctx context.Context, texto string, delay time.Duration) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for _, r := range texto {
			select {
			case out <- string(r):
			case <-ctx.Done():
				return
			}
			if delay > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
