package conversation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStream_DeliversWholeText(t *testing.T) {
	texto := "¡Perfecto! Contrato ñoño"
	var b strings.Builder
	for chunk := range Stream(context.Background(), texto, 0) {
		b.WriteString(chunk)
	}
	assert.Equal(t, texto, b.String())
}

func TestStream_OneRunePerChunk(t *testing.T) {
	var chunks []string
	for chunk := range Stream(context.Background(), "añil", 0) {
		chunks = append(chunks, chunk)
	}
	assert.Equal(t, []string{"a", "ñ", "i", "l"}, chunks)
}

func TestStream_CancelStopsDelivery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := Stream(ctx, strings.Repeat("x", 10000), time.Millisecond)

	<-ch
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return // channel closed after cancel
			}
		case <-deadline:
			t.Fatal("stream did not stop after cancel")
		}
	}
}

func TestStream_EmptyText(t *testing.T) {
	_, ok := <-Stream(context.Background(), "", 0)
	assert.False(t, ok)
}
