package goroutine

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeGoWithContext_RecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	done := NewRecoveryHandler(log).SafeGoWithContext(context.Background(), "shutdown", func(context.Context) {
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not finish")
	}
	assert.Contains(t, buf.String(), `"goroutine":"shutdown"`)
	assert.Contains(t, buf.String(), "boom")
}

func TestSafeGoWithContext_PassesContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	seen := make(chan error, 1)

	done := SafeGoWithContext(ctx, "worker", func(ctx context.Context) {
		<-ctx.Done()
		seen <- ctx.Err()
	})
	cancel()

	<-done
	require.ErrorIs(t, <-seen, context.Canceled)
}
