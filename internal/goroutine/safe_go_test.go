package goroutine

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/freelance-ledger/internal/logger"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSafeGo_RecoversPanic(t *testing.T) {
	out := &syncBuffer{}
	logger.SetOutput(out)
	t.Cleanup(func() { logger.SetOutput(logrus.StandardLogger().Out) })

	done := make(chan struct{})
	SafeGo("worker", logrus.Fields{"profile_id": 7}, func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("горутина не завершилась")
	}

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "panic recovered")
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "boom")
	assert.Contains(t, out.String(), "worker")
}
