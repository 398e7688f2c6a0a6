package goroutine

import (
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-ledger/internal/logger"
)

// Recover логирует panic текущей горутины вместе со стеком.
// Работает только как непосредственный вызов defer: defer goroutine.Recover(...).
func Recover(name string, fields logrus.Fields) {
	r := recover()
	if r == nil {
		return
	}
	entry := logger.Log.WithFields(fields).WithFields(logrus.Fields{
		"goroutine": name,
		"panic":     r,
		"stack":     string(debug.Stack()),
	})
	entry.Error("panic recovered")
}

// SafeGo запускает горутину, panic в которой не роняет процесс.
func SafeGo(name string, fields logrus.Fields, fn func()) {
	go func() {
		defer Recover(name, fields)
		fn()
	}()
}
