package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log глобальный логгер. Инициализирован сразу, чтобы пакеты и тесты
// могли логировать до вызова Init.
var Log = logrus.New()

// Init настраивает уровень и формат логгера.
func Init(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// Используем JSON формат для production, text для development
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// SetOutput перенаправляет вывод логгера, например в тестах.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}
