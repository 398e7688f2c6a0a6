// Команда token выпускает access токен для профиля. Нужна для ручной
// проверки API и для административных скриптов.
//
//	go run ./cmd/token -profile 1
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ignatzorin/freelance-ledger/internal/config"
	"github.com/ignatzorin/freelance-ledger/internal/service"
)

func main() {
	profileID := flag.Int64("profile", 0, "id профиля, от имени которого выпускается токен")
	ttl := flag.Duration("ttl", 0, "время жизни токена (по умолчанию ACCESS_TOKEN_TTL)")
	flag.Parse()

	if *profileID <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("token: ошибка загрузки конфигурации: %v", err)
	}

	lifetime := cfg.AccessTokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, exp, err := service.NewTokenManager(cfg.JWTSecret, lifetime).IssueAccess(*profileID)
	if err != nil {
		log.Fatalf("token: не удалось выпустить токен: %v", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", exp.Format(time.RFC3339))
}
