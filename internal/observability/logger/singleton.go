package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Init inicializa el singleton. Idempotente: sólo la primera llamada tiene
// efecto. La llaman los mains (storefront, tenantctl) antes de cualquier log.
func Init(cfg Config) {
	once.Do(func() {
		instance = build(cfg)
	})
}

// L devuelve el logger singleton. Si Init no corrió todavía (tests, helpers
// sueltos), arranca uno de dev a nivel info.
func L() *zap.Logger {
	if instance == nil {
		Init(Config{Env: "dev", Level: "info"})
	}
	return instance
}

// Named devuelve un logger con nombre de componente.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// With devuelve un logger con campos persistentes (ej: TenantID en un service).
func With(fields ...zap.Field) *zap.Logger {
	return L().With(fields...)
}

// Sync flushea buffers pendientes. Va en defer en main.
func Sync() error {
	if instance != nil {
		return instance.Sync()
	}
	return nil
}
