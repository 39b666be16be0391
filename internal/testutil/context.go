package testutil

import (
	"context"
	"testing"
	"time"
)

// DBTimeout ограничивает операции с testcontainer-базой.
const DBTimeout = 30 * time.Second

// ContextWithTimeout создаёт context с timeout и автоматически отменяет его при завершении теста.
func ContextWithTimeout(t testing.TB, duration time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	t.Cleanup(cancel)

	return ctx
}
