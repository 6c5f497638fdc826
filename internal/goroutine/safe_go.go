// Package goroutine запускает фоновые горутины с перехватом panic.
package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/reactions-backend/internal/logger"
)

// RecoveryHandler логирует panic фоновой горутины вместо падения процесса.
type RecoveryHandler struct {
	log logrus.FieldLogger
}

func NewRecoveryHandler(log logrus.FieldLogger) *RecoveryHandler {
	return &RecoveryHandler{log: log}
}

// SafeGoWithContext запускает fn в горутине; name попадает в лог при panic.
// Возвращаемый канал закрывается, когда fn завершилась (в том числе через panic).
func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, name string, fn func(context.Context)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				rh.logger().WithFields(logrus.Fields{
					"goroutine": name,
					"panic":     r,
					"stack":     string(debug.Stack()),
				}).Error("Panic in goroutine")
			}
		}()
		fn(ctx)
	}()
	return done
}

func (rh *RecoveryHandler) logger() logrus.FieldLogger {
	if rh.log != nil {
		return rh.log
	}
	if logger.Log != nil {
		return logger.Log
	}
	return logrus.StandardLogger()
}

// SafeGoWithContext - запуск через обработчик с глобальным логгером.
func SafeGoWithContext(ctx context.Context, name string, fn func(context.Context)) <-chan struct{} {
	return NewRecoveryHandler(nil).SafeGoWithContext(ctx, name, fn)
}
