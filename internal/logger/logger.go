package logger

import "go.uber.org/zap"

// New builds the process-wide production logger.
func New() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return l
}
