package main

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gounknown/logroll"
)

func main() {
	// logroll is safe for concurrent use, so we don't need to lock it.
	l, err := logroll.New(
		logroll.WithFile("logs/app"),
		logroll.WithDateFormat("yyyyMMddHH"),
		logroll.WithSymlink(true),
		logroll.WithSize("10m"),
		logroll.WithFrequency("hourly"),
		logroll.WithLimit(logroll.Limit{Count: 24}),
	)
	if err != nil {
		panic(err)
	}
	defer l.Close()

	w := zapcore.AddSync(l)
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		w,
		zap.InfoLevel,
	)
	logger := zap.New(core)
	logger.Info("Hello, World1!")
	logger.Info("Hello, World2!")
	time.Sleep(10 * time.Millisecond)
}
