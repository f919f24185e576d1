// Package logging builds the audit logger. Every run appends plain-text,
// timestamped lines to master_audit.log inside the audit directory; warnings
// and errors are additionally echoed to stderr so scripted runs surface
// problems without tailing the log.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	consts "github.com/nexless/storeaudit/internal/shared/constants"
)

// New opens (or creates) the master audit log under auditDir and returns the
// logger plus a cleanup function that flushes and closes it.
func New(auditDir string) (*zap.SugaredLogger, func(), error) {
	if err := os.MkdirAll(auditDir, consts.DefaultDirPerm); err != nil {
		return nil, nil, fmt.Errorf("create audit directory: %w", err)
	}

	logPath := filepath.Join(auditDir, consts.MasterLogFileName)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, consts.DefaultFilePerm)
	if err != nil {
		return nil, nil, fmt.Errorf("open master audit log: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), zap.InfoLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stderr), zap.WarnLevel),
	)

	l := zap.New(core)
	cleanup := func() {
		_ = l.Sync()
		_ = f.Close()
	}

	return l.Sugar(), cleanup, nil
}
