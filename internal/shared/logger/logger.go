package logger

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cristianortiz/leilaoEngine/internal/shared/config"
)

var (
	logger *zap.Logger
	core   = &swappableCore{}
	once   sync.Once
)

// GetLogger returns zap.Logger instance, but using singleton pattern creates only one reusable instace
// development config by default. Packages keep the returned pointer, Init reconfigures it in place.
func GetLogger() *zap.Logger {
	once.Do(func() {
		dev, err := zap.NewDevelopment()
		if err != nil {
			panic("failed logger setup : " + err.Error())
		}
		core.swap(dev.Core())
		logger = zap.New(core, zap.AddCaller())
	})
	return logger
}

// Init applies cfg to the shared logger: production or development encoding and level
func Init(cfg *config.Config) error {
	configured, err := build(cfg)
	if err != nil {
		return err
	}
	GetLogger()
	core.swap(configured.Core())
	return nil
}

func build(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// swappableCore forwards to whichever core was installed last.
// Loggers derived with With keep the core current at that moment.
type swappableCore struct {
	current atomic.Pointer[coreHolder]
}

type coreHolder struct {
	zapcore.Core
}

func (s *swappableCore) swap(c zapcore.Core) { s.current.Store(&coreHolder{c}) }

func (s *swappableCore) load() zapcore.Core { return s.current.Load().Core }

func (s *swappableCore) Enabled(l zapcore.Level) bool { return s.load().Enabled(l) }

func (s *swappableCore) With(fields []zapcore.Field) zapcore.Core { return s.load().With(fields) }

func (s *swappableCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return s.load().Check(e, ce)
}

func (s *swappableCore) Write(e zapcore.Entry, fields []zapcore.Field) error {
	return s.load().Write(e, fields)
}

func (s *swappableCore) Sync() error { return s.load().Sync() }
