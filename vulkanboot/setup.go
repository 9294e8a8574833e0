package vulkanboot

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// Setup loads an optional dotenv file, applies environment overrides on top
// of the defaults and configures the standard logger.
func Setup(envFile string) (Configuration, error) {
	if envFile != "" {
		if err := LoadEnvFile(envFile); err != nil {
			return Configuration{}, err
		}
	}
	cfg, err := DefaultConfiguration().FromEnv()
	if err != nil {
		return cfg, err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, errors.Wrap(err, "log level")
	}
	log.SetLevel(level)
	return cfg, nil
}

// Fail logs err with the failing stage and status, when it has them.
func Fail(logger log.FieldLogger, err error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	entry := logger.WithError(err)
	var se *StageError
	if errors.As(err, &se) {
		entry = entry.WithField("stage", se.Stage.String())
		if status, ok := se.Status(); ok {
			entry = entry.WithField("status", int32(status))
		}
	}
	entry.Error("bootstrap failed")
}
