package config

import (
	"fmt"

	"github.com/rs/zerolog"

	zerr "github.com/pkgsweep/pkgsweep/errors"
	"github.com/pkgsweep/pkgsweep/pkg/common"
)

func Validate(config *Config) error {
	if !common.Contains(OutputFormats(), config.Format) {
		return fmt.Errorf("%w: %q, expected one of %v", zerr.ErrUnsupportedFormat, config.Format, OutputFormats())
	}

	if config.NumOldVersionsToDelete < 0 || config.NumOldVersionsToKeep < 0 {
		return fmt.Errorf("%w: version counts must not be negative", zerr.ErrBadConfig)
	}

	if config.Log != nil {
		if _, err := zerolog.ParseLevel(config.Log.Level); err != nil {
			return fmt.Errorf("%w: invalid log level %q", zerr.ErrBadConfig, config.Log.Level)
		}
	}

	return nil
}
