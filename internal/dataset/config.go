package dataset

import (
	"strings"
	"time"

	"carddash.org/internal/appconf"
)

type Config struct {
	DataURL         string
	Env             appconf.Environment
	Verbose         bool
	DownloadTimeout time.Duration
}

func (config Config) isLocalFile() bool {
	return !strings.HasPrefix(config.DataURL, "http://") && !strings.HasPrefix(config.DataURL, "https://")
}

func (config Config) downloadTimeout() time.Duration {
	if config.DownloadTimeout <= 0 {
		return 60 * time.Second
	}
	return config.DownloadTimeout
}
