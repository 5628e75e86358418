package config

const (
	defaultDevice    = "/dev/sr0"
	defaultLockDir   = "~/.local/share/dvdstream/locks"
	defaultTitle     = -1
	defaultCachePath = "~/.cache/dvdstream/disccache.db"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Drive: Drive{
			Device:  defaultDevice,
			LockDir: defaultLockDir,
		},
		Stream: Stream{
			Title: defaultTitle,
		},
		Cache: Cache{
			Enabled: false,
			Path:    defaultCachePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
