package config

const (
	DefaultInputDir       = "attached_assets"
	DefaultExtension      = ".pdf"
	DefaultOutputSuffix   = "_extracted.txt"
	DefaultOutput         = "text"
	DefaultMaxUploadBytes = 32 << 20
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Batch.InputDir == "" {
		cfg.Batch.InputDir = DefaultInputDir
	}
	if cfg.Batch.Extension == "" {
		cfg.Batch.Extension = DefaultExtension
	}
	if cfg.Batch.OutputSuffix == "" {
		cfg.Batch.OutputSuffix = DefaultOutputSuffix
	}
	if cfg.Batch.Output == "" {
		cfg.Batch.Output = DefaultOutput
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8090
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}
}
