package params

type Config struct {
	DataDir        string `mapstructure:"data_dir"`
	LogFile        string `mapstructure:"log_file"`
	StatusInterval int64  `mapstructure:"status_interval"`
	ExportFormat   string `mapstructure:"export_format"`
}

func LoadConfig() *Config {
	return DefaultConfig
}
