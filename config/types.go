package config

type Config struct {
	Server struct {
		Port         string `yaml:"port"`
		DocumentRoot string `yaml:"documentRoot"`
		IndexFile    string `yaml:"indexFile"`
		ChunkSize    int    `yaml:"chunkSize"`
	} `yaml:"server"`

	Security struct {
		EnableCORS  bool     `yaml:"enableCORS"`
		CORSOrigins []string `yaml:"corsOrigins"`
	} `yaml:"security"`

	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
}
