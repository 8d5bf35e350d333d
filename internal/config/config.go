package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "tankagent.cfg.json"

// MemoryConfig holds settings of the in-memory journal that is exported as JSON when the match ends.
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds settings of the sqlite journal.
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// JournalConfig selects and configures the match journal. FlushInterval applies to both
// database backends.
type JournalConfig struct {
	Type          string        `json:"type" mapstructure:"type"`
	FlushInterval time.Duration `json:"flushInterval" mapstructure:"flushInterval"`
	Memory        MemoryConfig  `json:"memory" mapstructure:"memory"`
	SQLite        SQLiteConfig  `json:"sqlite" mapstructure:"sqlite"`
}

// CommsConfig configures the team side channel.
type CommsConfig struct {
	Enabled    bool
	Fd         int
	PublishFd  int
	URL        string
	BufferSize int
}

// OTelConfig configures the OpenTelemetry log pipeline.
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// InfluxConfig configures round telemetry.
type InfluxConfig struct {
	Enabled  bool
	Protocol string
	Host     string
	Port     string
	Token    string
	Org      string
	Bucket   string
}

// DBConfig holds postgres connection settings.
type DBConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// Load sets default values and reads FileName from configDir. A missing file is not an
// error: the defaults are used and ErrNoConfigFile is returned for the caller to log.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./tanklogs")
	viper.SetDefault("unitClass", "T")
	viper.SetDefault("input.mockFile", "")

	viper.SetDefault("comms.enabled", false)
	viper.SetDefault("comms.fd", 3)
	viper.SetDefault("comms.publishFd", 4)
	viper.SetDefault("comms.url", "")
	viper.SetDefault("comms.bufferSize", 64)

	viper.SetDefault("journal.type", "memory")
	viper.SetDefault("journal.memory.outputDir", "./matches")
	viper.SetDefault("journal.memory.compressOutput", true)
	viper.SetDefault("journal.sqlite.path", "./matches/journal.db")
	viper.SetDefault("journal.flushInterval", "1m")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "tankagent")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "hexclash")
	viper.SetDefault("influx.bucket", "tankagent")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "tankagent")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return ErrNoConfigFile
		}
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// ErrNoConfigFile reports that defaults are in use.
var ErrNoConfigFile = errors.New("no config file found, using defaults")

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Set overrides a value, used for command line flags.
func Set(key string, value any) {
	viper.Set(key, value)
}

// GetJournalConfig returns the journal section.
func GetJournalConfig() JournalConfig {
	return JournalConfig{
		Type:          viper.GetString("journal.type"),
		FlushInterval: viper.GetDuration("journal.flushInterval"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("journal.memory.outputDir"),
			CompressOutput: viper.GetBool("journal.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("journal.sqlite.path"),
		},
	}
}

// GetCommsConfig returns the side channel section.
func GetCommsConfig() CommsConfig {
	return CommsConfig{
		Enabled:    viper.GetBool("comms.enabled"),
		Fd:         viper.GetInt("comms.fd"),
		PublishFd:  viper.GetInt("comms.publishFd"),
		URL:        viper.GetString("comms.url"),
		BufferSize: viper.GetInt("comms.bufferSize"),
	}
}

// GetOTelConfig returns the OpenTelemetry section.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetInfluxConfig returns the telemetry section.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  viper.GetBool("influx.enabled"),
		Protocol: viper.GetString("influx.protocol"),
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
		Bucket:   viper.GetString("influx.bucket"),
	}
}

// GetDBConfig returns the postgres section.
func GetDBConfig() DBConfig {
	return DBConfig{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
	}
}
