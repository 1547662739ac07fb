package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config carries every simulation parameter. All fields are bound from CLI
// flags (and optionally a config file) by the cmd layer.
type Config struct {
	Seed           int `mapstructure:"seed"`
	NumOrders      int `mapstructure:"num_orders"`
	NumCouriers    int `mapstructure:"num_couriers"`
	NumRestaurants int `mapstructure:"num_restaurants"`
	NumZones       int `mapstructure:"num_zones"`

	CancelProb             float64 `mapstructure:"cancel_prob"`
	PromoProb              float64 `mapstructure:"promo_prob"`
	DuplicateProb          float64 `mapstructure:"duplicate_prob"`
	LateProb               float64 `mapstructure:"late_prob"`
	MissingStepProb        float64 `mapstructure:"missing_step_prob"`
	ImpossibleDurationProb float64 `mapstructure:"impossible_duration_prob"`
	MidDeliveryOfflineProb float64 `mapstructure:"mid_delivery_offline_prob"`
	FraudClusterProb       float64 `mapstructure:"fraud_cluster_prob"`

	SurgeFactor    float64 `mapstructure:"surge_factor"`
	ZoneSurgeEvent bool    `mapstructure:"zone_surge_event"`

	City    string `mapstructure:"city"`
	Date    string `mapstructure:"date"`
	Weekend bool   `mapstructure:"weekend"`

	Stream      bool    `mapstructure:"stream"`
	SpeedFactor float64 `mapstructure:"speed_factor"`

	OutputDir    string `mapstructure:"output_dir"`
	OutputFormat string `mapstructure:"output_format"` // json, parquet or both

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`

	// OutputDestination "s3" additionally uploads the batch files.
	OutputDestination string `mapstructure:"output_destination"`
	S3Bucket          string `mapstructure:"s3_bucket"`
	S3Region          string `mapstructure:"s3_region"`

	// BaseDate is derived from Date during validation, midnight UTC.
	BaseDate time.Time `mapstructure:"-"`
}

// LoadConfig initializes and reads the configuration using Viper.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.AutomaticEnv()

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

// Validate rejects invalid parameter sets before the simulation starts.
// This is the only user-facing fatal failure class besides output writes.
func (cfg *Config) Validate() error {
	counts := []struct {
		name  string
		value int
	}{
		{"num_orders", cfg.NumOrders},
		{"num_couriers", cfg.NumCouriers},
		{"num_restaurants", cfg.NumRestaurants},
	}
	for _, c := range counts {
		if c.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", c.name, c.value)
		}
	}

	probs := []struct {
		name  string
		value float64
	}{
		{"cancel_prob", cfg.CancelProb},
		{"promo_prob", cfg.PromoProb},
		{"duplicate_prob", cfg.DuplicateProb},
		{"late_prob", cfg.LateProb},
		{"missing_step_prob", cfg.MissingStepProb},
		{"impossible_duration_prob", cfg.ImpossibleDurationProb},
		{"mid_delivery_offline_prob", cfg.MidDeliveryOfflineProb},
		{"fraud_cluster_prob", cfg.FraudClusterProb},
	}
	for _, p := range probs {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", p.name, p.value)
		}
	}

	if cfg.SurgeFactor <= 0 {
		return fmt.Errorf("surge_factor must be positive, got %v", cfg.SurgeFactor)
	}
	if cfg.SpeedFactor <= 0 {
		return fmt.Errorf("speed_factor must be positive, got %v", cfg.SpeedFactor)
	}

	switch cfg.OutputFormat {
	case "json", "parquet", "both":
	default:
		return fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
	}

	if cfg.Date == "" {
		cfg.BaseDate = time.Now().UTC().Truncate(24 * time.Hour)
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", cfg.Date, time.UTC)
		if err != nil {
			return fmt.Errorf("unparseable date %q (want YYYY-MM-DD): %w", cfg.Date, err)
		}
		cfg.BaseDate = parsed
	}

	// Zone count bounds are checked against the city preset.
	if _, err := BuildZones(cfg.City, cfg.NumZones); err != nil {
		return err
	}

	return nil
}

// IsWeekend reports whether the weekend demand curve applies, either forced
// or auto-detected from the simulation date.
func (cfg *Config) IsWeekend() bool {
	if cfg.Weekend {
		return true
	}
	wd := cfg.BaseDate.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
