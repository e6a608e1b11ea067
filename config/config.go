package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/tidwall/gjson"

	"github.com/gamingterminal/launchpad-go/launchpad/shared"
)

// Config carries the runtime settings of the launchpad engine. Everything
// has a working default; a config file and LAUNCHPAD_* environment
// variables override it.
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	FeeQuoteNum uint64 `mapstructure:"fee_quote_num"`
	FeeBaseNum  uint64 `mapstructure:"fee_base_num"`

	AirdropCap uint64 `mapstructure:"airdrop_cap"`

	MinVestingSeconds int64 `mapstructure:"min_vesting_seconds"`
	MaxVestingSeconds int64 `mapstructure:"max_vesting_seconds"`

	PointsSchedulePath string `mapstructure:"points_schedule_path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("fee_quote_num", shared.DefaultQuoteFeeNum)
	v.SetDefault("fee_base_num", shared.DefaultBaseFeeNum)
	v.SetDefault("airdrop_cap", shared.GlobalAirdropCap)
	v.SetDefault("min_vesting_seconds", shared.MinVestingPeriod)
	v.SetDefault("max_vesting_seconds", shared.MaxVestingPeriod)
	v.SetDefault("points_schedule_path", "")
}

// Load reads the configuration from path (optional) and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("LAUNCHPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.FeeQuoteNum >= shared.FeePrecision {
		return fmt.Errorf("fee_quote_num %d must be below the fee precision %d", c.FeeQuoteNum, shared.FeePrecision)
	}
	if c.FeeBaseNum >= shared.FeePrecision {
		return fmt.Errorf("fee_base_num %d must be below the fee precision %d", c.FeeBaseNum, shared.FeePrecision)
	}
	if c.MinVestingSeconds <= 0 || c.MaxVestingSeconds < c.MinVestingSeconds {
		return fmt.Errorf("vesting bounds [%d, %d] are not a valid interval", c.MinVestingSeconds, c.MaxVestingSeconds)
	}
	return nil
}

// Fees returns the fee configuration pools are created with.
func (c *Config) Fees() shared.Fees {
	return shared.Fees{
		FeeBaseNum:  c.FeeBaseNum,
		FeeQuoteNum: c.FeeQuoteNum,
	}
}

// LoadPointsSchedule reads a points-epoch schedule document:
//
//	{"epochs": [{"epoch": 1, "points_per_quote_num": 1000, "points_per_quote_denom": 1}, ...]}
//
// The highest epoch number in the document is the active one.
func LoadPointsSchedule(path string) ([]shared.PointsEpoch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read points schedule: %w", err)
	}
	return ParsePointsSchedule(raw)
}

// ParsePointsSchedule parses the schedule document.
func ParsePointsSchedule(raw []byte) ([]shared.PointsEpoch, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("points schedule is not valid JSON")
	}
	epochs := gjson.GetBytes(raw, "epochs")
	if !epochs.IsArray() {
		return nil, fmt.Errorf("points schedule has no epochs array")
	}
	var out []shared.PointsEpoch
	var parseErr error
	epochs.ForEach(func(_, e gjson.Result) bool {
		denom := e.Get("points_per_quote_denom").Uint()
		if denom == 0 {
			parseErr = fmt.Errorf("epoch %d has a zero points denominator", e.Get("epoch").Uint())
			return false
		}
		out = append(out, shared.PointsEpoch{
			EpochNumber:         e.Get("epoch").Uint(),
			PointsPerQuoteNum:   e.Get("points_per_quote_num").Uint(),
			PointsPerQuoteDenom: denom,
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("points schedule is empty")
	}
	return out, nil
}
