package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Defaults of the staking program deployment the dashboard targets
const (
	DefaultPort          = "8080"
	DefaultRPCURL        = "https://api.devnet.solana.com"
	DefaultProgramID     = "6SVBFPT8bLcbp8eDud9ECSoVYJhzmXxgHm9iU5FviKAs"
	DefaultMint          = "CzLeDd7qrK8Y4XREpsb4uc5xVX9ktYcryGw3zXRSpump"
	DefaultDecimals      = 6
	DefaultLockDuration  = 7 * 24 * time.Hour // 604800 seconds
	DefaultPollInterval  = 15 * time.Second
	DefaultRefreshDelay  = 2 * time.Second
	DefaultActivityLimit = 5
	DefaultKeystorePath  = "wallet.key"
	DefaultLogLevel      = "info"
)

var (
	DefaultDailyRewardRate = decimal.RequireFromString("0.00015") // 0.015% per day
	DefaultAPR             = decimal.RequireFromString("5.48")    // annual percentage rate
)

// Config contains all configuration parameters for the application.
// Values come from an optional YAML file, then environment variables, then defaults.
// Note: the keystore password is prompted at runtime and never configured.
type Config struct {
	Port            string          `yaml:"port" envconfig:"PORT"`
	SolanaRPCURL    string          `yaml:"rpc_url" envconfig:"SOLANA_RPC_URL"`
	Commitment      string          `yaml:"commitment" envconfig:"SOLANA_COMMITMENT"`
	ProgramID       string          `yaml:"program_id" envconfig:"STAKING_PROGRAM_ID"`
	MintAddress     string          `yaml:"mint" envconfig:"STAKING_MINT"`
	Decimals        int32           `yaml:"decimals" envconfig:"TOKEN_DECIMALS"`
	DailyRewardRate decimal.Decimal `yaml:"daily_reward_rate" envconfig:"DAILY_REWARD_RATE"`
	APR             decimal.Decimal `yaml:"apr" envconfig:"APR"`
	LockDuration    time.Duration   `yaml:"lock_duration" envconfig:"LOCK_DURATION"`
	PollInterval    time.Duration   `yaml:"poll_interval" envconfig:"POLL_INTERVAL"`
	RefreshDelay    time.Duration   `yaml:"refresh_delay" envconfig:"REFRESH_DELAY"`
	ActivityLimit   int             `yaml:"activity_limit" envconfig:"ACTIVITY_LIMIT"`
	KeystorePath    string          `yaml:"keystore_path" envconfig:"KEYSTORE_PATH"`
	LogLevel        string          `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFile         string          `yaml:"log_file" envconfig:"LOG_FILE"`
	LogMaxSizeMB    int             `yaml:"log_max_size_mb" envconfig:"LOG_MAX_SIZE_MB"`
	LogMaxAgeDays   int             `yaml:"log_max_age_days" envconfig:"LOG_MAX_AGE_DAYS"`
}

// Load reads config from a YAML file (if path is set and exists), then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// Fields without a matching variable are left untouched
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.SolanaRPCURL == "" {
		c.SolanaRPCURL = DefaultRPCURL
	}
	if c.Commitment == "" {
		c.Commitment = string(rpc.CommitmentConfirmed)
	}
	if c.ProgramID == "" {
		c.ProgramID = DefaultProgramID
	}
	if c.MintAddress == "" {
		c.MintAddress = DefaultMint
	}
	if c.Decimals == 0 {
		c.Decimals = DefaultDecimals
	}
	if c.DailyRewardRate.IsZero() {
		c.DailyRewardRate = DefaultDailyRewardRate
	}
	if c.APR.IsZero() {
		c.APR = DefaultAPR
	}
	if c.LockDuration == 0 {
		c.LockDuration = DefaultLockDuration
	}
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.RefreshDelay == 0 {
		c.RefreshDelay = DefaultRefreshDelay
	}
	if c.ActivityLimit == 0 {
		c.ActivityLimit = DefaultActivityLimit
	}
	if c.KeystorePath == "" {
		c.KeystorePath = DefaultKeystorePath
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 14
	}
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if _, err := c.ProgramPublicKey(); err != nil {
		return err
	}
	if _, err := c.MintPublicKey(); err != nil {
		return err
	}
	switch rpc.CommitmentType(c.Commitment) {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return fmt.Errorf("commitment must be processed, confirmed or finalized, got %q", c.Commitment)
	}
	if c.Decimals < 0 || c.Decimals > 18 {
		return fmt.Errorf("decimals must be between 0 and 18")
	}
	if c.DailyRewardRate.IsNegative() || c.APR.IsNegative() {
		return errors.New("reward rates must not be negative")
	}
	if c.LockDuration < time.Second {
		return errors.New("lock duration must be at least one second")
	}
	if c.PollInterval < time.Second {
		return errors.New("poll interval must be at least one second")
	}
	if c.RefreshDelay < 0 {
		return errors.New("refresh delay must not be negative")
	}
	if c.ActivityLimit < 1 {
		return errors.New("activity limit must be positive")
	}
	return nil
}

// ProgramPublicKey returns the staking program id
func (c *Config) ProgramPublicKey() (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(c.ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid program id: %w", err)
	}
	return key, nil
}

// MintPublicKey returns the staked token mint
func (c *Config) MintPublicKey() (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(c.MintAddress)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid mint address: %w", err)
	}
	return key, nil
}

// LockSeconds returns the lock window in whole seconds
func (c *Config) LockSeconds() int64 {
	return int64(c.LockDuration / time.Second)
}
