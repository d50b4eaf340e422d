package config

import (
	"encoding/json"
	"os"
	"sync"
)

// Config holds everything tunable without a rebuild. The score weights feed the
// database trigger that computes workshop scores; changing them and saving
// reinstalls the trigger.
type Config struct {
	Port                string  `json:"port"`
	DBPath              string  `json:"dbPath"`
	AllowedOrigin       string  `json:"allowedOrigin"`
	ScoreManpowerWeight float64 `json:"scoreManpowerWeight"`
	ScoreVisitWeight    float64 `json:"scoreVisitWeight"`
	ScoreRecoveryBonus  float64 `json:"scoreRecoveryBonus"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./wsm_config.json"

func defaults(c Config) Config {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.DBPath == "" {
		c.DBPath = "./wsm.db"
	}
	if c.AllowedOrigin == "" {
		c.AllowedOrigin = "*"
	}
	if c.ScoreManpowerWeight == 0 {
		c.ScoreManpowerWeight = 2.0
	}
	if c.ScoreVisitWeight == 0 {
		c.ScoreVisitWeight = 1.5
	}
	if c.ScoreRecoveryBonus == 0 {
		c.ScoreRecoveryBonus = 10
	}
	// Environment wins over the file so deployments can override without
	// touching wsm_config.json.
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("WSM_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		c.AllowedOrigin = v
	}
	return c
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = defaults(Config{})
			return cfg, nil
		}
		// An unreadable file still leaves the server on working defaults.
		cfg = defaults(Config{})
		return cfg, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		// A corrupt file must not leave the zero Config behind: DBPath ""
		// would open an anonymous throwaway sqlite database.
		cfg = defaults(Config{})
		return cfg, err
	}
	cfg = defaults(tempCfg)

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	newCfg = defaults(newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
