package config

import (
	"os"
	"strconv"
	"time"
)

// ApplyEnv overrides settings from DUELBOT_* environment variables.
// Unset or unparsable variables leave the current value alone.
func (c *Config) ApplyEnv() {
	if val := getEnvInt("DUELBOT_BOARD_CAP"); val > 0 {
		c.Planner.BoardCap = val
	}
	if val := os.Getenv("DUELBOT_LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("DUELBOT_LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
	if val, ok := getEnvBool("DUELBOT_TRACE"); ok {
		c.Log.Trace = val
	}
	if val := os.Getenv("DUELBOT_TURN_BUDGET"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.TurnBudget = d
		}
	}
	if val := os.Getenv("DUELBOT_SERVE_ADDR"); val != "" {
		c.Serve.Addr = val
	}
	if val := os.Getenv("DUELBOT_WEB_ADDR"); val != "" {
		c.Web.Addr = val
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, false
	}
	return b, true
}
