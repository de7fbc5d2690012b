package config_test

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/LionsAd/commerce/config"
)

func TestFromEnv_Defaults(t *testing.T) {
	c := qt.New(t)

	for _, key := range []string{"API_PORT", "DB_PORT", "REDIS_PORT", "DEFAULT_LANGCODE", "CACHE_TTL_SECONDS", "AUTO_MIGRATE", "LOG_FILE_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := config.FromEnv()

	c.Assert(cfg.APIPort, qt.Equals, 8080)
	c.Assert(cfg.Database.Port, qt.Equals, 3306)
	c.Assert(cfg.Redis.Port, qt.Equals, 6379)
	c.Assert(cfg.DefaultLangcode, qt.Equals, "en")
	c.Assert(cfg.CacheTTL, qt.Equals, 5*time.Minute)
	c.Assert(cfg.AutoMigrate, qt.IsTrue)
	c.Assert(cfg.LogFile.Enabled, qt.IsFalse)
}

func TestFromEnv_Overrides(t *testing.T) {
	c := qt.New(t)

	t.Setenv("API_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DEFAULT_LANGCODE", "de")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("LOG_FILE_ENABLED", "true")
	t.Setenv("LOG_FILE_PATH", "/var/log/commerce/app.log")

	cfg := config.FromEnv()

	c.Assert(cfg.APIPort, qt.Equals, 9090)
	c.Assert(cfg.Database.Host, qt.Equals, "db.internal")
	c.Assert(cfg.Database.Port, qt.Equals, 3307)
	c.Assert(cfg.DefaultLangcode, qt.Equals, "de")
	c.Assert(cfg.CacheTTL, qt.Equals, time.Minute)
	c.Assert(cfg.AutoMigrate, qt.IsFalse)
	c.Assert(cfg.LogFile.Enabled, qt.IsTrue)
	c.Assert(cfg.LogFile.Path, qt.Equals, "/var/log/commerce/app.log")
}

func TestFromEnv_InvalidNumberFallsBack(t *testing.T) {
	c := qt.New(t)

	t.Setenv("API_PORT", "not-a-port")

	c.Assert(config.FromEnv().APIPort, qt.Equals, 8080)
}
