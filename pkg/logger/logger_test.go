package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/LionsAd/commerce/config"
)

func TestFieldsToZapFields(t *testing.T) {
	c := qt.New(t)

	fields := fieldsToZapFields("sku", "SKU-1", errors.New("boom"), 42, "dangling")

	c.Assert(fields, qt.HasLen, 3)
	c.Assert(fields[0].Key, qt.Equals, "sku")
	c.Assert(fields[1].Key, qt.Equals, "error")
	c.Assert(fields[2].Key, qt.Equals, "field")
}

func TestWith(t *testing.T) {
	c := qt.New(t)

	core, logs := observer.New(zapcore.InfoLevel)
	base := &Logger{Logger: zap.New(core)}
	child := base.With("entity_type", "commerce_product_variation")

	child.Info("已创建", "sku", "SKU-1")
	base.Info("无字段")

	entries := logs.AllUntimed()
	c.Assert(entries, qt.HasLen, 2)
	c.Assert(entries[0].ContextMap(), qt.DeepEquals, map[string]interface{}{
		"entity_type": "commerce_product_variation",
		"sku":         "SKU-1",
	})
	c.Assert(entries[1].ContextMap(), qt.HasLen, 0)
}

func TestParseLevel(t *testing.T) {
	c := qt.New(t)

	c.Assert(parseLevel("debug"), qt.Equals, zapcore.DebugLevel)
	c.Assert(parseLevel("warn"), qt.Equals, zapcore.WarnLevel)
	c.Assert(parseLevel("error"), qt.Equals, zapcore.ErrorLevel)
	c.Assert(parseLevel(""), qt.Equals, zapcore.InfoLevel)
	c.Assert(parseLevel("verbose"), qt.Equals, zapcore.InfoLevel)
}

func TestNewLoggerWithConfig_WritesDailyFile(t *testing.T) {
	c := qt.New(t)

	dir := t.TempDir()
	l := NewLoggerWithConfig("info", config.LogFileConfig{
		Enabled: true,
		Path:    filepath.Join(dir, "app.log"),
		MaxSize: 1,
	})
	l.Info("商品变体已创建", "variation_id", 7)
	c.Assert(l.Close(), qt.IsNil)

	data, err := os.ReadFile(dailyFileName(dir, time.Now()))
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Contains, `"variation_id":7`)
}
