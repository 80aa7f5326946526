package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("RM_TEST_STR", "")
	t.Setenv("RM_TEST_INT", "not-a-number")
	t.Setenv("RM_TEST_BOOL", "true")

	assert.Equal(t, "fallback", EnvDefault("RM_TEST_STR", "fallback"))
	assert.Equal(t, 42, EnvIntDefault("RM_TEST_INT", 42))
	assert.True(t, EnvBoolDefault("RM_TEST_BOOL", false))
	assert.False(t, EnvBoolDefault("RM_TEST_MISSING_BOOL", false))
}

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("OPENAI_MODEL_ID", "")

	cfg := Load()
	assert.Equal(t, "sqlite::memory:", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModelID)
	assert.Equal(t, "roadmaps", cfg.ESIndex)
}

func TestMissing(t *testing.T) {
	got := Missing(map[string]string{
		"DATABASE_URL": "",
		"ES_URL":       "http://es:9200",
		"API_KEY":      "  ",
	})
	assert.Equal(t, []string{"API_KEY", "DATABASE_URL"}, got)
	assert.Empty(t, Missing(map[string]string{"A": "x"}))
}
