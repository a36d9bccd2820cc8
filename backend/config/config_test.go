package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]interface{}
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			want: Config{
				Addr:            DefaultAddr,
				LogLevel:        "info",
				ShutdownTimeout: DefaultShutdownTimeout,
			},
		},
		{
			name: "overrides",
			values: map[string]interface{}{
				"addr":             "127.0.0.1:8080",
				"log-level":        "debug",
				"shutdown-timeout": "30s",
			},
			want: Config{
				Addr:            "127.0.0.1:8080",
				LogLevel:        "debug",
				ShutdownTimeout: 30 * time.Second,
			},
		},
		{
			name:    "bad log level",
			values:  map[string]interface{}{"log-level": "trace"},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := viper.New()
			for key, value := range test.values {
				v.Set(key, value)
			}

			got, err := Load(v)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("AUTHDEMO_ADDR", ":9999")
	t.Setenv("AUTHDEMO_LOG_LEVEL", "debug")

	v := viper.New()
	BindEnv(v)

	got, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":9999", got.Addr)
	assert.Equal(t, "debug", got.LogLevel)
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"info", "debug"} {
		logger, err := Config{LogLevel: level}.NewLogger()
		require.NoError(t, err)
		assert.Equal(t, level == "debug", logger.Core().Enabled(zapcore.DebugLevel))
	}
}
