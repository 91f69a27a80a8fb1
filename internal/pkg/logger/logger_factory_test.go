//go:build unit
// +build unit

package logger

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/MGTheTrain/crypto-session-service/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLoggerSingleton() {
	loggerInstance = nil
	loggerErr = nil
	loggerOnce = sync.Once{}
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name     string
		settings func(t *testing.T) *config.LoggerSettings
		wantErr  bool
	}{
		{
			name: "console logger",
			settings: func(_ *testing.T) *config.LoggerSettings {
				return &config.LoggerSettings{
					LogLevel: config.LogLevelInfo,
					LogType:  config.LogTypeConsole,
				}
			},
			wantErr: false,
		},
		{
			name: "file logger with rotation",
			settings: func(t *testing.T) *config.LoggerSettings {
				return &config.LoggerSettings{
					LogLevel:   config.LogLevelDebug,
					LogType:    config.LogTypeFile,
					FilePath:   filepath.Join(t.TempDir(), "service.log"),
					MaxSize:    10,
					MaxBackups: 3,
					MaxAge:     28,
				}
			},
			wantErr: false,
		},
		{
			name: "invalid log type",
			settings: func(_ *testing.T) *config.LoggerSettings {
				return &config.LoggerSettings{
					LogLevel: config.LogLevelInfo,
					LogType:  "syslog",
				}
			},
			wantErr: true,
		},
		{
			name: "file logger without file path",
			settings: func(_ *testing.T) *config.LoggerSettings {
				return &config.LoggerSettings{
					LogLevel: config.LogLevelInfo,
					LogType:  config.LogTypeFile,
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetLoggerSingleton()

			err := InitLogger(tt.settings(t))
			if tt.wantErr {
				require.Error(t, err)

				_, err = GetLogger()
				require.Error(t, err)
				return
			}

			require.NoError(t, err)

			log, err := GetLogger()
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestGetLoggerBeforeInit(t *testing.T) {
	resetLoggerSingleton()

	_, err := GetLogger()
	require.Error(t, err)
}

func TestInitLoggerIsIdempotent(t *testing.T) {
	resetLoggerSingleton()

	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	}

	require.NoError(t, InitLogger(settings))
	first, getErr := GetLogger()
	require.NoError(t, getErr)

	// A second init with different settings must not replace the instance.
	require.NoError(t, InitLogger(&config.LoggerSettings{
		LogLevel: config.LogLevelError,
		LogType:  config.LogTypeConsole,
	}))
	second, getErr := GetLogger()
	require.NoError(t, getErr)
	assert.Same(t, first, second)
}
