package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantLevel zerolog.Level
		wantErr   bool
	}{
		{name: "default", config: Config{}, wantLevel: zerolog.InfoLevel},
		{name: "debug wins over level", config: Config{Debug: true, Level: "error"}, wantLevel: zerolog.DebugLevel},
		{name: "json output at warn", config: Config{Level: "warn", Output: "json"}, wantLevel: zerolog.WarnLevel},
		{name: "stdout console", config: Config{Level: "trace", Output: "stdout"}, wantLevel: zerolog.TraceLevel},
		{name: "unknown level", config: Config{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, WithComponent("test").GetLevel())
		})
	}
}

func TestWriterFor(t *testing.T) {
	_, console := writerFor("").(zerolog.ConsoleWriter)
	assert.True(t, console)

	_, console = writerFor("json").(zerolog.ConsoleWriter)
	assert.False(t, console)
}
