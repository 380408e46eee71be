package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
		enabled zapcore.Level
	}{
		{"Info", false, zapcore.InfoLevel},
		{"debug", false, zapcore.DebugLevel},
		{"error", false, zapcore.ErrorLevel},
		{"loud", true, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New()
			err := l.Init(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init(%q) error = %v; wantErr %v", tt.level, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !l.Log.Core().Enabled(tt.enabled) {
				t.Errorf("level %v not enabled", tt.enabled)
			}
			if tt.enabled > zapcore.DebugLevel && l.Log.Core().Enabled(tt.enabled-1) {
				t.Errorf("level below %v unexpectedly enabled", tt.enabled)
			}
		})
	}
}
