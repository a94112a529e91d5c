package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/op/go-logging"
)

func TestSetLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetLevel(Notice)

	logger := New("test")

	tests := []struct {
		name    string
		level   Level
		log     func(string)
		visible bool
	}{
		{"info hidden at notice", Notice, func(m string) { logger.Info(m) }, false},
		{"notice shown at notice", Notice, func(m string) { logger.Notice(m) }, true},
		{"debug shown at debug", Debug, func(m string) { logger.Debug(m) }, true},
		{"warning hidden at error", Error, func(m string) { logger.Warning(m) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			SetLevel(tt.level)
			tt.log("marker-" + tt.name)
			if got := strings.Contains(buf.String(), "marker-"+tt.name); got != tt.visible {
				t.Errorf("Message visible = %v, want %v (output %q)", got, tt.visible, buf.String())
			}
		})
	}
}

func TestVerbosity(t *testing.T) {
	tests := []struct {
		count int
		want  Level
	}{
		{0, Notice},
		{1, Info},
		{2, Debug},
		{5, Debug},
	}
	for _, tt := range tests {
		if got := Verbosity(tt.count); got != tt.want {
			t.Errorf("Verbosity(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestLevel_MatchesBackend(t *testing.T) {
	tests := []struct {
		level Level
		want  logging.Level
	}{
		{Debug, logging.DEBUG},
		{Info, logging.INFO},
		{Notice, logging.NOTICE},
		{Warning, logging.WARNING},
		{Error, logging.ERROR},
	}
	for _, tt := range tests {
		if got := logging.Level(tt.level); got != tt.want {
			t.Errorf("logging.Level(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
