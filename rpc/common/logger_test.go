package common

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logLine = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{2} \d{2}:\d{2}:\d{2} : (.*)$`)

func TestNewLogFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test", &buf)
	l.sink.now = func() time.Time { return time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC) }

	l.NewLog("Client is connected")

	assert.Equal(t, "07.03.24 09:05:03 : Client is connected\n", buf.String())
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test", &buf)

	l.Debugf("hidden %d", 1)
	l.Infof("info %d", 2)
	l.Warningf("warn %d", 3)
	l.Errorf("error %d", 4)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	var messages []string
	for _, line := range lines {
		m := logLine.FindStringSubmatch(line)
		require.NotNil(t, m, "line %q has the wrong format", line)
		messages = append(messages, m[1])
	}
	assert.Equal(t, []string{"info 2", "WARN warn 3", "ERROR error 4"}, messages)

	buf.Reset()
	l.SetLevel(logger.DEBUG)
	l.Debugf("shown")
	assert.Contains(t, buf.String(), " : DEBUG shown")
}

func TestConcurrentLinesDoNotTear(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test", &buf)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.NewLog("a fairly long message that would tear if writes were interleaved")
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 800)
	for _, line := range lines {
		assert.Regexp(t, logLine, line)
	}
}

func TestParseLogLevel(t *testing.T) {
	for in, expected := range map[string]logger.LogLevel{
		"debug": logger.DEBUG,
		"INFO":  logger.INFO,
		"warn":  logger.WARNING,
		"error": logger.ERROR,
	} {
		level, err := ParseLogLevel(in)
		require.NoError(t, err)
		assert.Equal(t, expected, level)
	}

	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}
