package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestFromContext_ReturnsNoOpWhenMissing(t *testing.T) {
	collector := FromContext(context.Background())

	_, ok := collector.(noOpCollector)
	assert.True(t, ok, "expected the no-op collector, got %T", collector)

	// And the no-op stays silent.
	timer := collector.Start("op")
	timer.Child("child").End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, 0, buf.Len())
}

func TestWithCollector_RoundTrips(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	retrieved, ok := FromContext(ctx).(*TimingCollector)
	assert.True(t, ok)
	assert.Equal(t, collector, retrieved)
}

func TestTimingCollector_Report(t *testing.T) {
	collector := NewTimingCollector()

	timer := collector.Start("Check file")
	time.Sleep(time.Millisecond)

	child := timer.Child("Parse")
	time.Sleep(time.Millisecond)
	child.End()

	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	report := buf.String()
	assert.Contains(t, report, "Check file")
	assert.Contains(t, report, "Parse")
	assert.Contains(t, report, "└─")
	assert.Contains(t, report, "ms")
}

func TestTimingCollector_NestedIndentation(t *testing.T) {
	collector := NewTimingCollector()

	t1 := collector.Start("Level 1")
	t2 := t1.Child("Level 2")
	t3 := t2.Child("Level 3")
	t3.End()
	t2.End()
	t1.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "Level 3") {
			assert.True(t, strings.HasPrefix(line, "   "), "deep child should be indented: %q", line)
		}
	}
}

func TestTimingCollector_EmptyReport(t *testing.T) {
	collector := NewTimingCollector()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, 0, buf.Len())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{time.Millisecond, "1ms"},
		{999 * time.Millisecond, "999ms"},
		{time.Second, "1.00s"},
		{1500 * time.Millisecond, "1.50s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.duration))
	}
}
