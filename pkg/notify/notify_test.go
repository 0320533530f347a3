package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLogNotifierLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	n := NewLogNotifier(logger)
	n.Notify("登録しました", Success)
	n.Notify("登録に失敗しました", Error)
	n.Notify("careful", Warning)

	out := buf.String()
	for _, want := range []string{
		"level=info",
		"level=error",
		"level=warning",
		"severity=success",
		"severity=error",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	if _, ok := r.Last(); ok {
		t.Fatal("empty recorder reported a notification")
	}
	r.Notify("a", Info)
	r.Notify("b", Error)

	all := r.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(all))
	}
	last, ok := r.Last()
	if !ok || last.Message != "b" || last.Severity != Error {
		t.Fatalf("Last() = %+v, %v", last, ok)
	}
}
