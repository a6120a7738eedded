package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestTimeLogsOperation(t *testing.T) {
	buf := captureLog(t)

	ctx := WithRequestID(context.Background(), "abc123")
	func() (err error) {
		defer Time(ctx, "unit.op")(&err)
		return nil
	}()

	out := buf.String()
	if !strings.Contains(out, "req_id=abc123") || !strings.Contains(out, "op=unit.op") {
		t.Fatalf("unexpected log line: %q", out)
	}
	if strings.Contains(out, "err=") {
		t.Fatalf("success should not log an error: %q", out)
	}
}

func TestTimeLogsError(t *testing.T) {
	buf := captureLog(t)

	func() (err error) {
		defer Time(context.Background(), "unit.fail")(&err)
		return errors.New("boom")
	}()

	if out := buf.String(); !strings.Contains(out, "err=boom") {
		t.Fatalf("expected error in log line: %q", out)
	}
}

func TestRequestIDMissing(t *testing.T) {
	if id := RequestID(context.Background()); id != "" {
		t.Fatalf("RequestID = %q, want empty", id)
	}
}
