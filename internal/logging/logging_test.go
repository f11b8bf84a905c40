package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSetupDiscardsWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Debug("should not appear", "key", "value")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSetupTextOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	Debug("connection acquired", "account", "myorg-myacct")

	out := buf.String()
	if !strings.Contains(out, "connection acquired") {
		t.Errorf("missing message in output: %q", out)
	}
	if !strings.Contains(out, "account=myorg-myacct") {
		t.Errorf("missing attribute in output: %q", out)
	}
}

func TestUserOutputRouting(t *testing.T) {
	var out, errOut bytes.Buffer
	SetUserOutput(&out, &errOut)
	defer ResetUserOutput()

	UserInfo("deploying %s", "dashboard")
	UserSuccess("service %s ready", "DASHBOARD_SVC")
	UserWarning("retrying query")
	UserError("push failed")

	stdout := out.String()
	stderr := errOut.String()

	if !strings.Contains(stdout, "ℹ deploying dashboard") {
		t.Errorf("stdout missing info line: %q", stdout)
	}
	if !strings.Contains(stdout, "✓ service DASHBOARD_SVC ready") {
		t.Errorf("stdout missing success line: %q", stdout)
	}
	if !strings.Contains(stderr, "⚠ retrying query") {
		t.Errorf("stderr missing warning line: %q", stderr)
	}
	if !strings.Contains(stderr, "✗ push failed") {
		t.Errorf("stderr missing error line: %q", stderr)
	}
	if strings.Contains(stdout, "⚠") || strings.Contains(stdout, "✗") {
		t.Error("warnings and errors must not go to stdout")
	}
}

func TestSetupJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, true, &buf)

	Warn("query retry", "attempt", 1)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "query retry" {
		t.Errorf("msg = %v, want %q", entry["msg"], "query retry")
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entry["level"])
	}
}
