package pwmtone

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeChannel lays out an already-exported pwmchip0/pwm0 tree.
func fakeChannel(t *testing.T) (root, dir string) {
	t.Helper()
	root = t.TempDir()
	chipDir := filepath.Join(root, "pwmchip0")
	dir = filepath.Join(chipDir, "pwm0")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir channel: %v", err)
	}
	for _, name := range []string{"period", "duty_cycle", "polarity", "enable"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("0"), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	if err := os.WriteFile(filepath.Join(chipDir, "export"), nil, 0o644); err != nil {
		t.Fatalf("seed export: %v", err)
	}
	return root, dir
}

func attr(t *testing.T, dir, name string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(raw)
}

func TestOpenPreparesChannelSilent(t *testing.T) {
	root, dir := fakeChannel(t)
	_, err := open(root, 0, 0, discardLogger())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if got := attr(t, dir, "duty_cycle"); got != "0" {
		t.Fatalf("duty_cycle = %q, want 0", got)
	}
	if got := attr(t, dir, "polarity"); got != "normal" {
		t.Fatalf("polarity = %q, want normal", got)
	}
	if got := attr(t, dir, "enable"); got != "0" {
		t.Fatalf("enable = %q, want 0", got)
	}
}

func TestToneWritesPeriodAndDuty(t *testing.T) {
	root, dir := fakeChannel(t)
	d, err := open(root, 0, 0, discardLogger())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	d.SetFrequency(440)
	if got := attr(t, dir, "period"); got != "2272727" {
		t.Fatalf("period = %q, want 2272727", got)
	}
	if got := attr(t, dir, "duty_cycle"); got != "0" {
		t.Fatalf("duty_cycle before audible level = %q, want 0", got)
	}
	if got := attr(t, dir, "enable"); got != "0" {
		t.Fatalf("enable before audible level = %q, want 0", got)
	}

	d.SetDuty(1 << 15)
	if got := attr(t, dir, "duty_cycle"); got != "1136363" {
		t.Fatalf("duty_cycle = %q, want 1136363", got)
	}
	if got := attr(t, dir, "enable"); got != "1" {
		t.Fatalf("enable = %q, want 1", got)
	}
}

func TestRetuneKeepsDutyScaled(t *testing.T) {
	root, dir := fakeChannel(t)
	d, err := open(root, 0, 0, discardLogger())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	d.SetFrequency(440)
	d.SetDuty(1 << 15)
	d.SetFrequency(880)

	if got := attr(t, dir, "period"); got != "1136363" {
		t.Fatalf("period = %q, want 1136363", got)
	}
	if got := attr(t, dir, "duty_cycle"); got != "568181" {
		t.Fatalf("duty_cycle = %q, want 568181", got)
	}
}

func TestDutyBeforeFrequencyStaysOff(t *testing.T) {
	root, dir := fakeChannel(t)
	d, err := open(root, 0, 0, discardLogger())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	d.SetDuty(1 << 15)
	if got := attr(t, dir, "duty_cycle"); got != "0" {
		t.Fatalf("duty_cycle = %q, want 0", got)
	}
	if got := attr(t, dir, "enable"); got != "0" {
		t.Fatalf("enable = %q, want 0", got)
	}
}

func TestCloseSilencesAndDisables(t *testing.T) {
	root, dir := fakeChannel(t)
	d, err := open(root, 0, 0, discardLogger())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	d.SetFrequency(440)
	d.SetDuty(1 << 15)
	if err := d.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if got := attr(t, dir, "duty_cycle"); got != "0" {
		t.Fatalf("duty_cycle = %q, want 0", got)
	}
	if got := attr(t, dir, "enable"); got != "0" {
		t.Fatalf("enable = %q, want 0", got)
	}
}

func TestOpenExportsMissingChannel(t *testing.T) {
	root := t.TempDir()
	chipDir := filepath.Join(root, "pwmchip0")
	if err := os.MkdirAll(chipDir, 0o755); err != nil {
		t.Fatalf("mkdir chip: %v", err)
	}
	if err := os.WriteFile(filepath.Join(chipDir, "export"), nil, 0o644); err != nil {
		t.Fatalf("seed export: %v", err)
	}

	// With no kernel behind the tree the channel directory never
	// appears, so open must fail after requesting the export.
	if _, err := open(root, 0, 0, discardLogger()); err == nil {
		t.Fatal("expected open to fail without a channel directory")
	}
	raw, err := os.ReadFile(filepath.Join(chipDir, "export"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(raw) != "0" {
		t.Fatalf("export received %q, want 0", raw)
	}
}
