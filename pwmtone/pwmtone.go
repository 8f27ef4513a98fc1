// Package pwmtone drives a piezo or small speaker from a Linux kernel
// PWM channel through the sysfs interface. The kernel timer produces
// the waveform; this package only retunes period and duty cycle, so it
// works from any process that can write the pwmchip attributes.
package pwmtone

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

const defaultPWMRoot = "/sys/class/pwm"

// Device is a ToneOutput backed by one sysfs PWM channel. Attribute
// write errors are logged and dropped; playback must not stall on a
// flaky sysfs write.
type Device struct {
	mu       sync.Mutex
	dir      string
	log      *slog.Logger
	periodNS int64
	duty     uint16
	enabled  bool
}

// Open exports the channel if needed and prepares it silent. The usual
// buzzer wiring is chip 0, channel 0.
func Open(chip, channel int) (*Device, error) {
	return open(defaultPWMRoot, chip, channel, slog.Default())
}

func open(root string, chip, channel int, log *slog.Logger) (*Device, error) {
	chipDir := filepath.Join(root, fmt.Sprintf("pwmchip%d", chip))
	dir := filepath.Join(chipDir, fmt.Sprintf("pwm%d", channel))

	if _, err := os.Stat(dir); err != nil {
		if err := writeFile(filepath.Join(chipDir, "export"), strconv.Itoa(channel)); err != nil {
			return nil, fmt.Errorf("export pwm%d: %w", channel, err)
		}
	}

	d := &Device{dir: dir, log: log}
	if err := d.writeAttr("duty_cycle", "0"); err != nil {
		return nil, err
	}
	if err := d.writeAttr("polarity", "normal"); err != nil {
		return nil, err
	}
	return d, nil
}

// SetFrequency retunes the channel. The duty cycle is dropped to zero
// before the period changes because the kernel rejects any period
// shorter than the current duty cycle.
func (d *Device) SetFrequency(hz int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if hz <= 0 {
		return
	}
	period := int64(1_000_000_000) / int64(hz)
	if period < 1 || period == d.periodNS {
		return
	}
	if err := d.writeAttr("duty_cycle", "0"); err != nil {
		d.log.Error("pwmtone: drop duty before retune", "err", err)
		return
	}
	if err := d.writeAttr("period", strconv.FormatInt(period, 10)); err != nil {
		d.log.Error("pwmtone: set period", "hz", hz, "err", err)
		return
	}
	d.periodNS = period
	if d.duty != 0 {
		d.applyDuty()
	}
}

// SetDuty scales the pulse width against the current period. Zero is
// silence; the channel is enabled on the first audible level.
func (d *Device) SetDuty(level uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.duty = level
	d.applyDuty()
}

func (d *Device) applyDuty() {
	ns := d.periodNS * int64(d.duty) / (1 << 16)
	if err := d.writeAttr("duty_cycle", strconv.FormatInt(ns, 10)); err != nil {
		d.log.Error("pwmtone: set duty_cycle", "err", err)
		return
	}
	// The kernel rejects enable while the period is still zero, so the
	// channel comes on with the first audible duty after a retune.
	if d.duty != 0 && !d.enabled && d.periodNS > 0 {
		if err := d.writeAttr("enable", "1"); err != nil {
			d.log.Error("pwmtone: enable channel", "err", err)
			return
		}
		d.enabled = true
	}
}

// Close silences and disables the channel. The channel stays exported.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.duty = 0
	err := d.writeAttr("duty_cycle", "0")
	if derr := d.writeAttr("enable", "0"); err == nil {
		err = derr
	}
	d.enabled = false
	return err
}

func (d *Device) writeAttr(name, value string) error {
	return writeFile(filepath.Join(d.dir, name), value)
}

func writeFile(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := f.WriteString(value)
	if err != nil {
		return err
	}
	if n < len(value) {
		return io.ErrShortWrite
	}
	return nil
}
