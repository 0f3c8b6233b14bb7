package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iishyfishyy/netask/internal/inventory"
)

// Target is the connection descriptor handed to a Dialer. It carries only
// what the transport needs; other inventory fields are never forwarded.
type Target struct {
	DeviceType string
	Host       string
	Username   string
	Password   string
}

// TargetFor builds the connection descriptor for a device
func TargetFor(d inventory.Device) Target {
	return Target{
		DeviceType: d.DeviceType,
		Host:       d.IP,
		Username:   d.Username,
		Password:   d.Password,
	}
}

// Dialer opens remote terminal sessions
type Dialer interface {
	Dial(ctx context.Context, target Target) (Session, error)
}

// Session is an open remote terminal session
type Session interface {
	// SendCommand runs one command and returns its text output
	SendCommand(ctx context.Context, command string) (string, error)
	Close() error
}

// Result is the outcome of one Run: the labeled output of every command, or the error that aborted the run
type Result struct {
	Output string
	Err    error
}

// String returns the output, or "Error: <message>" when the run failed
func (r Result) String() string {
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	return r.Output
}

// Runner executes command lists on devices, one session per call
type Runner struct {
	dialer Dialer
	logger zerolog.Logger
}

// NewRunner creates a runner on top of dialer
func NewRunner(dialer Dialer, logger zerolog.Logger) *Runner {
	return &Runner{dialer: dialer, logger: logger}
}

// Run opens one session to device, executes commands in order and closes the
// session before returning. The first failure aborts the run; output gathered
// before it is discarded.
func (r *Runner) Run(ctx context.Context, device inventory.Device, commands []string) Result {
	output, err := r.execute(ctx, device, commands)
	if err != nil {
		r.logger.Error().Err(err).Str("ip", device.IP).Msg("execution failed")
		return Result{Err: err}
	}
	return Result{Output: output}
}

func (r *Runner) execute(ctx context.Context, device inventory.Device, commands []string) (string, error) {
	r.logger.Info().Str("ip", device.IP).Str("device_type", device.DeviceType).Msgf("Connecting to %s...", device.IP)

	session, err := r.dialer.Dial(ctx, TargetFor(device))
	if err != nil {
		return "", &TransportError{Op: "connect", Host: device.IP, Err: err}
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			r.logger.Debug().Err(cerr).Str("ip", device.IP).Msg("session close")
		}
	}()

	sections := make([]string, 0, len(commands))
	for _, command := range commands {
		r.logger.Info().Str("ip", device.IP).Msgf("Running command: %s", command)

		out, err := session.SendCommand(ctx, command)
		if err != nil {
			return "", &TransportError{Op: "run", Host: device.IP, Command: command, Err: err}
		}
		sections = append(sections, FormatSection(command, device.IP, out))
	}

	return strings.Join(sections, "\n"), nil
}

// FormatSection labels one command's output with the command and device IP
func FormatSection(command, ip, output string) string {
	return fmt.Sprintf("\n=== Output for '%s on %s' ===\n%s", command, ip, output)
}

// TransportError reports a failed session setup or command
type TransportError struct {
	Op      string // "connect" or "run"
	Host    string
	Command string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s %q on %s: %v", e.Op, e.Command, e.Host, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Host, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
