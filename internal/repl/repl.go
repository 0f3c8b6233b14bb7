package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iishyfishyy/netask/internal/agent"
	"github.com/iishyfishyy/netask/internal/executor"
	"github.com/iishyfishyy/netask/internal/history"
	"github.com/iishyfishyy/netask/internal/inventory"
	"github.com/iishyfishyy/netask/internal/ui"
)

const (
	// ExitKeyword ends the loop; matched case-insensitively after trimming
	ExitKeyword = "exit"

	PromptText = "Enter your query (e.g., 'Run show version on 172.16.x.x') or type 'exit' to quit: "
	Title      = "LLM-Powered Network Automation"
)

// IntentExtractor turns a request into commands and a device identifier
type IntentExtractor interface {
	ExtractIntent(ctx context.Context, request string) (agent.Intent, error)
}

// DeviceFinder resolves an identifier to an inventory record
type DeviceFinder interface {
	Find(identifier string) (inventory.Device, bool)
}

// CommandRunner executes commands on one device
type CommandRunner interface {
	Run(ctx context.Context, device inventory.Device, commands []string) executor.Result
}

// Recorder keeps a log of handled requests
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Reply is everything known about one handled request
type Reply struct {
	Request string
	Intent  agent.Intent
	Device  inventory.Device
	Result  executor.Result
	// Err is set when the request stopped before reaching the device
	Err     error
	Outcome history.Outcome
}

// Text is what the operator sees as the request's result
func (r Reply) Text() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Result.String()
}

// Shell is the interactive request loop
type Shell struct {
	extractor  IntentExtractor
	finder     DeviceFinder
	runner     CommandRunner
	recorder   Recorder
	printer    *ui.Printer
	showPrompt bool
	logger     zerolog.Logger
}

// Option configures a Shell
type Option func(*Shell)

// WithRecorder logs every handled request to r
func WithRecorder(r Recorder) Option {
	return func(s *Shell) {
		s.recorder = r
	}
}

// WithPrompt controls whether the input prompt is printed before each read
func WithPrompt(show bool) Option {
	return func(s *Shell) {
		s.showPrompt = show
	}
}

// WithPrinter sends operator-facing output to p instead of stdout
func WithPrinter(p *ui.Printer) Option {
	return func(s *Shell) {
		s.printer = p
	}
}

// New creates a shell over the three request stages
func New(extractor IntentExtractor, finder DeviceFinder, runner CommandRunner, logger zerolog.Logger, opts ...Option) *Shell {
	s := &Shell{
		extractor:  extractor,
		finder:     finder,
		runner:     runner,
		printer:    ui.Stdout,
		showPrompt: true,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads requests from in until the exit keyword or end of input.
// Per-request failures are printed and never end the loop; lines have no
// length limit.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	s.printer.Banner(Title)

	reader := bufio.NewReader(in)
	for {
		if s.showPrompt {
			s.printer.Prompt(PromptText)
		}

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if s.dispatch(ctx, line) {
			return nil
		}
		if err != nil {
			s.logger.Debug().Msg("end of input")
			return nil
		}
	}
}

// dispatch handles one input line and reports whether the loop should stop
func (s *Shell) dispatch(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.EqualFold(line, ExitKeyword) {
		s.printer.Println("Exiting... Goodbye!")
		return true
	}

	s.Respond(ctx, line)
	return false
}

// Respond handles one request and prints its outcome
func (s *Shell) Respond(ctx context.Context, request string) Reply {
	s.printer.Println("Parsing user query...")
	reply := s.Handle(ctx, request)
	s.Print(reply)
	return reply
}

// Handle runs one request through extraction, lookup and execution without printing
func (s *Shell) Handle(ctx context.Context, request string) (reply Reply) {
	reply.Request = request

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Str("request", request).Msg("request panicked")
			reply.Err = fmt.Errorf("%v", r)
			reply.Outcome = history.OutcomeFailed
		}
		s.record(ctx, reply)
	}()

	intent, err := s.extractor.ExtractIntent(ctx, request)
	if err != nil {
		reply.Err = err
		reply.Outcome = history.OutcomeModelError
		return reply
	}
	reply.Intent = intent

	if len(intent.Commands) == 0 {
		reply.Err = ErrEmptyIntent
		reply.Outcome = history.OutcomeNoCommands
		return reply
	}

	var (
		device inventory.Device
		ok     bool
	)
	if intent.HasIdentifier() {
		device, ok = s.finder.Find(intent.Identifier)
	}
	if !ok {
		reply.Err = &DeviceNotFoundError{Identifier: intent.Identifier}
		reply.Outcome = history.OutcomeDeviceNotFound
		return reply
	}
	reply.Device = device

	reply.Result = s.runner.Run(ctx, device, intent.Commands)
	if reply.Result.Err != nil {
		reply.Outcome = history.OutcomeFailed
	} else {
		reply.Outcome = history.OutcomeExecuted
	}

	return reply
}

// Print shows a reply the way the loop reports it
func (s *Shell) Print(reply Reply) {
	var notFound *DeviceNotFoundError

	switch {
	case errors.Is(reply.Err, ErrEmptyIntent):
		s.printer.Warning(reply.Err.Error())
	case errors.As(reply.Err, &notFound):
		s.printer.Warning(notFound.Error())
	case reply.Err != nil:
		s.printer.Error(fmt.Sprintf("An error occurred: %v", reply.Err))
	default:
		s.printer.CommandOutput(reply.Result.String())
	}
}

func (s *Shell) record(ctx context.Context, reply Reply) {
	if s.recorder == nil {
		return
	}

	entry := history.NewEntry(reply.Request, reply.Intent.Commands, reply.Intent.Identifier, reply.Outcome)
	entry.DeviceIP = reply.Device.IP
	switch {
	case reply.Err != nil:
		entry.Detail = reply.Err.Error()
	case reply.Result.Err != nil:
		entry.Detail = reply.Result.Err.Error()
	}

	if err := s.recorder.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record history entry")
	}
}
