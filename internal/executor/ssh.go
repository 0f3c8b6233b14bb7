package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/ssh"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultReadTimeout    = 30 * time.Second

	readChunkSize = 32 * 1024
)

// SSHDialer opens interactive CLI sessions over SSH with password or
// keyboard-interactive auth
type SSHDialer struct {
	// Timeout bounds the TCP connect and the SSH handshake
	Timeout time.Duration
	// ReadTimeout bounds how long the device may stay silent before its prompt returns
	ReadTimeout time.Duration
	// Port overrides the platform's port when non-zero
	Port   int
	logger zerolog.Logger
}

// NewSSHDialer creates an SSH dialer with the default timeouts
func NewSSHDialer(logger zerolog.Logger) *SSHDialer {
	return &SSHDialer{
		Timeout:     defaultConnectTimeout,
		ReadTimeout: defaultReadTimeout,
		logger:      logger,
	}
}

// Dial connects, authenticates and opens one shell on a pseudo-terminal.
// The returned session owns the SSH client; every command of a run goes
// through the same shell.
func (d *SSHDialer) Dial(ctx context.Context, target Target) (Session, error) {
	platform, err := LookupPlatform(target.DeviceType)
	if err != nil {
		return nil, err
	}

	port := platform.Port
	if d.Port != 0 {
		port = d.Port
	}
	addr := net.JoinHostPort(target.Host, strconv.Itoa(port))

	config := &ssh.ClientConfig{
		User: target.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(target.Password),
			ssh.KeyboardInteractive(answerWith(target.Password)),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         d.Timeout,
	}

	dialer := &net.Dialer{Timeout: d.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial: %w", err)
	}

	if d.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(d.Timeout))
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to establish SSH connection: %w", err)
	}

	// Handshake done; command output may take longer than the connect timeout
	_ = conn.SetDeadline(time.Time{})

	client := ssh.NewClient(sshConn, chans, reqs)

	readTimeout := d.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}

	session, err := openShell(ctx, client, platform, readTimeout)
	if err != nil {
		client.Close()
		return nil, err
	}

	d.logger.Debug().
		Str("addr", addr).
		Str("user", target.Username).
		Str("platform", platform.Name).
		Str("prompt", session.prompt).
		Msg("ssh shell ready")

	return session, nil
}

// answerWith answers every keyboard-interactive question with the password
func answerWith(password string) ssh.KeyboardInteractiveChallenge {
	return func(user, instruction string, questions []string, echos []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for i := range answers {
			answers[i] = password
		}
		return answers, nil
	}
}

// shellSession drives one interactive shell. Output is pumped into chunks by
// a background reader so waits can honor the read timeout and ctx.
type shellSession struct {
	client      *ssh.Client
	session     *ssh.Session
	stdin       io.Writer
	platform    Platform
	readTimeout time.Duration

	chunks  chan []byte
	done    chan struct{}
	readErr error

	// prompt is the device prompt seen after login; base is its name part
	prompt string
	base   string
}

func openShell(ctx context.Context, client *ssh.Client, platform Platform, readTimeout time.Duration) (*shellSession, error) {
	session, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := session.RequestPty("vt100", 0, 511, modes); err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to request pty: %w", err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to open stdin: %w", err)
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to open stdout: %w", err)
	}

	if err := session.Shell(); err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to start shell: %w", err)
	}

	s := &shellSession{
		client:      client,
		session:     session,
		stdin:       stdin,
		platform:    platform,
		readTimeout: readTimeout,
		chunks:      make(chan []byte),
		done:        make(chan struct{}),
	}
	go s.pump(stdout)

	if err := s.awaitLoginPrompt(ctx); err != nil {
		s.Close()
		return nil, err
	}

	for _, command := range platform.DisablePaging {
		if _, err := s.SendCommand(ctx, command); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to disable paging: %w", err)
		}
	}

	return s, nil
}

func (s *shellSession) pump(r io.Reader) {
	defer close(s.chunks)

	buf := make([]byte, readChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case s.chunks <- chunk:
			case <-s.done:
				return
			}
		}
		if err != nil {
			s.readErr = err
			return
		}
	}
}

func (s *shellSession) awaitLoginPrompt(ctx context.Context) error {
	text, err := s.readUntil(ctx, func(last string) bool {
		return hasAnySuffix(last, s.platform.PromptSuffixes)
	})
	if err != nil {
		return fmt.Errorf("failed to read login prompt: %w", err)
	}

	s.prompt = lastLine(text)
	s.base = promptBase(s.prompt, s.platform.PromptSuffixes)
	return nil
}

// SendCommand writes one command to the shell and returns what the device
// printed before its prompt came back, without the echoed command line.
// Mode changes such as "configure terminal" are accepted as long as the new
// prompt keeps the device name.
func (s *shellSession) SendCommand(ctx context.Context, command string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := io.WriteString(s.stdin, command+"\n"); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}

	text, err := s.readUntil(ctx, s.isPrompt)
	if err != nil {
		return "", err
	}

	return commandOutput(text, command), nil
}

func (s *shellSession) isPrompt(line string) bool {
	return hasAnySuffix(line, s.platform.PromptSuffixes) &&
		strings.HasPrefix(strings.TrimLeft(line, "<["), s.base)
}

// readUntil collects output until the last, unterminated line satisfies match
func (s *shellSession) readUntil(ctx context.Context, match func(last string) bool) (string, error) {
	var raw strings.Builder

	timer := time.NewTimer(s.readTimeout)
	defer timer.Stop()

	for {
		select {
		case chunk, ok := <-s.chunks:
			if !ok {
				if s.readErr != nil && !errors.Is(s.readErr, io.EOF) {
					return "", fmt.Errorf("connection closed: %w", s.readErr)
				}
				return "", errors.New("connection closed before the prompt returned")
			}
			raw.Write(chunk)

			text := normalizeNewlines(raw.String())
			if match(lastLine(text)) {
				return text, nil
			}
			timer.Reset(s.readTimeout)
		case <-timer.C:
			return "", fmt.Errorf("timed out after %s waiting for the device prompt", s.readTimeout)
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func (s *shellSession) Close() error {
	select {
	case <-s.done:
		return nil
	default:
		close(s.done)
	}

	_ = s.session.Close()
	return s.client.Close()
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "")
}

// lastLine returns the text after the final newline with trailing blanks removed
func lastLine(text string) string {
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	return strings.TrimRight(text, " \t")
}

func hasAnySuffix(line string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(line, suffix) {
			return true
		}
	}
	return false
}

// promptBase strips the mode decoration from a prompt: "<r1>" and "r1(config)#" both give "r1"
func promptBase(prompt string, suffixes []string) string {
	base := strings.TrimLeft(prompt, "<[")
	for _, suffix := range suffixes {
		base = strings.TrimSuffix(base, suffix)
	}
	if i := strings.IndexByte(base, '('); i > 0 {
		base = base[:i]
	}
	return base
}

// commandOutput drops the trailing prompt and a leading command echo
func commandOutput(text, command string) string {
	lines := strings.Split(text, "\n")
	lines = lines[:len(lines)-1]

	if len(lines) > 0 && strings.HasSuffix(strings.TrimSpace(lines[0]), command) {
		lines = lines[1:]
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
