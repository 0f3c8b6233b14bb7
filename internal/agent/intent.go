package agent

import "strings"

const (
	commandsPrefix = "Commands:"
	ipPrefix       = "IP:"
	hostnamePrefix = "Hostname:"
)

// fillerWords are removed wherever they appear inside a command, not only at the start
var fillerWords = []string{"run ", "execute "}

// Intent is what the operator asked for: commands in execution order and
// the device they target (IP or hostname, empty when the reply named none)
type Intent struct {
	Commands   []string
	Identifier string
}

// HasIdentifier reports whether the reply named a device
func (i Intent) HasIdentifier() bool {
	return i.Identifier != ""
}

// ParseReply converts the model's free text into an Intent.
//
// Lines are matched against the literal prefixes "Commands:", "IP:" and
// "Hostname:" at column zero; the first matching prefix wins for a line and
// later lines overwrite earlier ones. Unrecognized lines are ignored.
func ParseReply(reply string) Intent {
	var raw []string
	var intent Intent

	for _, line := range splitLines(reply) {
		switch {
		case strings.HasPrefix(line, commandsPrefix):
			pieces := strings.Split(strings.TrimPrefix(line, commandsPrefix), ",")
			raw = make([]string, 0, len(pieces))
			for _, p := range pieces {
				raw = append(raw, strings.TrimSpace(p))
			}
		case strings.HasPrefix(line, ipPrefix):
			intent.Identifier = strings.TrimSpace(strings.TrimPrefix(line, ipPrefix))
		case strings.HasPrefix(line, hostnamePrefix):
			intent.Identifier = strings.TrimSpace(strings.TrimPrefix(line, hostnamePrefix))
		}
	}

	intent.Commands = CleanCommands(raw)
	return intent
}

// CleanCommands strips filler words from each command and drops empty results.
// The returned slice is never nil.
func CleanCommands(commands []string) []string {
	cleaned := make([]string, 0, len(commands))
	for _, cmd := range commands {
		for _, filler := range fillerWords {
			cmd = strings.ReplaceAll(cmd, filler, "")
		}
		cmd = strings.TrimSpace(cmd)
		if cmd == "" {
			continue
		}
		cleaned = append(cleaned, cmd)
	}
	return cleaned
}

// splitLines splits on \n, \r\n and lone \r
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
