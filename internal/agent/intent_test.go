package agent

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  Intent
	}{
		{
			name:  "no recognized lines",
			reply: "I could not find any command.\nPlease rephrase.",
			want:  Intent{Commands: []string{}},
		},
		{
			name:  "empty reply",
			reply: "",
			want:  Intent{Commands: []string{}},
		},
		{
			name:  "commands and ip",
			reply: "Commands: show version, show ip int brief\nIP: 172.16.1.1",
			want:  Intent{Commands: []string{"show version", "show ip int brief"}, Identifier: "172.16.1.1"},
		},
		{
			name:  "commands and hostname",
			reply: "Commands: show clock\nHostname:   core-sw1  ",
			want:  Intent{Commands: []string{"show clock"}, Identifier: "core-sw1"},
		},
		{
			name:  "crlf line endings",
			reply: "Commands: show version\r\nIP: 10.0.0.1\r\n",
			want:  Intent{Commands: []string{"show version"}, Identifier: "10.0.0.1"},
		},
		{
			name:  "last commands line wins",
			reply: "Commands: show version\nCommands: show clock, show users\nIP: 10.0.0.1",
			want:  Intent{Commands: []string{"show clock", "show users"}, Identifier: "10.0.0.1"},
		},
		{
			name:  "second ip wins",
			reply: "Commands: show version\nIP: 10.0.0.1\nIP: 10.0.0.2",
			want:  Intent{Commands: []string{"show version"}, Identifier: "10.0.0.2"},
		},
		{
			name:  "hostname after ip wins",
			reply: "Commands: show version\nIP: 10.0.0.1\nHostname: r1",
			want:  Intent{Commands: []string{"show version"}, Identifier: "r1"},
		},
		{
			name:  "ip after hostname wins",
			reply: "Hostname: r1\nIP: 10.0.0.1\nCommands: show version",
			want:  Intent{Commands: []string{"show version"}, Identifier: "10.0.0.1"},
		},
		{
			name:  "empty middle piece dropped",
			reply: "Commands: show version, , show ip int brief",
			want:  Intent{Commands: []string{"show version", "show ip int brief"}},
		},
		{
			name:  "leading and trailing commas",
			reply: "Commands: ,show version,\nIP: 10.0.0.1",
			want:  Intent{Commands: []string{"show version"}, Identifier: "10.0.0.1"},
		},
		{
			name:  "only empty pieces",
			reply: "Commands: , ,\nIP: 10.0.0.1",
			want:  Intent{Commands: []string{}, Identifier: "10.0.0.1"},
		},
		{
			name:  "bare filler word kept because pieces are trimmed first",
			reply: "Commands: run , show clock",
			want:  Intent{Commands: []string{"run", "show clock"}},
		},
		{
			name:  "filler removed anywhere",
			reply: "Commands: please run show version, execute show clock",
			want:  Intent{Commands: []string{"please show version", "show clock"}},
		},
		{
			name:  "indented prefix not recognized",
			reply: "  Commands: show version\n IP: 10.0.0.1",
			want:  Intent{Commands: []string{}},
		},
		{
			name:  "prefix is case sensitive",
			reply: "commands: show version\nip: 10.0.0.1",
			want:  Intent{Commands: []string{}},
		},
		{
			name:  "identifier not validated",
			reply: "Commands: show version\nIP: not-an-ip",
			want:  Intent{Commands: []string{"show version"}, Identifier: "not-an-ip"},
		},
		{
			name:  "surrounding chatter ignored",
			reply: "Sure! Here you go:\nCommands: show version\nIP: 10.0.0.1\nLet me know if you need more.",
			want:  Intent{Commands: []string{"show version"}, Identifier: "10.0.0.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseReply(tt.reply)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseReply(%q) = %#v, want %#v", tt.reply, got, tt.want)
			}
		})
	}
}

func TestParseReplyIsIdempotentOnCleanedCommands(t *testing.T) {
	replies := []string{
		"Commands: run show version, execute show clock , , show ip route\nIP: 10.0.0.1",
		"Commands: show interfaces status, show vlan brief\nHostname: access-1",
		"Commands: display current-configuration",
	}

	for _, reply := range replies {
		first := ParseReply(reply)
		second := ParseReply("Commands: " + strings.Join(first.Commands, ", "))
		if !reflect.DeepEqual(first.Commands, second.Commands) {
			t.Errorf("re-parsing %q changed commands: %q -> %q", reply, first.Commands, second.Commands)
		}
	}
}

func TestCleanCommands(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{in: nil, want: []string{}},
		{in: []string{"", "  ", "\t"}, want: []string{}},
		{in: []string{"run show version"}, want: []string{"show version"}},
		{in: []string{"please run show version"}, want: []string{"please show version"}},
		{in: []string{"show running-config"}, want: []string{"show running-config"}},
		{in: []string{"execute run show clock"}, want: []string{"show clock"}},
	}

	for _, tt := range tests {
		got := CleanCommands(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("CleanCommands(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
