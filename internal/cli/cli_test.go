package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHelp(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, CommandHelp, parsed.Command)
	require.True(t, parsed.ShowHelp)
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Parsed
	}{
		{name: "read stdin", args: []string{"read"}, want: Parsed{Command: CommandRead}},
		{name: "read file", args: []string{"read", "novel.txt"}, want: Parsed{Command: CommandRead, FilePath: "novel.txt"}},
		{name: "read clipboard", args: []string{"read", "--clipboard"}, want: Parsed{Command: CommandRead, FromClipboard: true}},
		{name: "read speed flag", args: []string{"read", "--speed", "300", "novel.txt"}, want: Parsed{Command: CommandRead, SpeedMS: 300, FilePath: "novel.txt"}},
		{name: "read speed flag first", args: []string{"--speed", "300", "read"}, want: Parsed{Command: CommandRead, SpeedMS: 300}},
		{name: "load file", args: []string{"load", "next.txt"}, want: Parsed{Command: CommandLoad, FilePath: "next.txt"}},
		{name: "speed", args: []string{"speed", "250"}, want: Parsed{Command: CommandSpeed, SpeedMS: 250}},
		{name: "status", args: []string{"status"}, want: Parsed{Command: CommandStatus}},
		{name: "analyze file", args: []string{"analyze", "novel.txt"}, want: Parsed{Command: CommandAnalyze, FilePath: "novel.txt"}},
		{name: "config flag", args: []string{"--config", "/tmp/c.yaml", "status"}, want: Parsed{Command: CommandStatus, ConfigPath: "/tmp/c.yaml"}},
		{name: "version flag", args: []string{"--version"}, want: Parsed{Command: CommandVersion}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := Parse(tc.args)
			require.NoError(t, err)
			require.Equal(t, tc.want, parsed)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown command", args: []string{"rewind"}, wantErr: "unknown command"},
		{name: "unknown flag", args: []string{"--loud"}, wantErr: "unknown flag"},
		{name: "config missing path", args: []string{"--config"}, wantErr: "--config requires a path"},
		{name: "speed missing value", args: []string{"speed"}, wantErr: "speed requires"},
		{name: "speed non-numeric", args: []string{"speed", "fast"}, wantErr: "speed requires"},
		{name: "speed negative", args: []string{"speed", "-200"}, wantErr: "unknown flag"},
		{name: "status with arg", args: []string{"status", "extra"}, wantErr: "unexpected argument"},
		{name: "clipboard on status", args: []string{"status", "--clipboard"}, wantErr: "--clipboard is not valid"},
		{name: "clipboard and file", args: []string{"read", "--clipboard", "novel.txt"}, wantErr: "mutually exclusive"},
		{name: "speed flag missing value", args: []string{"read", "--speed"}, wantErr: "--speed requires"},
		{name: "speed flag non-numeric", args: []string{"read", "--speed", "fast"}, wantErr: "--speed requires"},
		{name: "speed flag zero", args: []string{"read", "--speed", "0"}, wantErr: "--speed requires"},
		{name: "speed flag on status", args: []string{"status", "--speed", "300"}, wantErr: "--speed is not valid"},
		{name: "version with trailing command", args: []string{"--version", "status"}, wantErr: "unexpected argument"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.args)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestHelpTextMentionsCommands(t *testing.T) {
	text := HelpText("yomitori")
	for _, cmd := range []string{"read", "load", "start", "stop", "forward", "back", "speed", "status", "analyze", "stats", "doctor", "version"} {
		require.Contains(t, text, cmd)
	}
}
