// Package cli parses yomitori commands and flags.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Command string

const (
	CommandRead    Command = "read"
	CommandLoad    Command = "load"
	CommandStart   Command = "start"
	CommandStop    Command = "stop"
	CommandForward Command = "forward"
	CommandBack    Command = "back"
	CommandSpeed   Command = "speed"
	CommandStatus  Command = "status"
	CommandAnalyze Command = "analyze"
	CommandStats   Command = "stats"
	CommandDoctor  Command = "doctor"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandRead:    {},
	CommandLoad:    {},
	CommandStart:   {},
	CommandStop:    {},
	CommandForward: {},
	CommandBack:    {},
	CommandSpeed:   {},
	CommandStatus:  {},
	CommandAnalyze: {},
	CommandStats:   {},
	CommandDoctor:  {},
	CommandVersion: {},
	CommandHelp:    {},
}

// takesFileArg lists commands accepting an optional FILE positional.
var takesFileArg = map[Command]struct{}{
	CommandRead:    {},
	CommandLoad:    {},
	CommandAnalyze: {},
	CommandStats:   {},
}

type Parsed struct {
	Command       Command
	ConfigPath    string
	FilePath      string
	FromClipboard bool
	SpeedMS       int
	ShowHelp      bool
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}
	haveCommand := false
	speedFlag := false

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
			haveCommand = true
		case "--config":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--config requires a path")
			}
			parsed.ConfigPath = args[i]
		case "--clipboard":
			parsed.FromClipboard = true
		case "--speed":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--speed requires a millisecond value")
			}
			ms, err := strconv.Atoi(args[i])
			if err != nil || ms <= 0 {
				return Parsed{}, fmt.Errorf("--speed requires a positive millisecond value, got %q", args[i])
			}
			parsed.SpeedMS = ms
			speedFlag = true
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			if !haveCommand {
				cmd := Command(arg)
				if _, ok := validCommands[cmd]; !ok {
					return Parsed{}, fmt.Errorf("unknown command: %s", arg)
				}
				parsed.Command = cmd
				parsed.ShowHelp = cmd == CommandHelp
				haveCommand = true
				continue
			}

			switch {
			case parsed.Command == CommandSpeed && parsed.SpeedMS == 0:
				ms, err := strconv.Atoi(arg)
				if err != nil || ms <= 0 {
					return Parsed{}, fmt.Errorf("speed requires a positive millisecond value, got %q", arg)
				}
				parsed.SpeedMS = ms
			case hasFileArg(parsed.Command) && parsed.FilePath == "":
				parsed.FilePath = arg
			default:
				return Parsed{}, fmt.Errorf("unexpected argument %q for command %q", arg, parsed.Command)
			}
		}
	}

	if haveCommand && parsed.Command == CommandSpeed && parsed.SpeedMS == 0 {
		return Parsed{}, errors.New("speed requires a millisecond value")
	}
	if parsed.FromClipboard && !hasFileArg(parsed.Command) {
		return Parsed{}, fmt.Errorf("--clipboard is not valid for command %q", parsed.Command)
	}
	if parsed.FromClipboard && parsed.FilePath != "" {
		return Parsed{}, errors.New("--clipboard and FILE are mutually exclusive")
	}
	if speedFlag && parsed.Command != CommandRead {
		return Parsed{}, fmt.Errorf("--speed is not valid for command %q", parsed.Command)
	}

	return parsed, nil
}

func hasFileArg(cmd Command) bool {
	_, ok := takesFileArg[cmd]
	return ok
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] <command> [arguments]

Commands:
  read [FILE]     Load text and serve playback (FILE, --clipboard, or stdin)
  load [FILE]     Replace the running reader's text
  start           Start automatic phrase advance from the top
  stop            Pause automatic phrase advance
  forward         Step to the next phrase (while paused)
  back            Step to the previous phrase (while paused)
  speed MS        Set the advance interval in milliseconds (100-1000)
  status          Print reader state, current phrase, and progress
  analyze [FILE]  Print per-token morphological analysis
  stats [FILE]    Print text statistics
  doctor          Run configuration and environment checks
  version         Print version information
  help            Show this help

Flags:
  --config PATH   Config file path (default: $XDG_CONFIG_HOME/yomitori/config.yaml)
  --clipboard     Read input text from the system clipboard
  --speed MS      Initial advance interval for read (100-1000)
  -h, --help      Show help
  --version       Show version
`, binaryName)
}
