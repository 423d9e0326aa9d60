package prompt

import (
	"fmt"
	"runtime"
)

// OS is the host platform family the generated command must target.
type OS int

const (
	Linux OS = iota
	MacOS
	Windows
)

// Detect maps the host platform onto an OS family. Called once per run; the
// result is not user-overridable.
func Detect() OS {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return MacOS
	default:
		return Linux
	}
}

// Label returns the context label embedded in the prompt.
func (o OS) Label() string {
	switch o {
	case Windows:
		return "Windows (Command Prompt)"
	case MacOS:
		return "macOS (Terminal)"
	default:
		return "Linux (Terminal)"
	}
}

// ExampleCommand returns an OS-appropriate command for the worked example
// pair in the template.
func (o OS) ExampleCommand() string {
	if o == Windows {
		return "dir /a"
	}
	return "ls -la"
}

const template = `You are a command-line assistant for %s.
Translate the user's task into exactly one shell command.

Rules:
- Reply with the command only.
- No explanation.
- No markdown fences.
- No backticks.

Example:
Task: show all files including hidden ones
Command: %s

Task: %s
Command:`

// Build renders the generation prompt for an instruction. The template is
// deterministic: same instruction and OS, same prompt. Local models are
// unreliable at following free-form formatting instructions, so the template
// includes a worked example pair; that alone makes extraction noticeably more
// reliable.
func Build(instruction string, os OS) string {
	return fmt.Sprintf(template, os.Label(), os.ExampleCommand(), instruction)
}
