package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// Terminal handles all operator interaction: free-text input, model
// selection, and the confirm gesture. On a real terminal it uses survey
// prompts; when stdin is piped it falls back to plain buffered line reads so
// scripted input still works.
type Terminal struct {
	stdin *bufio.Reader
}

// NewTerminal creates a Terminal reading from the process's stdin.
func NewTerminal() *Terminal {
	return &Terminal{stdin: bufio.NewReader(os.Stdin)}
}

func stdinIsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.stdin.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}

// Instruction reads the natural-language instruction from the operator.
func (t *Terminal) Instruction() (string, error) {
	if !stdinIsTTY() {
		return t.readLine()
	}

	var instruction string
	prompt := &survey.Input{
		Message: "What would you like to do?",
	}
	if err := survey.AskOne(prompt, &instruction); err != nil {
		return "", err
	}
	return instruction, nil
}

// SelectModel shows the installed models as a numbered list and asks the
// operator to pick one by 1-based index. Out-of-range or non-numeric input
// re-prompts indefinitely; this never escalates to an error.
func (t *Terminal) SelectModel(names []string) (string, error) {
	fmt.Println("\nInstalled models:")
	for i, name := range names {
		fmt.Printf("  %d) %s\n", i+1, name)
	}
	fmt.Println()

	if !stdinIsTTY() {
		for {
			fmt.Printf("Select a model [1-%d]: ", len(names))
			line, err := t.readLine()
			if err != nil {
				return "", err
			}
			if idx, ok := parseIndex(line, len(names)); ok {
				return names[idx], nil
			}
		}
	}

	validator := func(ans interface{}) error {
		s, _ := ans.(string)
		if _, ok := parseIndex(s, len(names)); !ok {
			return fmt.Errorf("enter a number between 1 and %d", len(names))
		}
		return nil
	}

	var answer string
	prompt := &survey.Input{
		Message: fmt.Sprintf("Select a model [1-%d]:", len(names)),
	}
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(validator)); err != nil {
		return "", err
	}

	idx, _ := parseIndex(answer, len(names))
	return names[idx], nil
}

// parseIndex converts a 1-based selection into a 0-based index.
func parseIndex(input string, n int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}

// ConfirmRun displays the generated command and reads the confirm gesture: an
// empty line means run, anything else means cancel. Pressing Enter to proceed
// is the deliberate low-friction default.
func (t *Terminal) ConfirmRun(command string) (bool, error) {
	ShowCommand(command)

	if !stdinIsTTY() {
		fmt.Print("Press Enter to run, anything else cancels: ")
		line, err := t.readLine()
		if err != nil {
			return false, err
		}
		return line == "", nil
	}

	var answer string
	prompt := &survey.Input{
		Message: "Press Enter to run, anything else cancels:",
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, err
	}
	return answer == "", nil
}

// Copy places the command on the system clipboard.
func (t *Terminal) Copy(command string) error {
	return clipboard.WriteAll(command)
}

// ShowCommand displays the generated command with formatting.
func ShowCommand(command string) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Println("\nGenerated command:")
	fmt.Printf("  %s\n\n", command)
}

// ShowSuccess displays a success message.
func ShowSuccess(message string) {
	green := color.New(color.FgGreen, color.Bold)
	green.Printf("✓ %s\n", message)
}

// ShowError displays an error message.
func ShowError(message string) {
	red := color.New(color.FgRed, color.Bold)
	red.Printf("✗ %s\n", message)
}

// ShowWarning displays a warning message.
func ShowWarning(message string) {
	yellow := color.New(color.FgYellow)
	yellow.Printf("! %s\n", message)
}

// ShowInfo displays an info message.
func ShowInfo(message string) {
	blue := color.New(color.FgBlue)
	blue.Println(message)
}
