package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iishyfishyy/shelp/internal/config"
	"github.com/iishyfishyy/shelp/internal/executor"
	"github.com/iishyfishyy/shelp/internal/extract"
	"github.com/iishyfishyy/shelp/internal/ollama"
	"github.com/iishyfishyy/shelp/internal/prompt"
	"github.com/iishyfishyy/shelp/internal/ui"
)

// Stage identifies where a session is in its lifecycle. Stages advance
// strictly forward; Done and Failed are terminal.
type Stage int

const (
	StageIdle Stage = iota
	StageResolvingModel
	StageAwaitingService
	StageGenerating
	StageAwaitingConfirmation
	StageExecuting
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageResolvingModel:
		return "resolving-model"
	case StageAwaitingService:
		return "awaiting-service"
	case StageGenerating:
		return "generating"
	case StageAwaitingConfirmation:
		return "awaiting-confirmation"
	case StageExecuting:
		return "executing"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is the in-memory state for one invocation, passed through each
// stage by value. Nothing in it survives process exit.
type Session struct {
	Stage       Stage
	Model       string
	Instruction string
	Command     string
}

// Service is the inference endpoint the controller talks to.
type Service interface {
	IsAvailable() bool
	ListModels() []ollama.Model
	Generate(ctx context.Context, model, promptText string) (string, error)
}

// Store persists the model preference.
type Store interface {
	Load() (*config.Config, error)
	Save(*config.Config) error
}

// UI is the operator-facing side of the controller.
type UI interface {
	Instruction() (string, error)
	SelectModel(names []string) (string, error)
	ConfirmRun(command string) (bool, error)
	Copy(command string) error
}

var (
	// ErrServiceUnavailable means Ollama did not answer the availability
	// probe. Fatal and not retried: fixing it needs operator action.
	ErrServiceUnavailable = errors.New("ollama is not reachable at localhost:11434 - start it with 'ollama serve'")

	// ErrNoModels means the service answered but has nothing installed.
	ErrNoModels = errors.New("no models installed - install one with 'ollama pull <model>'")

	// ErrEmptyInstruction means the operator supplied nothing to translate.
	ErrEmptyInstruction = errors.New("no instruction given")
)

// Controller drives one invocation through the stage sequence
// idle → resolving-model → awaiting-service → generating →
// awaiting-confirmation → executing → done, bailing out to failed on any
// fatal error.
type Controller struct {
	service Service
	store   Store
	term    UI
	run     func(command string, debug bool) error
	host    prompt.OS

	// ModelOverride takes precedence over the persisted preference for this
	// run only; it is never written back.
	ModelOverride string

	// CopyOnly copies the generated command to the clipboard instead of
	// confirming and executing it.
	CopyOnly bool

	Debug bool
}

// NewController wires a controller against the real executor and the host OS
// detected once at construction.
func NewController(service Service, store Store, term UI) *Controller {
	return &Controller{
		service: service,
		store:   store,
		term:    term,
		run:     executor.RunWithDebug,
		host:    prompt.Detect(),
	}
}

func (c *Controller) debugf(format string, args ...interface{}) {
	if c.Debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Session: "+format+"\n", args...)
	}
}

// Run executes one full session. A nil return means either the command ran
// with exit code 0 or the operator cancelled; both are success to the shell.
func (c *Controller) Run(ctx context.Context, instruction string) error {
	sess := Session{Stage: StageIdle, Instruction: strings.TrimSpace(instruction)}

	sess, err := c.resolveModel(sess)
	if err != nil {
		return c.fail(sess, err)
	}

	sess, err = c.checkService(sess)
	if err != nil {
		return c.fail(sess, err)
	}

	sess, err = c.generate(ctx, sess)
	if err != nil {
		return c.fail(sess, err)
	}

	if c.CopyOnly {
		return c.copyOut(sess)
	}

	sess, err = c.confirmAndExecute(sess)
	if err != nil {
		return c.fail(sess, err)
	}

	c.debugf("stage %s", sess.Stage)
	return nil
}

func (c *Controller) fail(sess Session, err error) error {
	sess.Stage = StageFailed
	c.debugf("stage %s: %v", sess.Stage, err)
	return err
}

// resolveModel determines the effective model: explicit override, then the
// persisted preference, then a one-time setup flow.
func (c *Controller) resolveModel(sess Session) (Session, error) {
	sess.Stage = StageResolvingModel
	c.debugf("stage %s", sess.Stage)

	if c.ModelOverride != "" {
		c.debugf("using model override %q", c.ModelOverride)
		sess.Model = c.ModelOverride
		return sess, nil
	}

	cfg, err := c.store.Load()
	if err != nil {
		return sess, err
	}
	if cfg != nil {
		c.debugf("using persisted model %q", cfg.Model)
		sess.Model = cfg.Model
		return sess, nil
	}

	ui.ShowInfo("No model configured yet.")
	model, err := c.Setup()
	if err != nil {
		return sess, err
	}
	sess.Model = model
	return sess, nil
}

// Setup enumerates the installed models, has the operator pick one by index,
// and persists the choice. Also invoked directly for --setup.
func (c *Controller) Setup() (string, error) {
	if !c.service.IsAvailable() {
		return "", ErrServiceUnavailable
	}

	models := c.service.ListModels()
	if len(models) == 0 {
		return "", ErrNoModels
	}

	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.Name
	}

	name, err := c.term.SelectModel(names)
	if err != nil {
		return "", err
	}

	if err := c.store.Save(&config.Config{Model: name}); err != nil {
		return "", fmt.Errorf("failed to save model preference: %w", err)
	}

	ui.ShowSuccess(fmt.Sprintf("Model preference saved: %s", name))
	return name, nil
}

// checkService re-verifies availability right before generation. Setup may
// have happened a while ago, or never.
func (c *Controller) checkService(sess Session) (Session, error) {
	sess.Stage = StageAwaitingService
	c.debugf("stage %s", sess.Stage)

	if !c.service.IsAvailable() {
		return sess, ErrServiceUnavailable
	}
	return sess, nil
}

// generate acquires the instruction if the command line did not carry one,
// builds the prompt, and turns the model's reply into a command string.
func (c *Controller) generate(ctx context.Context, sess Session) (Session, error) {
	sess.Stage = StageGenerating
	c.debugf("stage %s", sess.Stage)

	if sess.Instruction == "" {
		line, err := c.term.Instruction()
		if err != nil {
			return sess, err
		}
		sess.Instruction = strings.TrimSpace(line)
	}
	if sess.Instruction == "" {
		return sess, ErrEmptyInstruction
	}

	p := prompt.Build(sess.Instruction, c.host)
	c.debugf("model=%q instruction=%q", sess.Model, sess.Instruction)

	ui.ShowInfo("Thinking...")
	raw, err := c.service.Generate(ctx, sess.Model, p)
	if err != nil {
		return sess, fmt.Errorf("generation failed: %w", err)
	}

	command := extract.Extract(raw)
	c.debugf("raw response %q extracted to %q", raw, command)
	if !extract.IsUsable(command) {
		return sess, fmt.Errorf("generation failed: model returned no usable command (raw response %q)", raw)
	}

	sess.Command = command
	return sess, nil
}

// copyOut handles --copy: show the command and put it on the clipboard
// without executing anything.
func (c *Controller) copyOut(sess Session) error {
	ui.ShowCommand(sess.Command)
	if err := c.term.Copy(sess.Command); err != nil {
		ui.ShowWarning(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		return nil
	}
	ui.ShowSuccess("Command copied to clipboard")
	return nil
}

// confirmAndExecute shows the command and blocks on the confirm gesture: an
// empty line runs it, anything else cancels. Cancelling is a success, not an
// error.
func (c *Controller) confirmAndExecute(sess Session) (Session, error) {
	sess.Stage = StageAwaitingConfirmation
	c.debugf("stage %s", sess.Stage)

	confirmed, err := c.term.ConfirmRun(sess.Command)
	if err != nil {
		return sess, err
	}

	if !confirmed {
		ui.ShowInfo("Cancelled.")
		sess.Stage = StageDone
		return sess, nil
	}

	sess.Stage = StageExecuting
	c.debugf("stage %s", sess.Stage)

	if err := c.run(sess.Command, c.Debug); err != nil {
		var exitErr *executor.ExitError
		if errors.As(err, &exitErr) {
			ui.ShowError(fmt.Sprintf("Command exited with status %d", exitErr.Code))
		}
		return sess, err
	}

	sess.Stage = StageDone
	return sess, nil
}
