package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/mayflyapp/mayfly/internal/backup"
	"github.com/mayflyapp/mayfly/internal/config"
	"github.com/mayflyapp/mayfly/internal/logger"
	"github.com/mayflyapp/mayfly/internal/messages"
	"github.com/mayflyapp/mayfly/internal/models"
	"github.com/mayflyapp/mayfly/internal/storage"
)

// ConfirmFunc asks the user a yes/no question
type ConfirmFunc func(title, description string) (bool, error)

type Context struct {
	Store    storage.Provider
	Config   config.Config
	Messages *messages.Generator
	Out      io.Writer
	Confirm  ConfirmFunc
}

// NewContext wires a Context writing to stdout and prompting with huh.
func NewContext(store storage.Provider, cfg config.Config) *Context {
	return &Context{
		Store:    store,
		Config:   cfg,
		Messages: messages.NewGenerator(nil),
		Out:      os.Stdout,
		Confirm:  ConfirmPrompt,
	}
}

// ConfirmPrompt shows an interactive yes/no prompt.
func ConfirmPrompt(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Confirmed returns true when skip is set, otherwise asks.
func (c *Context) Confirmed(skip bool, title, description string) (bool, error) {
	if skip {
		return true, nil
	}
	if c.Confirm == nil {
		return false, fmt.Errorf("confirmation required; pass --yes")
	}
	return c.Confirm(title, description)
}

// PerformAutomaticBackup creates a backup when auto_backup is enabled and
// only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.AutoBackup {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// React picks a character message for msgCtx, applies its mood and prints it.
// A failed mood update is logged, not returned: the action itself succeeded.
func (c *Context) React(msgCtx messages.Context, data messages.Data) messages.Message {
	gen := c.Messages
	if gen == nil {
		gen = messages.NewGenerator(nil)
	}
	msg := gen.Generate(msgCtx, data)

	if err := c.Store.UpdateCharacterState(msg.Mood); err != nil {
		logger.Warn("Failed to update character mood", "mood", msg.Mood, "error", err)
	}
	c.Printf("%s %s\n", MoodFace(msg.Mood), MessageStyle.Render(msg.Text))
	return msg
}

// MoodFace is the character glyph shown next to its messages.
func MoodFace(m models.Mood) string {
	switch m {
	case models.MoodCelebrating:
		return "🦋✨"
	case models.MoodEncouraging:
		return "🦋💪"
	case models.MoodGentle:
		return "🦋🌙"
	default:
		return "🦋"
	}
}
