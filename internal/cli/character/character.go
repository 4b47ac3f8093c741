package character

import (
	"fmt"

	"github.com/mayflyapp/mayfly/internal/cli"
	"github.com/mayflyapp/mayfly/internal/messages"
	"github.com/mayflyapp/mayfly/internal/models"
)

type CharacterCmd struct {
	Show CharacterShowCmd `cmd:"" help:"Show the character and a greeting." default:"1"`
	Mood CharacterMoodCmd `cmd:"" help:"Set the character's mood."`
}

type CharacterShowCmd struct{}

func (c *CharacterShowCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Store.GetCharacterState()
	if err != nil {
		return err
	}

	ctx.Printf("%s  mood: %s, %d interaction%s\n",
		cli.MoodFace(state.Mood), state.Mood, state.TotalInteractions, cli.Plural(state.TotalInteractions))
	if state.LastInteractionDate != nil {
		ctx.Println(cli.MutedStyle.Render("last seen " + state.LastInteractionDate.Local().Format("2006-01-02 15:04")))
	}

	gen := ctx.Messages
	if gen == nil {
		gen = messages.NewGenerator(nil)
	}
	msg := gen.Generate(messages.DailyGreeting, messages.Data{})
	ctx.Println(cli.MessageStyle.Render(msg.Text))
	return nil
}

type CharacterMoodCmd struct {
	Mood string `arg:"" enum:"happy,encouraging,celebrating,gentle" help:"One of happy, encouraging, celebrating, gentle."`
}

func (c *CharacterMoodCmd) Run(ctx *cli.Context) error {
	mood := models.Mood(c.Mood)
	if err := ctx.Store.UpdateCharacterMood(mood); err != nil {
		return fmt.Errorf("failed to set mood: %w", err)
	}
	ctx.Printf("%s  mood set to %s\n", cli.MoodFace(mood), mood)
	return nil
}
