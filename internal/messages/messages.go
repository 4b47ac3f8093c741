// Package messages picks what the character says after an action.
package messages

import (
	"fmt"
	"math/rand/v2"

	"github.com/mayflyapp/mayfly/internal/models"
)

// Context identifies the situation a message responds to
type Context string

const (
	HabitCompletion      Context = "habit_completion"
	StreakMilestone      Context = "streak_milestone"
	FirstCompletion      Context = "first_completion"
	TodoCompletion       Context = "todo_completion"
	AllTodosDone         Context = "all_todos_done"
	MissedHabit          Context = "missed_habit"
	DailyGreeting        Context = "daily_greeting"
	GeneralEncouragement Context = "general_encouragement"
)

type set struct {
	messages []string
	mood     models.Mood
}

var sets = map[Context]set{
	HabitCompletion: {
		mood: models.MoodCelebrating,
		messages: []string{
			"Nice one! That's what I like to see!",
			"You're building something great!",
			"Another day, another win!",
			"We're going places together!",
			"Small, consistent wins build something great!",
			"You did it! That's another day together!",
			"Focus on what matters - and you did!",
		},
	},
	StreakMilestone: {
		mood: models.MoodCelebrating,
		messages: []string{
			"Look at that streak growing!",
			"Consistency is your superpower!",
			"You're on fire!",
			"This is what steady progress looks like!",
			"Small wins add up to something amazing!",
		},
	},
	FirstCompletion: {
		mood: models.MoodHappy,
		messages: []string{
			"Hey there! Let's build some great habits together!",
			"Ready to make today count?",
			"Welcome! Every habit starts with one day!",
			"Here we go! Today's the day!",
		},
	},
	TodoCompletion: {
		mood: models.MoodEncouraging,
		messages: []string{
			"Check that off! One less thing to worry about!",
			"Done! Focus on what matters - and you did!",
			"You can't do everything, but you're doing what matters!",
			"Nice! Saying no to distractions, saying yes to focus!",
		},
	},
	AllTodosDone: {
		mood: models.MoodCelebrating,
		messages: []string{
			"You did it all! Amazing!",
			"Everything checked off! You can't do everything, but you did what mattered!",
			"All done! That's what focus looks like!",
			"Complete! Small, focused wins build something great!",
		},
	},
	MissedHabit: {
		mood: models.MoodGentle,
		messages: []string{
			"That's okay! Tomorrow's a new chance.",
			"Even the best have off days.",
			"What matters is getting back to it.",
			"It's okay to have limits. Tomorrow we try again!",
			"No worries! Small wins, small setbacks - all part of the journey.",
		},
	},
	DailyGreeting: {
		mood: models.MoodHappy,
		messages: []string{
			"Hey there! Ready to make today count?",
			"Good to see you! Let's focus on what matters today.",
			"Welcome back! Remember: you can't do everything, but you can do what matters.",
			"Hello! Focus on 3 things today, not 30.",
		},
	},
	GeneralEncouragement: {
		mood: models.MoodEncouraging,
		messages: []string{
			"You can't do everything, but you can do what matters!",
			"Saying no is a superpower!",
			"Focus on 3 things today, not 30.",
			"It's okay to have limits.",
			"What you don't do matters as much as what you do!",
			"Small, consistent wins build something great!",
		},
	},
}

var milestones = map[int]string{
	7:   "A full week! That's consistency!",
	30:  "30 days! You've built something real!",
	100: "100 days! This is what steady progress looks like!",
}

// Data carries the state a message can be tailored to. Zero values mean unknown.
type Data struct {
	HabitStreak       int
	CompletedTodos    int
	TotalTodos        int
	IsFirstCompletion bool
}

// Message is a line for the character together with the mood it implies
type Message struct {
	Text string
	Mood models.Mood
}

// Generator picks messages from a random source.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator drawing from rng, or from the global
// source when rng is nil.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

func (g *Generator) intN(n int) int {
	if g.rng == nil {
		return rand.IntN(n)
	}
	return g.rng.IntN(n)
}

// Generate returns a message for ctx. Unknown contexts fall back to general encouragement.
func (g *Generator) Generate(ctx Context, data Data) Message {
	s, ok := sets[ctx]
	if !ok {
		s = sets[GeneralEncouragement]
	}
	msg := Message{Text: s.messages[g.intN(len(s.messages))], Mood: s.mood}

	switch {
	case ctx == StreakMilestone && data.HabitStreak > 0:
		if text, ok := milestones[data.HabitStreak]; ok {
			msg.Text = text
		}
	case ctx == AllTodosDone && data.CompletedTodos > 0:
		msg.Text = fmt.Sprintf("All %d done! You can't do everything, but you did what mattered!", data.CompletedTodos)
	}
	return msg
}

// MoodFor returns the mood the character takes on in ctx.
func MoodFor(ctx Context) models.Mood {
	if s, ok := sets[ctx]; ok {
		return s.mood
	}
	return sets[GeneralEncouragement].mood
}

// HabitContext picks the context for a habit that was just completed.
func HabitContext(data Data) Context {
	if data.IsFirstCompletion {
		return FirstCompletion
	}
	if data.HabitStreak >= 3 && data.HabitStreak%5 == 0 {
		return StreakMilestone
	}
	return HabitCompletion
}

// TodoContext picks the context after a todo was checked off.
func TodoContext(completed, total int) Context {
	if total > 0 && completed == total {
		return AllTodosDone
	}
	return TodoCompletion
}
