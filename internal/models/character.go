package models

import (
	"fmt"
	"time"
)

// Mood is the character's current emotional state
type Mood string

const (
	MoodHappy       Mood = "happy"
	MoodEncouraging Mood = "encouraging"
	MoodCelebrating Mood = "celebrating"
	MoodGentle      Mood = "gentle"
)

// Validate reports whether the mood is one of the known values
func (m Mood) Validate() error {
	switch m {
	case MoodHappy, MoodEncouraging, MoodCelebrating, MoodGentle:
		return nil
	default:
		return fmt.Errorf("invalid mood %q: must be happy, encouraging, celebrating or gentle", string(m))
	}
}

// CharacterState is the singleton record backing the companion character
type CharacterState struct {
	Mood                Mood       `json:"mood"`
	TotalInteractions   int        `json:"totalInteractions"`
	LastInteractionDate *time.Time `json:"lastInteractionDate,omitempty"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}
