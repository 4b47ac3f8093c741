package utils

// NextStreak computes the streak after a completion on `today`.
//
// lastCompleted is the previous completion day (YYYY-MM-DD) or empty if the
// habit has never been completed. A completion on the same day or the day after
// the last one continues the streak; any longer gap starts over at 1.
func NextStreak(streak int, lastCompleted, today string) (int, error) {
	if lastCompleted == "" {
		return 1, nil
	}

	gap, err := DaysBetween(lastCompleted, today)
	if err != nil {
		return 0, err
	}

	if gap == 0 || gap == 1 {
		return streak + 1, nil
	}
	return 1, nil
}
