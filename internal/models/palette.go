package models

// HabitColors is the rotating palette used when a habit is created without a colour.
// Duplicates are intentional; the palette cycles every twelve habits.
var HabitColors = []string{
	"#6C5CE7", // soft purple
	"#00B894", // soft green
	"#FDCB6E", // warm yellow
	"#E17055", // soft coral
	"#74B9FF", // soft blue
	"#A29BFE", // light purple
	"#00CEC9", // turquoise
	"#FDCB6E", // golden yellow
	"#E84393", // pink
	"#6C5CE7", // purple
	"#00B894", // green
	"#FF7675", // light coral
}

// HabitColor returns the palette entry for the habit at the given creation position.
func HabitColor(index int) string {
	return HabitColors[index%len(HabitColors)]
}
