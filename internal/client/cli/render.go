package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/client/models"
)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func formatDiary(d models.Diary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s", d.ID, d.CreatedAt.Local().Format("2006-01-02 15:04"))
	if d.Mood != "" {
		fmt.Fprintf(&b, "  %s", d.Mood)
	}
	fmt.Fprintf(&b, "  %s", d.Title)
	for _, t := range d.Tags {
		fmt.Fprintf(&b, " #%s", t)
	}
	for _, line := range strings.Split(d.Content, "\n") {
		fmt.Fprintf(&b, "\n    %s", line)
	}
	return b.String()
}

func heatCell(count int) rune {
	switch {
	case count <= 0:
		return '·'
	case count == 1:
		return '░'
	case count <= 3:
		return '▒'
	case count <= 5:
		return '▓'
	default:
		return '█'
	}
}

// mondayIndex maps time.Weekday to 0 for Monday through 6 for Sunday.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// renderHeatmap draws days (oldest first, one per day) as a grid with one
// row per weekday and one column per week, followed by a summary line.
func renderHeatmap(days []models.DayActivity) string {
	if len(days) == 0 {
		return "No activity\n"
	}

	offset := mondayIndex(days[0].Day.Weekday())
	weeks := (offset+len(days)-1)/7 + 1

	grid := make([][]rune, 7)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", weeks))
	}

	total, streak, best := 0, 0, 0
	for i, d := range days {
		pos := offset + i
		grid[pos%7][pos/7] = heatCell(d.Count)

		total += d.Count
		if d.Count > 0 {
			streak++
			best = max(best, streak)
		} else {
			streak = 0
		}
	}

	var b strings.Builder
	for r, row := range grid {
		fmt.Fprintf(&b, "%s %s\n", weekdayLabels[r], strings.TrimRight(string(row), " "))
	}
	fmt.Fprintf(&b, "%d entries in %d days, longest streak %d days\n", total, len(days), best)
	return b.String()
}
