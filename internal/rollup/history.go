package rollup

import (
	"fmt"
	"strings"
	"time"
)

const historyTimestampLayout = "1/2/2006, 3:04:05 PM"

// AppendHistory adds "[timestamp] note" as the last line. Blank notes are ignored.
func AppendHistory(history, note string, now time.Time) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return history
	}
	entry := fmt.Sprintf("[%s] %s", now.Format(historyTimestampLayout), note)
	if history == "" {
		return entry
	}
	return history + "\n" + entry
}

func HistoryLines(history string) []string {
	if history == "" {
		return nil
	}
	return strings.Split(history, "\n")
}

func RemoveHistoryLine(history string, index int) string {
	lines := HistoryLines(history)
	if index < 0 || index >= len(lines) {
		return history
	}
	lines = append(lines[:index], lines[index+1:]...)
	return strings.Join(lines, "\n")
}

func MoveHistoryLine(history string, from, to int) string {
	lines := HistoryLines(history)
	if from < 0 || from >= len(lines) || to < 0 || to >= len(lines) || from == to {
		return history
	}
	line := lines[from]
	lines = append(lines[:from], lines[from+1:]...)
	lines = append(lines[:to], append([]string{line}, lines[to:]...)...)
	return strings.Join(lines, "\n")
}
