package artifact

import (
	"fmt"
	"strings"
	"time"
)

// Deadline is one dated obligation destined for the calendar artifact.
type Deadline struct {
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Priority string    `json:"priority"`
}

// RenderICS serializes deadlines as a minimal VCALENDAR document.
func RenderICS(deadlines []Deadline) string {
	var sb strings.Builder
	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//lawclerk//Case Deadlines//EN\r\n")

	for _, d := range deadlines {
		prio := 5
		if d.Priority == "high" {
			prio = 1
		}
		sb.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&sb, "SUMMARY:%s\r\n", escapeICS(d.Title))
		fmt.Fprintf(&sb, "DTSTART:%s\r\n", d.Date.UTC().Format("20060102T150405Z"))
		fmt.Fprintf(&sb, "PRIORITY:%d\r\n", prio)
		sb.WriteString("END:VEVENT\r\n")
	}

	sb.WriteString("END:VCALENDAR\r\n")
	return sb.String()
}

func escapeICS(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
