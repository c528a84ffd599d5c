package assignment

import (
	"fmt"
	"strings"
	"time"

	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
)

const icsDateLayout = "20060102"

// BuildAssignmentICS renders a single assignment as an all-day iCalendar
// event so it can be imported into an external calendar.
func BuildAssignmentICS(a model.Assignment, now time.Time) (string, error) {
	due, err := model.ParseDate(a.DueDate)
	if err != nil {
		return "", fmt.Errorf("assignment due date must be YYYY-MM-DD")
	}
	end := due.AddDate(0, 0, 1)

	summary := strings.TrimSpace(a.Name)
	if summary == "" {
		summary = "Assignment"
	}

	uid := fmt.Sprintf("assignment-%s@tracker", strings.TrimSpace(string(a.ID)))
	if strings.TrimSpace(string(a.ID)) == "" {
		uid = fmt.Sprintf("assignment-export-%d@tracker", now.UnixNano())
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Assignment Tracker//Export//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + escapeICSText(uid),
		"DTSTAMP:" + now.UTC().Format("20060102T150405Z"),
		"SUMMARY:" + escapeICSText(summary),
		"DTSTART;VALUE=DATE:" + due.Format(icsDateLayout),
		"DTEND;VALUE=DATE:" + end.Format(icsDateLayout),
	}
	if subj := strings.TrimSpace(a.Subject); subj != "" {
		lines = append(lines, "CATEGORIES:"+escapeICSText(subj))
		lines = append(lines, "DESCRIPTION:"+escapeICSText("Subject: "+subj+" / Status: "+string(a.Status)))
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR", "")

	return strings.Join(lines, "\r\n"), nil
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}
