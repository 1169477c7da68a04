// Package interchange implements the CSV interchange format for
// event records: a quoted, comma-separated encoding that round-trips
// through Encode and Decode, with name-based department and assignee
// references resolved against the current entity sets.
package interchange

import (
	"fmt"
	"strings"
	"time"

	"github.com/mgavilanes/campline-be/internal/models"
)

// Header is the fixed first line of every export. It is skipped
// unconditionally on import.
const Header = "Title,Date,Urgency,Description,Department,Assignee"

// Draft is one partially decoded event row. References hold resolved
// identifiers when a current name matched, nil otherwise. Date keeps
// the original field text; DateValid reports whether it parsed as
// yyyy-MM-dd.
type Draft struct {
	Title        string
	Date         string
	DateValid    bool
	Urgency      models.Urgency
	Description  string
	DepartmentID *string
	AssigneeID   *string
}

// Diagnostic describes a soft problem on one input line. Line numbers
// are 1-based over the raw input, header included. Diagnostics never
// abort a decode; the affected line is skipped or degraded instead.
type Diagnostic struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Encode renders events as CSV text: the header line, then one line
// per event with six fields in fixed order. Every field is wrapped in
// double quotes and embedded quotes are doubled, even for values
// without separators, so the output re-decodes unambiguously. The
// format is line-based, so newlines inside a value are flattened to
// single spaces; a multi-line field could not be re-decoded.
// Department and assignee are rendered as their current display name;
// absent or dangling references emit an empty field.
func Encode(events []models.Event, departments []models.Department, users []models.User) string {
	res := NewResolver(departments, users)

	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for _, ev := range events {
		var dept, assignee string
		if ev.DepartmentID != nil {
			dept = res.DepartmentName(*ev.DepartmentID)
		}
		if ev.AssigneeID != nil {
			assignee = res.UserName(*ev.AssigneeID)
		}
		fields := [...]string{ev.Title, ev.Date, ev.Urgency.Label(), ev.Description, dept, assignee}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(f))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Decode parses CSV text back into event drafts. It is a pure
// function of its inputs: the header line is skipped, blank lines are
// ignored, lines with fewer than three fields are skipped with a
// diagnostic, unknown urgency levels coerce to Medium, unparseable
// dates pass through as-is with a diagnostic, and unresolved names
// leave the reference unset.
func Decode(text string, departments []models.Department, users []models.User) ([]Draft, []Diagnostic) {
	res := NewResolver(departments, users)

	var drafts []Draft
	var diags []Diagnostic
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if i == 0 {
			continue // header, skipped unconditionally
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitLine(line)
		if len(fields) < 3 {
			diags = append(diags, Diagnostic{Line: i + 1, Reason: "fewer than three fields, line skipped"})
			continue
		}
		for len(fields) < 6 {
			fields = append(fields, "")
		}

		d := Draft{
			Title:       fields[0],
			Date:        fields[1],
			Urgency:     models.ParseUrgency(fields[2]),
			Description: fields[3],
		}
		if _, err := time.Parse(models.DateLayout, d.Date); err == nil {
			d.DateValid = true
		} else {
			diags = append(diags, Diagnostic{Line: i + 1, Reason: fmt.Sprintf("unparseable date %q, kept as-is", d.Date)})
		}
		if fields[4] != "" {
			if id := res.DepartmentID(fields[4]); id != "" {
				d.DepartmentID = &id
			}
		}
		if fields[5] != "" {
			if id := res.UserID(fields[5]); id != "" {
				d.AssigneeID = &id
			}
		}
		drafts = append(drafts, d)
	}
	return drafts, diags
}

// splitLine scans one line into fields in a single pass. A quote
// character toggles the inside-quotes flag; a comma is a field
// boundary only while the flag is off. Each raw field then has one
// surrounding quote pair stripped and doubled quotes collapsed.
func splitLine(line string) []string {
	var fields []string
	start := 0
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				fields = append(fields, unquoteField(line[start:i]))
				start = i + 1
			}
		}
	}
	fields = append(fields, unquoteField(line[start:]))
	return fields
}

func unquoteField(f string) string {
	if len(f) >= 2 && strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`) {
		f = f[1 : len(f)-1]
	}
	return strings.ReplaceAll(f, `""`, `"`)
}

var newlineFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func quote(s string) string {
	s = newlineFlattener.Replace(s)
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
