package journal

import "strings"

// Heading is one org heading and the subtree below it.
type Heading struct {
	Level      int               `json:"level"`
	Title      string            `json:"title"`
	Offset     int               `json:"offset"` // start of the heading line
	Line       int               `json:"line"`
	End        int               `json:"end"` // offset where the subtree ends
	Properties map[string]string `json:"properties,omitempty"`
}

// Outline is the heading structure of a document, in file order.
type Outline struct {
	Headings []Heading
}

// ParseOutline scans text for org headings. A heading is a line that starts
// with one or more stars followed by a space, or made only of stars. Property
// drawers directly below a heading are parsed into Properties.
func ParseOutline(text string) Outline {
	var o Outline
	var drawer *Heading
	inDrawer := false

	offset, lineNo := 0, 0
	for offset < len(text) {
		lineNo++
		next := strings.IndexByte(text[offset:], '\n')
		var line string
		if next < 0 {
			line = text[offset:]
			next = len(text)
		} else {
			line = text[offset : offset+next]
			next = offset + next + 1
		}
		line = strings.TrimSuffix(line, "\r")

		if level, title, ok := parseHeadingLine(line); ok {
			o.Headings = append(o.Headings, Heading{Level: level, Title: title, Offset: offset, Line: lineNo})
			drawer = &o.Headings[len(o.Headings)-1]
			inDrawer = false
			offset = next
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case drawer != nil && !inDrawer && strings.EqualFold(trimmed, ":PROPERTIES:"):
			inDrawer = true
		case inDrawer && strings.EqualFold(trimmed, ":END:"):
			inDrawer = false
			drawer = nil
		case inDrawer:
			if key, value, ok := parseProperty(trimmed); ok {
				if drawer.Properties == nil {
					drawer.Properties = make(map[string]string)
				}
				drawer.Properties[key] = value
			}
		default:
			drawer = nil
		}
		offset = next
	}

	for i := range o.Headings {
		o.Headings[i].End = len(text)
		for _, h := range o.Headings[i+1:] {
			if h.Level <= o.Headings[i].Level {
				o.Headings[i].End = h.Offset
				break
			}
		}
	}
	return o
}

func parseHeadingLine(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '*' {
		level++
	}
	if level == 0 {
		return 0, "", false
	}
	if level < len(line) && line[level] != ' ' && line[level] != '\t' {
		return 0, "", false
	}
	return level, strings.TrimSpace(line[level:]), true
}

func parseProperty(line string) (string, string, bool) {
	if !strings.HasPrefix(line, ":") {
		return "", "", false
	}
	key, value, ok := strings.Cut(line[1:], ":")
	if !ok || key == "" {
		return "", "", false
	}
	return strings.ToUpper(key), strings.TrimSpace(value), true
}

// FindLast returns the last heading at level whose title equals title.
func (o Outline) FindLast(level int, title string) (Heading, bool) {
	for i := len(o.Headings) - 1; i >= 0; i-- {
		if h := o.Headings[i]; h.Level == level && h.Title == title {
			return h, true
		}
	}
	return Heading{}, false
}

// Last returns the last heading at level.
func (o Outline) Last(level int) (Heading, bool) {
	for i := len(o.Headings) - 1; i >= 0; i-- {
		if o.Headings[i].Level == level {
			return o.Headings[i], true
		}
	}
	return Heading{}, false
}

// Parent returns the nearest heading above h with a lower level.
func (o Outline) Parent(h Heading) (Heading, bool) {
	for i := len(o.Headings) - 1; i >= 0; i-- {
		p := o.Headings[i]
		if p.Offset < h.Offset && p.Level < h.Level {
			return p, true
		}
	}
	return Heading{}, false
}

// Titles returns the set of titles of headings at level.
func (o Outline) Titles(level int) map[string]bool {
	titles := make(map[string]bool)
	for _, h := range o.Headings {
		if h.Level == level {
			titles[h.Title] = true
		}
	}
	return titles
}
