package brackets

// Segment is a piece of the input, either plain text between groups or a
// group itself.
type Segment struct {
	Text string

	// Group is the ordinal of the group this segment holds, or -1 for
	// plain text.
	Group int
}

// IsGroup reports whether the segment holds a group.
func (s Segment) IsGroup() bool {
	return s.Group >= 0
}

// Split cuts input into plain and group segments using groups found by
// FindGroups on the same input. Empty plain segments are omitted.
func Split(input string, groups []Group) []Segment {
	if len(groups) == 0 {
		if input == "" {
			return nil
		}

		return []Segment{{Text: input, Group: -1}}
	}

	runes := []rune(input)
	segments := make([]Segment, 0, len(groups)*2+1)

	pos := 0
	for i, g := range groups {
		if g.Start > pos {
			segments = append(segments, Segment{Text: string(runes[pos:g.Start]), Group: -1})
		}

		segments = append(segments, Segment{Text: g.Text, Group: i})
		pos = g.End + 1
	}

	if pos < len(runes) {
		segments = append(segments, Segment{Text: string(runes[pos:]), Group: -1})
	}

	return segments
}
