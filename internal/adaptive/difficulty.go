package adaptive

import (
	"fmt"
	"strings"
)

// Mode identifies the descriptor variant.
type Mode string

const (
	ModeBounded   Mode = "bounded"
	ModeSkillList Mode = "skill-list"
)

// Descriptor describes how the next question's difficulty is chosen.
// Implementations are Bounded and SkillList.
type Descriptor interface {
	Mode() Mode

	// Select computes the next target difficulty from the label of the
	// question just answered, the learner's outcome and their streak.
	Select(current string, outcome Outcome, streak int) Selection

	isDescriptor()
}

// Selection is the instruction payload handed to the question generator.
type Selection struct {
	Mode    Mode
	Outcome Outcome
	Streak  int

	// Current is the difficulty label of the question just answered.
	Current string

	// Next is the label to target. For Bounded descriptors it equals Current
	// because the generation service performs the adjustment itself.
	Next string

	// NextIndex is the position of Next in Skills, or -1 in bounded mode.
	NextIndex int

	// Instruction is the natural-language adjustment for the service.
	Instruction string

	Lower  string
	Upper  string
	Skills []string
}

// Bounded is a free-text difficulty range. Ordering between labels is left to
// the generation service, which is also trusted to keep within the bounds.
type Bounded struct {
	Lower string
	Upper string
}

func (Bounded) Mode() Mode { return ModeBounded }
func (Bounded) isDescriptor() {}

func (b Bounded) Select(current string, outcome Outcome, streak int) Selection {
	if streak < 0 {
		streak = 0
	}
	sel := Selection{
		Mode:      ModeBounded,
		Outcome:   outcome,
		Streak:    streak,
		Current:   current,
		Next:      current,
		NextIndex: -1,
		Lower:     b.Lower,
		Upper:     b.Upper,
	}

	switch outcome {
	case OutcomeCorrect:
		sel.Instruction = fmt.Sprintf(
			"The student answered correctly and has %d correct in a row. Increase the difficulty by %d levels.",
			streak, streak)
	case OutcomeIncorrect:
		sel.Instruction = "The student answered incorrectly. Make the question half a level easier."
	case OutcomeUnknown:
		sel.Instruction = `The student answered "I don't know". Make the question 1.5 levels easier.`
	default:
		sel.Next = b.Lower
		sel.Instruction = fmt.Sprintf("Start with %s.", b.Lower)
	}
	return sel
}

// SkillList is an ordered list of skills, easiest first.
type SkillList struct {
	Skills []string
}

func (SkillList) Mode() Mode { return ModeSkillList }
func (SkillList) isDescriptor() {}

// ResolveIndex finds label in the list, ignoring case and surrounding
// whitespace. Unknown labels resolve to 0.
func (l SkillList) ResolveIndex(label string) int {
	want := strings.ToLower(strings.TrimSpace(label))
	for i, s := range l.Skills {
		if strings.ToLower(strings.TrimSpace(s)) == want {
			return i
		}
	}
	return 0
}

// NextIndex applies the index arithmetic for one answer. The result is always
// within [0, len(Skills)-1] for a non-empty list.
func (l SkillList) NextIndex(current int, outcome Outcome, streak int) int {
	last := len(l.Skills) - 1
	if last < 0 {
		return 0
	}
	if streak < 0 {
		streak = 0
	}

	var next int
	switch outcome {
	case OutcomeCorrect:
		next = current + streak
	case OutcomeIncorrect:
		next = current - 1
	case OutcomeUnknown:
		next = current - 2
	default:
		next = 0
	}
	return clamp(next, 0, last)
}

func (l SkillList) Select(current string, outcome Outcome, streak int) Selection {
	if len(l.Skills) == 0 {
		sel := Bounded{}.Select(current, outcome, streak)
		sel.Mode = ModeSkillList
		return sel
	}
	if streak < 0 {
		streak = 0
	}

	idx := l.NextIndex(l.ResolveIndex(current), outcome, streak)
	next := l.Skills[idx]

	sel := Selection{
		Mode:      ModeSkillList,
		Outcome:   outcome,
		Streak:    streak,
		Current:   current,
		Next:      next,
		NextIndex: idx,
		Skills:    append([]string(nil), l.Skills...),
	}

	switch outcome {
	case OutcomeCorrect:
		sel.Instruction = fmt.Sprintf(
			"The student answered correctly and has %d correct in a row, so we are moving to a harder skill.", streak)
	case OutcomeIncorrect:
		sel.Instruction = "The student answered incorrectly, so we are moving to an easier skill."
	case OutcomeUnknown:
		sel.Instruction = `The student answered "I don't know", so we are moving to a much easier skill.`
	default:
		sel.Instruction = fmt.Sprintf("Start with the first skill: %s.", l.Skills[0])
	}
	return sel
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
