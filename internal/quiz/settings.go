package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/mathplace/internal/adaptive"
	"github.com/abhisek/mathplace/internal/questiongen"
)

// ErrInvalidSettings is returned by Start when the form is incomplete.
var ErrInvalidSettings = errors.New("invalid quiz settings")

// DefaultSkills is the skill list offered when the learner first switches to
// skill-list mode.
var DefaultSkills = []string{
	"single digit addition",
	"single digit subtraction",
	"multiplication to 5",
	"division to 9",
}

// Settings is the configuration chosen before a test starts.
type Settings struct {
	Lower         string
	Upper         string
	UseSkillsList bool
	Skills        []string
}

// DefaultSettings returns the bounded range with the service defaults.
func DefaultSettings() Settings {
	return Settings{
		Lower:  questiongen.DefaultLower,
		Upper:  questiongen.DefaultUpper,
		Skills: append([]string(nil), DefaultSkills...),
	}
}

// ParseSkills splits text into one skill per line, trimming whitespace and
// dropping blank lines.
func ParseSkills(text string) []string {
	return lo.FilterMap(strings.Split(text, "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != ""
	})
}

// Validate reports whether a test can be started with s.
func (s Settings) Validate() error {
	if s.UseSkillsList {
		if len(ParseSkills(strings.Join(s.Skills, "\n"))) == 0 {
			return fmt.Errorf("%w: skill list is empty", ErrInvalidSettings)
		}
		return nil
	}
	if strings.TrimSpace(s.Lower) == "" || strings.TrimSpace(s.Upper) == "" {
		return fmt.Errorf("%w: lower and upper bounds are required", ErrInvalidSettings)
	}
	return nil
}

// Descriptor maps the settings onto a difficulty descriptor.
func (s Settings) Descriptor() adaptive.Descriptor {
	if s.UseSkillsList {
		return adaptive.SkillList{Skills: ParseSkills(strings.Join(s.Skills, "\n"))}
	}
	return adaptive.Bounded{
		Lower: strings.TrimSpace(s.Lower),
		Upper: strings.TrimSpace(s.Upper),
	}
}

// InitialDifficulty is the label sent with the first request: the first
// skill in skill-list mode, the lower bound otherwise.
func (s Settings) InitialDifficulty() string {
	switch d := s.Descriptor().(type) {
	case adaptive.SkillList:
		if len(d.Skills) > 0 {
			return d.Skills[0]
		}
	case adaptive.Bounded:
		if d.Lower != "" {
			return d.Lower
		}
	}
	return questiongen.DefaultDifficulty
}
