package quiz

import (
	"errors"
	"reflect"
	"testing"

	"github.com/abhisek/mathplace/internal/adaptive"
)

func TestParseSkills(t *testing.T) {
	got := ParseSkills("  add \n\n subtract\r\n   \nmultiply")
	want := []string{"add", "subtract", "multiply"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseSkills = %q, want %q", got, want)
	}
	if got := ParseSkills(" \n "); len(got) != 0 {
		t.Fatalf("blank text should parse to no skills, got %q", got)
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"defaults", DefaultSettings(), false},
		{"missing upper", Settings{Lower: "a", Upper: " "}, true},
		{"missing lower", Settings{Upper: "b"}, true},
		{"skill list", Settings{UseSkillsList: true, Skills: []string{"a"}}, false},
		{"blank skill list", Settings{UseSkillsList: true, Skills: []string{" ", ""}}, true},
		{"skill list ignores bounds", Settings{UseSkillsList: true, Skills: []string{"a"}, Lower: ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("error should wrap ErrInvalidSettings: %v", err)
			}
		})
	}
}

func TestSettings_Descriptor(t *testing.T) {
	s := DefaultSettings()
	b, ok := s.Descriptor().(adaptive.Bounded)
	if !ok || b.Lower != "single digit addition" || b.Upper != "division to 9" {
		t.Fatalf("unexpected descriptor: %#v", s.Descriptor())
	}
	if s.InitialDifficulty() != "single digit addition" {
		t.Fatalf("InitialDifficulty = %q", s.InitialDifficulty())
	}

	s.UseSkillsList = true
	l, ok := s.Descriptor().(adaptive.SkillList)
	if !ok || len(l.Skills) != len(DefaultSkills) {
		t.Fatalf("unexpected descriptor: %#v", s.Descriptor())
	}
	if s.InitialDifficulty() != DefaultSkills[0] {
		t.Fatalf("InitialDifficulty = %q", s.InitialDifficulty())
	}
}
