package tags

import (
	"reflect"
	"testing"

	"github.com/atinyakov/AuthKeeper/internal/models"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []models.Tag
	}{
		{"empty", "", []models.Tag{}},
		{"whitespace only", "   \t ", []models.Tag{}},
		{"only delimiters", " ; ;; ", []models.Tag{}},
		{"single", "prod", []models.Tag{{Text: "prod"}}},
		{"trim and keep duplicates", " a ; ; b; a ", []models.Tag{{Text: "a"}, {Text: "b"}, {Text: "a"}}},
		{"inner spaces kept", "team one;team two", []models.Tag{{Text: "team one"}, {Text: "team two"}}},
		{"trailing delimiter", "x;", []models.Tag{{Text: "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.input)
			if got == nil {
				t.Fatalf("Split(%q) returned nil", tt.input)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %+v; want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplit_NoEmptyTags(t *testing.T) {
	inputs := []string{";;;", " ; a ;\n; b ;", "\t;x\t;\t", "a;b;c"}
	for _, in := range inputs {
		for _, tag := range Split(in) {
			if tag.Text == "" {
				t.Errorf("Split(%q) produced an empty tag", in)
			}
		}
	}
}

func TestJoin(t *testing.T) {
	got := Join(Split("a;b ; c"))
	if got != "a; b; c" {
		t.Errorf("Join = %q; want %q", got, "a; b; c")
	}
	if Join(nil) != "" {
		t.Errorf("Join(nil) = %q; want empty", Join(nil))
	}
}
