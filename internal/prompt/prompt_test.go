package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func choices() map[string]string {
	return map[string]string{
		"master":  "Main branch",
		"staging": "Staging",
	}
}

func TestSelect(t *testing.T) {
	t.Run("ByNumber", func(t *testing.T) {
		var out bytes.Buffer
		selector := NewSelectorWithIO(strings.NewReader("1\n"), &out, true)
		selected, err := selector.Select("Pick one", choices())
		if err != nil {
			t.Fatal(err)
		}
		// Keys are offered in sorted order
		if selected != "master" {
			t.Errorf("Expected master, got %s", selected)
		}
		if !strings.Contains(out.String(), "Pick one") {
			t.Errorf("Prompt text missing from output: %q", out.String())
		}
	})

	t.Run("ByKey", func(t *testing.T) {
		var out bytes.Buffer
		selector := NewSelectorWithIO(strings.NewReader("staging\n"), &out, true)
		selected, err := selector.Select("Pick one", choices())
		if err != nil {
			t.Fatal(err)
		}
		if selected != "staging" {
			t.Errorf("Expected staging, got %s", selected)
		}
	})

	t.Run("InvalidThenValid", func(t *testing.T) {
		var out bytes.Buffer
		selector := NewSelectorWithIO(strings.NewReader("nope\n2\n"), &out, true)
		selected, err := selector.Select("Pick one", choices())
		if err != nil {
			t.Fatal(err)
		}
		if selected != "staging" {
			t.Errorf("Expected staging after retry, got %s", selected)
		}
	})

	t.Run("ExhaustedInput", func(t *testing.T) {
		var out bytes.Buffer
		selector := NewSelectorWithIO(strings.NewReader(""), &out, true)
		if _, err := selector.Select("Pick one", choices()); err == nil {
			t.Errorf("Expected an error when input runs out")
		}
	})
}

func TestInteractive(t *testing.T) {
	var out bytes.Buffer
	if NewSelectorWithIO(strings.NewReader(""), &out, false).Interactive() {
		t.Errorf("Selector on a non-TTY must not report interactive")
	}
	if !NewSelectorWithIO(strings.NewReader(""), &out, true).Interactive() {
		t.Errorf("Selector on a TTY must report interactive")
	}
}
