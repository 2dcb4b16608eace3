package content

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubAgent struct {
	reply string
	err   error
	input string
}

func (a *stubAgent) Run(_ context.Context, input string) (string, error) {
	a.input = input
	return a.reply, a.err
}

func TestDescribe(t *testing.T) {
	agent := &stubAgent{reply: "  A tour of cat care basics.  "}
	gen := NewGenerator(agent)

	got, err := gen.Describe(context.Background(), "cat_tips")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if got != "A tour of cat care basics." {
		t.Errorf("Describe = %q", got)
	}
	if !strings.Contains(agent.input, `"cat_tips"`) {
		t.Errorf("prompt does not name the video: %q", agent.input)
	}
}

func TestTagsCleansOutput(t *testing.T) {
	agent := &stubAgent{reply: "cats, pet care\ngrooming , \n"}
	gen := NewGenerator(agent)

	got, err := gen.Tags(context.Background(), "cat_tips")
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if got != "cats,pet care,grooming" {
		t.Errorf("Tags = %q, want %q", got, "cats,pet care,grooming")
	}
	if !strings.Contains(agent.input, "20 to 40") || !strings.Contains(agent.input, "1 to 3 words") {
		t.Errorf("tag prompt does not request 20-40 tags of 1-3 words: %q", agent.input)
	}
}

func TestGeneratorPropagatesAgentError(t *testing.T) {
	agent := &stubAgent{err: errors.New("model unavailable")}
	gen := NewGenerator(agent)

	if _, err := gen.Describe(context.Background(), "v"); err == nil {
		t.Error("Describe: expected error")
	}
	if _, err := gen.Tags(context.Background(), "v"); err == nil {
		t.Error("Tags: expected error")
	}
}

func TestCleanTags(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"tag1, tag2\ntag3 ", "tag1,tag2,tag3"},
		{"single", "single"},
		{"", ""},
		{",\n, ,", ""},
		{"a,b,c", "a,b,c"},
	}
	for _, tc := range cases {
		if got := CleanTags(tc.in); got != tc.want {
			t.Errorf("CleanTags(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
