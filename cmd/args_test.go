package cmd

import (
	"reflect"
	"testing"
)

func TestResolveArgs(t *testing.T) {
	tests := []struct {
		name       string
		promptFlag string
		inputFlag  string
		outputFlag string
		args       []string
		want       invocation
	}{
		{
			name: "nothing",
			want: invocation{},
		},
		{
			name: "single positional is the prompt",
			args: []string{"write a haiku"},
			want: invocation{Prompt: "write a haiku", AssumedPrompt: true},
		},
		{
			name: "inputs then prompt words",
			args: []string{"a.go,b.go", "add", "tests"},
			want: invocation{Prompt: "add tests", Inputs: []string{"a.go", "b.go"}},
		},
		{
			name:       "prompt flag takes positional as inputs",
			promptFlag: "fix it",
			args:       []string{"main.go"},
			want:       invocation{Prompt: "fix it", Inputs: []string{"main.go"}},
		},
		{
			name:       "prompt flag alone",
			promptFlag: "hello",
			want:       invocation{Prompt: "hello"},
		},
		{
			name:      "input flag makes every positional prompt",
			inputFlag: "main.go",
			args:      []string{"refactor", "this"},
			want:      invocation{Prompt: "refactor this", Inputs: []string{"main.go"}},
		},
		{
			name:       "input flag wins over positional with prompt flag",
			promptFlag: "p",
			inputFlag:  "x.go",
			want:       invocation{Prompt: "p", Inputs: []string{"x.go"}},
		},
		{
			name:       "outputs split and trimmed",
			outputFlag: " out.go , ,other.go",
			args:       []string{"in.go", "go"},
			want: invocation{
				Prompt:  "go",
				Inputs:  []string{"in.go"},
				Outputs: []string{"out.go", "other.go"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveArgs(tt.promptFlag, tt.inputFlag, tt.outputFlag, tt.args)
			if err != nil {
				t.Fatalf("resolveArgs() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("resolveArgs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveArgs_UnexpectedArguments(t *testing.T) {
	tests := []struct {
		name      string
		inputFlag string
		args      []string
	}{
		{name: "extra positional after inputs", args: []string{"a.go", "stray"}},
		{name: "positional with both flags", inputFlag: "a.go", args: []string{"stray"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := resolveArgs("prompt", tt.inputFlag, "", tt.args); err == nil {
				t.Error("resolveArgs() error = nil, want unexpected arguments")
			}
		})
	}
}
