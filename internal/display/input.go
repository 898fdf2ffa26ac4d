package display

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/quocvuong92/codemancer/internal/apply"
)

// ErrInterrupted is returned when the user presses Ctrl+C at a prompt.
var ErrInterrupted = errors.New("input interrupted")

// NewInput returns an interactive reader with completion when stdin and
// stdout are terminals, and a plain line scanner otherwise.
func NewInput() apply.LineReader {
	if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		return NewPromptReader(afero.NewOsFs())
	}
	return NewScannerReader(os.Stdin, Stdout)
}

// ScannerReader reads lines from a plain stream such as a pipe.
type ScannerReader struct {
	out     io.Writer
	scanner *bufio.Scanner
}

// NewScannerReader creates a reader that prints prompts to out.
func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	return &ScannerReader{out: out, scanner: bufio.NewScanner(in)}
}

// ReadLine prints prompt and returns the next line without its line ending.
// It returns io.EOF when the input is exhausted.
func (r *ScannerReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(r.scanner.Text(), "\r"), nil
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// answerSuggestions complete the apply question.
var answerSuggestions = []prompt.Suggest{
	{Text: "yes", Description: "apply the code block"},
	{Text: "skip", Description: "leave it alone"},
	{Text: "o", Description: "enter another output path"},
}

// PromptReader reads lines with go-prompt. Path questions complete file
// names; other questions complete the yes/skip/o answers.
type PromptReader struct {
	fs          afero.Fs
	pathMode    bool
	interrupted bool
}

// NewPromptReader creates a reader completing paths from fs.
func NewPromptReader(fs afero.Fs) *PromptReader {
	return &PromptReader{fs: fs}
}

// ReadLine prints every line of prompt except the last and uses the last
// one as the input prefix.
func (r *PromptReader) ReadLine(text string) (string, error) {
	head, prefix := splitPrompt(text)
	if head != "" {
		fmt.Fprint(Stdout, head)
	}

	plain := ansiPattern.ReplaceAllString(prefix, "")
	r.pathMode = isPathPrompt(plain)
	r.interrupted = false

	p := prompt.New(
		func(string) {},
		prompt.WithPrefix(plain),
		prompt.WithPrefixTextColor(prompt.White),
		prompt.WithCompleter(r.complete),
		prompt.WithSuggestionBGColor(prompt.DarkBlue),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithMaxSuggestion(10),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				r.interrupted = true
				return false
			},
		}),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return r.interrupted || breakline
		}),
	)

	line := p.Input()
	if r.interrupted {
		return "", ErrInterrupted
	}
	return line, nil
}

func (r *PromptReader) complete(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	endIndex := d.CurrentRuneIndex()
	if r.pathMode {
		word := d.TextBeforeCursor()
		startIndex := endIndex - istrings.RuneCountInString(word)
		return CompletePath(r.fs, word), startIndex, endIndex
	}

	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)
	return prompt.FilterHasPrefix(answerSuggestions, w, true), startIndex, endIndex
}

// CompletePath suggests directory entries that extend partial. Directories
// get a trailing separator; hidden entries appear only once partial names
// them with a leading dot.
func CompletePath(fs afero.Fs, partial string) []prompt.Suggest {
	dir, base := filepath.Split(partial)
	listDir := dir
	if listDir == "" {
		listDir = "."
	}

	entries, err := afero.ReadDir(fs, listDir)
	if err != nil {
		return nil
	}

	var suggestions []prompt.Suggest
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		text := dir + name
		desc := "file"
		if entry.IsDir() {
			text += string(filepath.Separator)
			desc = "directory"
		}
		suggestions = append(suggestions, prompt.Suggest{Text: text, Description: desc})
	}
	return suggestions
}

func splitPrompt(text string) (head, last string) {
	i := strings.LastIndex(text, "\n")
	if i < 0 {
		return "", text
	}
	return text[:i+1], text[i+1:]
}

func isPathPrompt(plain string) bool {
	return strings.HasSuffix(strings.TrimSpace(plain), "path:")
}
