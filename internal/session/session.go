// Package session runs the interactive translate loop: read a line, fan it
// out to every configured language, print the results and record them in the
// history file.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/valpere/multitran/internal"
	"github.com/valpere/multitran/internal/console"
	"github.com/valpere/multitran/internal/translator"
)

// Whitespace policies for input made only of blanks.
const (
	WhitespaceReject = "reject"
	WhitespaceAccept = "accept"
)

const DefaultExitKeyword = "exit"

type Dispatcher interface {
	Dispatch(ctx context.Context, text string, codes []string) internal.Translations
}

type History interface {
	Append(entry internal.HistoryEntry) error
	Display(w io.Writer, langs translator.Languages) error
}

type Config struct {
	Languages   []string
	ExitKeyword string
	Whitespace  string
}

type Session struct {
	in         *bufio.Reader
	readErr    error
	out        io.Writer
	dispatcher Dispatcher
	history    History
	langs      translator.Languages
	config     Config
}

func New(in io.Reader, out io.Writer, d Dispatcher, h History, langs translator.Languages, config Config) *Session {
	if config.ExitKeyword == "" {
		config.ExitKeyword = DefaultExitKeyword
	}
	if config.Whitespace == "" {
		config.Whitespace = WhitespaceReject
	}
	return &Session{
		in:         bufio.NewReader(in),
		out:        out,
		dispatcher: d,
		history:    h,
		langs:      langs,
		config:     config,
	}
}

// Run loops until the exit keyword, end of input or a cancelled context.
// Translation and history failures are reported and the loop goes on.
func (s *Session) Run(ctx context.Context) error {
	names := make([]string, 0, len(s.config.Languages))
	for _, code := range s.config.Languages {
		names = append(names, s.langs.Name(code))
	}
	fmt.Fprintf(s.out, "Translating into: %s\n", strings.Join(names, ", "))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, console.Prompt(fmt.Sprintf("Enter text to translate (or '%s' to quit): ", s.config.ExitKeyword)))
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			return s.readErr
		}

		if strings.EqualFold(strings.TrimSpace(line), s.config.ExitKeyword) {
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		}

		text, valid := s.normalize(line)
		if !valid {
			fmt.Fprintln(s.out, console.Error("Error: text must not be empty."))
			continue
		}

		s.translate(ctx, text)

		fmt.Fprint(s.out, console.Prompt("Show translation history? (y/n): "))
		answer, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			return s.readErr
		}
		if strings.EqualFold(strings.TrimSpace(answer), "y") {
			if err := s.history.Display(s.out, s.langs); err != nil {
				fmt.Fprintln(s.out, console.Error(fmt.Sprintf("Error: could not display translation history: %v", err)))
			}
		}
	}
}

func (s *Session) translate(ctx context.Context, text string) {
	results := s.dispatcher.Dispatch(ctx, text, s.config.Languages)

	for _, code := range results.Codes() {
		if out, ok := results.Get(code); ok {
			fmt.Fprintf(s.out, "%s: %s\n", console.Language(s.langs.Name(code)), out)
		}
	}

	entry := internal.HistoryEntry{Original: text, Translations: results}
	if err := s.history.Append(entry); err != nil {
		fmt.Fprintln(s.out, console.Error(fmt.Sprintf("Error: could not save translation history: %v", err)))
	}
}

// normalize applies the whitespace policy and reports whether the input can be
// translated.
func (s *Session) normalize(line string) (string, bool) {
	if s.config.Whitespace == WhitespaceAccept {
		return line, line != ""
	}
	text := strings.TrimSpace(line)
	return text, text != ""
}

// readLine returns the next input line without its line ending. Lines have
// no length limit. A final line without a newline is still returned.
func (s *Session) readLine() (string, bool) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			s.readErr = err
		}
		if line == "" || s.readErr != nil {
			return "", false
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), true
}
