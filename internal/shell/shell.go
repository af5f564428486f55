package shell

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/samber/lo"
)

// Shell is a readline front end for a Controller.
type Shell struct {
	l    *readline.Instance
	ctrl *Controller
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// New creates a shell. historyFile may be empty to disable history.
func New(historyFile string, logger *log.Logger) (*Shell, error) {
	ctrl, err := NewController(logger)
	if err != nil {
		return nil, err
	}

	items := lo.Map(CommandNames(), func(name string, _ int) readline.PrefixCompleterInterface {
		return readline.PcItem(name)
	})
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36mgems>\033[0m ",
		HistoryFile:     historyFile,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	return &Shell{l: l, ctrl: ctrl}, nil
}

// Loop reads commands until exit, Ctrl-D or Ctrl-C on an empty line.
func (s *Shell) Loop() error {
	defer s.l.Close()

	out, _ := s.ctrl.Execute("show")
	io.WriteString(s.l.Stdout(), out)

	for {
		line, err := s.l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		out, err := s.ctrl.Execute(strings.TrimSpace(line))
		if errors.Is(err, ErrExit) {
			return nil
		}
		if err != nil {
			io.WriteString(s.l.Stderr(), "Error: "+err.Error()+"\n")
			continue
		}
		if out != "" {
			io.WriteString(s.l.Stdout(), strings.TrimSuffix(out, "\n")+"\n")
		}
	}
}
