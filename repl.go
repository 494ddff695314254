package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/takoeight0821/lox/driver"
	"github.com/takoeight0821/lox/eval"
)

// quitCommand ends the prompt, as does an empty line.
const quitCommand = "/q"

// RunPrompt reads lines until an empty line, /q or EOF, and runs each one.
// History is kept in the configured history file.
func RunPrompt(s *session, stdout, stderr io.Writer) error {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	history := s.cfg.HistoryFile
	defer func() {
		if history != "" {
			saveHistory(s, line, history)
		}
		line.Close()
	}()

	if history != "" {
		if f, err := os.Open(history); err == nil {
			if _, err := line.ReadHistory(f); err != nil {
				s.logger.Warn("read history", "path", history, "error", err)
			}
			f.Close()
		}
	}

	r := driver.NewRunner(stdout, s.logger)
	for {
		input, err := line.Prompt(s.cfg.Prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" || input == quitCommand {
			return nil
		}
		line.AppendHistory(input)

		if err := r.Run(input); err != nil {
			report(stderr, err, s.cfg.Color)
			var fatal *eval.FatalError
			if errors.As(err, &fatal) {
				return &exitError{code: exitSoftware, err: err}
			}
		}
	}
}

func saveHistory(s *session, line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		s.logger.Warn("create history directory", "path", path, "error", err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		s.logger.Warn("create history file", "path", path, "error", err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		s.logger.Warn("write history", "path", path, "error", err)
	}
}
