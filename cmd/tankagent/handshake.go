package main

import (
	"errors"
	"fmt"

	"github.com/hexclash/tankagent/internal/lineio"
	"github.com/hexclash/tankagent/internal/parser"
	"github.com/hexclash/tankagent/internal/player"
)

// ErrAllClassesRefused is returned when the server rejects every unit class.
var ErrAllClassesRefused = errors.New("server refused every unit class")

// readStart waits for the START line. Lines before it are skipped.
func readStart(r lineio.Reader) (parser.Start, error) {
	for {
		line, err := r.ReadLine()
		if err != nil {
			return parser.Start{}, fmt.Errorf("waiting for START: %w", err)
		}
		tokens := parser.Tokens(line)
		if parser.Classify(tokens) != parser.TagStart {
			continue
		}
		return parser.ParseStart(line)
	}
}

// classOrder puts preferred first and keeps the fallback order for the rest.
func classOrder(preferred player.Class) []player.Class {
	order := []player.Class{preferred}
	for _, c := range player.Classes {
		if c != preferred {
			order = append(order, c)
		}
	}
	return order
}

// handshake announces the unit class with IAM until the server answers OK.
func handshake(r lineio.Reader, w lineio.Writer, preferred player.Class) (player.Class, error) {
	for _, c := range classOrder(preferred) {
		if err := w.WriteLine("IAM " + c.Letter()); err != nil {
			return c, fmt.Errorf("sending IAM: %w", err)
		}
		line, err := r.ReadLine()
		if err != nil {
			return c, fmt.Errorf("waiting for IAM reply: %w", err)
		}
		if parser.Classify(parser.Tokens(line)) == parser.TagOK {
			return c, nil
		}
	}
	return preferred, ErrAllClassesRefused
}
