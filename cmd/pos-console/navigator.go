package main

import (
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/jrsteele09/pos-console/router"
)

var navColor = color.New(color.FgCyan, color.Bold)

// consoleNavigator prints navigation events and remembers where the console is.
type consoleNavigator struct {
	out      io.Writer
	mu       sync.Mutex
	location string
	history  []string
}

func newConsoleNavigator(out io.Writer) *consoleNavigator {
	return &consoleNavigator{out: out, location: router.RouteRoot}
}

func (n *consoleNavigator) Navigate(path string) {
	n.mu.Lock()
	n.location = path
	n.history = append(n.history, path)
	n.mu.Unlock()

	navColor.Fprintf(n.out, "=> %s\n", path)
}

func (n *consoleNavigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

func (n *consoleNavigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.history...)
}
