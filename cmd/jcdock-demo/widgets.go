// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/jcdock-demo/widgets.go
// Summary: Toy widgets used by the demo binary.

package main

import (
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/JustiSoft/jcdock/dock"
)

var notesBody = strings.Split(`Drag this window by its title bar.
Drop it on another panel to dock.
Drag a tab off its bar to tear it out.
Ctrl-Q quits.`, "\n")

var outlineBody = strings.Split(`1. Windows
2. Tabs
3. Splits
4. Layouts`, "\n")

// textWidget shows static lines of text.
type textWidget struct {
	title string
	lines []string
	cols  int
	rows  int
}

func newTextWidget(title string, lines []string) *textWidget {
	return &textWidget{title: title, lines: lines}
}

func (t *textWidget) Run() error                      { return nil }
func (t *textWidget) Stop()                           {}
func (t *textWidget) GetTitle() string                { return t.title }
func (t *textWidget) HandleKey(ev *tcell.EventKey)    {}
func (t *textWidget) SetRefreshNotifier(chan<- bool)  {}
func (t *textWidget) Resize(cols, rows int)           { t.cols, t.rows = max(cols, 1), max(rows, 1) }

func (t *textWidget) Render() [][]dock.Cell {
	buf := make([][]dock.Cell, t.rows)
	for y := range buf {
		buf[y] = make([]dock.Cell, t.cols)
		for x := range buf[y] {
			buf[y][x] = dock.Cell{Ch: ' '}
		}
		if y < len(t.lines) {
			for x, ch := range t.lines[y] {
				if x >= t.cols {
					break
				}
				buf[y][x] = dock.Cell{Ch: ch}
			}
		}
	}
	return buf
}

// clockWidget repaints itself once a second.
type clockWidget struct {
	mu      sync.Mutex
	cols    int
	rows    int
	refresh chan<- bool
	done    chan struct{}
}

func newClockWidget() *clockWidget {
	return &clockWidget{done: make(chan struct{})}
}

func (c *clockWidget) GetTitle() string             { return "Clock" }
func (c *clockWidget) HandleKey(ev *tcell.EventKey) {}

func (c *clockWidget) SetRefreshNotifier(ch chan<- bool) {
	c.mu.Lock()
	c.refresh = ch
	c.mu.Unlock()
}

func (c *clockWidget) Resize(cols, rows int) {
	c.mu.Lock()
	c.cols, c.rows = max(cols, 1), max(rows, 1)
	c.mu.Unlock()
}

func (c *clockWidget) Run() error {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for {
		select {
		case <-c.done:
			return nil
		case <-tick.C:
			c.mu.Lock()
			ch := c.refresh
			c.mu.Unlock()
			if ch != nil {
				select {
				case ch <- true:
				default:
				}
			}
		}
	}
}

func (c *clockWidget) Stop() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

func (c *clockWidget) Render() [][]dock.Cell {
	c.mu.Lock()
	cols, rows := c.cols, c.rows
	c.mu.Unlock()
	buf := make([][]dock.Cell, rows)
	for y := range buf {
		buf[y] = make([]dock.Cell, cols)
		for x := range buf[y] {
			buf[y][x] = dock.Cell{Ch: ' '}
		}
	}
	now := time.Now().Format("15:04:05")
	y := rows / 2
	x := (cols - len(now)) / 2
	for i, ch := range now {
		if x+i >= 0 && x+i < cols {
			buf[y][x+i] = dock.Cell{Ch: ch, Style: tcell.StyleDefault.Bold(true)}
		}
	}
	return buf
}
