// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/jcdock-demo/main.go
// Summary: Minimal runnable wiring of the docking framework.
// Usage: go run ./cmd/jcdock-demo

package main

import (
	"flag"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/JustiSoft/jcdock/config"
	"github.com/JustiSoft/jcdock/dock"
	"github.com/JustiSoft/jcdock/registry"
	"github.com/JustiSoft/jcdock/store"
)

func main() {
	layoutName := flag.String("layout", "", "named layout to restore on startup")
	flag.Parse()

	logFile, err := os.OpenFile("jcdock-demo.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	cfg := config.System()
	if err := config.Err(); err != nil {
		log.Printf("config: %v", err)
	}

	reg := registry.New()
	mustRegister(reg, "demo.notes", "Notes", func() dock.Widget { return newTextWidget("Notes", notesBody) })
	mustRegister(reg, "demo.outline", "Outline", func() dock.Widget { return newTextWidget("Outline", outlineBody) })
	mustRegister(reg, "demo.clock", "Clock", func() dock.Widget { return newClockWidget() })

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}

	mgr := dock.NewManager(dock.NewTcellScreenDriver(screen), dock.Options{
		Resolver:              reg,
		MinWindowWidth:        cfg.GetInt("windows", "min_width", 16),
		MinWindowHeight:       cfg.GetInt("windows", "min_height", 5),
		DefaultFloatingWidth:  cfg.GetInt("windows", "default_floating_width", 48),
		DefaultFloatingHeight: cfg.GetInt("windows", "default_floating_height", 14),
		CascadeStep:           cfg.GetInt("windows", "cascade_step", 2),
	})
	if err := mgr.Init(); err != nil {
		log.Fatalf("init: %v", err)
	}
	mgr.CreateMainWindow("jcdock demo")

	dbPath, err := config.LayoutDBPath()
	var layouts *store.Store
	if err == nil {
		layouts, err = store.Open(dbPath)
	}
	if err != nil {
		log.Printf("layout store unavailable: %v", err)
	}

	restored := false
	if layouts != nil && *layoutName != "" {
		if data, ok, err := layouts.Get(*layoutName); err != nil {
			log.Printf("load layout %q: %v", *layoutName, err)
		} else if ok {
			if err := mgr.LoadLayout(data); err != nil {
				log.Printf("restore layout %q: %v", *layoutName, err)
			} else {
				restored = true
			}
		}
	}
	if !restored {
		seed(mgr, reg)
	}

	if err := mgr.Run(); err != nil {
		log.Printf("run: %v", err)
	}

	if layouts != nil && cfg.GetBool("layout", "autosave", true) {
		name := cfg.GetString("layout", "autosave_name", "last-session")
		if data, err := mgr.SaveLayout(); err != nil {
			log.Printf("autosave: %v", err)
		} else if err := layouts.Put(name, data); err != nil {
			log.Printf("autosave: %v", err)
		}
		layouts.Close()
	}
}

func mustRegister(reg *registry.Registry, key, title string, f registry.WidgetFactory) {
	if err := reg.Register(key, title, f); err != nil {
		log.Fatalf("register %s: %v", key, err)
	}
}

// seed builds the initial demo layout: notes docked in the main window,
// a clock floating on top.
func seed(mgr *dock.Manager, reg *registry.Registry) {
	notes, _, err := reg.Create("demo.notes")
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	outline, _, err := reg.Create("demo.outline")
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	clockW, _, err := reg.Create("demo.clock")
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	pNotes := dock.NewPanel("demo.notes", notes)
	pOutline := dock.NewPanel("demo.outline", outline)
	pClock := dock.NewPanel("demo.clock", clockW)

	mgr.CreateFloating(dock.Rect{}, pNotes)
	if err := mgr.MoveToWindow(pNotes, mgr.MainWindow()); err != nil {
		log.Printf("seed: %v", err)
	}
	mgr.CreateFloating(dock.Rect{}, pOutline)
	if err := mgr.DockPanel(pOutline, pNotes, dock.DockRight); err != nil {
		log.Printf("seed: %v", err)
	}
	mgr.CreateFloating(dock.Rect{X: 10, Y: 3, W: 30, H: 8}, pClock)
}
