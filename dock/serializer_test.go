// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/serializer_test.go
// Summary: Tests for layout save/load, widget state capture and restore.

package dock

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// statefulWidget is a fakeWidget that also round-trips a state map.
type statefulWidget struct {
	fakeWidget
	state map[string]any
}

func (w *statefulWidget) CaptureState() (map[string]any, error) {
	return w.state, nil
}

func (w *statefulWidget) RestoreState(s map[string]any) error {
	w.state = s
	return nil
}

// panickyWidget blows up during capture; the save must survive it.
type panickyWidget struct {
	fakeWidget
}

func (w *panickyWidget) CaptureState() (map[string]any, error) {
	panic("capture gone wrong")
}

// countingResolver builds widgets on demand and counts constructions
// per persistent ID.
type countingResolver struct {
	built map[string]int
	fail  map[string]bool
}

func newCountingResolver() *countingResolver {
	return &countingResolver{built: make(map[string]int), fail: make(map[string]bool)}
}

func (r *countingResolver) Create(key string) (Widget, string, error) {
	if r.fail[key] {
		return nil, "", errors.New("no such widget")
	}
	r.built[key]++
	if strings.HasPrefix(key, "stateful.") {
		return &statefulWidget{fakeWidget: fakeWidget{title: key}}, key, nil
	}
	return newFakeWidget(key), key, nil
}

func newSerializerManager(t *testing.T, r *countingResolver) (*Manager, *trackingLifecycle) {
	t.Helper()
	lc := &trackingLifecycle{}
	m := NewManager(&stubScreenDriver{}, Options{Theme: testTheme(), Resolver: r, Lifecycle: lc})
	if err := m.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	m.CreateMainWindow("main")
	return m, lc
}

// hostInMain floats the panel, then docks it into the main window.
func hostInMain(t *testing.T, m *Manager, p *Panel) {
	t.Helper()
	m.CreateFloating(Rect{X: 2, Y: 2, W: 40, H: 12}, p)
	if err := m.MoveToWindow(p, m.MainWindow()); err != nil {
		t.Fatalf("move %q to main failed: %v", p.PersistentID, err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	resolver := newCountingResolver()
	m, lc := newSerializerManager(t, resolver)

	pa := NewPanel("a", &statefulWidget{fakeWidget: fakeWidget{title: "a"}, state: map[string]any{"line": "42"}})
	pb := NewPanel("b", newFakeWidget("b"))
	pc := NewPanel("c", newFakeWidget("c"))
	hostInMain(t, m, pa)
	m.CreateFloating(Rect{X: 60, Y: 2, W: 40, H: 12}, pb)
	if err := m.DockPanel(pb, pa, DockRight); err != nil {
		t.Fatalf("dock failed: %v", err)
	}
	m.CreateFloating(Rect{X: 10, Y: 10, W: 48, H: 14}, pc)

	data, err := m.SaveLayout()
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var f layoutFile
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("save produced invalid JSON: %v", err)
	}
	if f.Version != layoutVersion || len(f.Windows) != 2 {
		t.Fatalf("got version %d with %d windows", f.Version, len(f.Windows))
	}
	if !f.Windows[0].IsMainWindow {
		t.Fatalf("stacking order must put the main window first")
	}
	if f.Windows[0].Content.Type != "splitter" {
		t.Fatalf("main root must serialize as a splitter, got %q", f.Windows[0].Content.Type)
	}

	if err := m.LoadLayout(data); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := len(m.Windows()); got != 2 {
		t.Fatalf("load rebuilt %d windows, want 2", got)
	}
	names := make(map[string]bool)
	for _, p := range m.AllPanels() {
		names[p.PersistentID] = true
	}
	for _, id := range []string{"a", "b", "c"} {
		if !names[id] {
			t.Fatalf("panel %q missing after load", id)
		}
	}
	// the old widgets must be stopped and the rebuilt ones started
	if len(lc.stopped) < 3 {
		t.Fatalf("expected every original widget stopped, got %d", len(lc.stopped))
	}
	if len(lc.started) < 6 {
		t.Fatalf("expected rebuilt widgets started, got %d total starts", len(lc.started))
	}
}

func TestSaveCapturesWidgetState(t *testing.T) {
	resolver := newCountingResolver()
	m, _ := newSerializerManager(t, resolver)

	pw := NewPanel("stateful.notes", &statefulWidget{state: map[string]any{"scroll": float64(7)}})
	hostInMain(t, m, pw)

	data, err := m.SaveLayout()
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := m.LoadLayout(data); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	p, ok := m.FindPanelByID("stateful.notes")
	if !ok {
		t.Fatalf("panel missing after load")
	}
	sw, ok := p.Widget.(*statefulWidget)
	if !ok {
		t.Fatalf("resolver built %T, want statefulWidget", p.Widget)
	}
	if sw.state["scroll"] != float64(7) {
		t.Fatalf("state lost in round trip: %#v", sw.state)
	}
}

func TestRegisteredHandlersServePlainWidgets(t *testing.T) {
	resolver := newCountingResolver()
	m, _ := newSerializerManager(t, resolver)

	saved := map[string]any{"filter": "errors"}
	var restored map[string]any
	m.RegisterStateHandlers("b",
		func() (map[string]any, error) { return saved, nil },
		func(s map[string]any) error { restored = s; return nil },
	)

	pb := NewPanel("b", newFakeWidget("b"))
	hostInMain(t, m, pb)

	data, err := m.SaveLayout()
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := m.LoadLayout(data); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if restored == nil || restored["filter"] != "errors" {
		t.Fatalf("registered restorer not invoked: %#v", restored)
	}
}

func TestPanickingCaptureIsContained(t *testing.T) {
	resolver := newCountingResolver()
	m, _ := newSerializerManager(t, resolver)

	bad := NewPanel("bad", &panickyWidget{})
	good := NewPanel("a", newFakeWidget("a"))
	hostInMain(t, m, bad)
	m.CreateFloating(Rect{X: 60, Y: 2, W: 40, H: 12}, good)
	if err := m.DockPanel(good, bad, DockCenter); err != nil {
		t.Fatalf("dock failed: %v", err)
	}

	data, err := m.SaveLayout()
	if err != nil {
		t.Fatalf("a panicking capturer must not fail the save: %v", err)
	}
	var f layoutFile
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	var widgets []*nodeRecord
	var walk func(*nodeRecord)
	walk = func(rec *nodeRecord) {
		if rec == nil {
			return
		}
		if rec.Type == "widget" {
			widgets = append(widgets, rec)
		}
		for _, c := range rec.Children {
			walk(c)
		}
	}
	walk(f.Windows[0].Content)
	if len(widgets) != 2 {
		t.Fatalf("both panels must survive the save, got %d", len(widgets))
	}
	for _, rec := range widgets {
		if rec.PersistentID == "bad" && rec.State != nil {
			t.Fatalf("panicking capturer must yield no state")
		}
	}
}

func TestLoadSkipsUnresolvableWidgets(t *testing.T) {
	resolver := newCountingResolver()
	m, _ := newSerializerManager(t, resolver)

	pa := NewPanel("a", newFakeWidget("a"))
	pb := NewPanel("b", newFakeWidget("b"))
	hostInMain(t, m, pa)
	m.CreateFloating(Rect{X: 5, Y: 5, W: 48, H: 14}, pb)

	data, err := m.SaveLayout()
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	resolver.fail["b"] = true
	if err := m.LoadLayout(data); err != nil {
		t.Fatalf("one unresolvable widget must not fail the load: %v", err)
	}
	if _, ok := m.FindPanelByID("b"); ok {
		t.Fatalf("unresolvable panel must be skipped")
	}
	if _, ok := m.FindPanelByID("a"); !ok {
		t.Fatalf("resolvable panel must still load")
	}
	// b's floating window collapses to nothing and must not linger
	if got := len(m.Windows()); got != 1 {
		t.Fatalf("empty window survived load, have %d windows", got)
	}
}

func TestLoadConstructsEachPersistentIDOnce(t *testing.T) {
	resolver := newCountingResolver()
	m, _ := newSerializerManager(t, resolver)

	pa := NewPanel("a", newFakeWidget("a"))
	pb := NewPanel("b", newFakeWidget("b"))
	hostInMain(t, m, pa)
	m.CreateFloating(Rect{X: 60, Y: 2, W: 40, H: 12}, pb)
	if err := m.DockPanel(pb, pa, DockBottom); err != nil {
		t.Fatalf("dock failed: %v", err)
	}

	data, err := m.SaveLayout()
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := m.LoadLayout(data); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	for id, n := range resolver.built {
		if n != 1 {
			t.Fatalf("widget %q constructed %d times", id, n)
		}
	}
}

func TestLoadKeepsPinnedRootAbsentFromRecords(t *testing.T) {
	resolver := newCountingResolver()
	m, _ := newSerializerManager(t, resolver)

	pa := NewPanel("a", newFakeWidget("a"))
	hostInMain(t, m, pa)
	data, err := m.SaveLayout()
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// the pinned root appears after the save; loading must not remove it
	pinned := m.CreatePinnedRoot("sidebar", Rect{X: 80, Y: 2, W: 30, H: 20})
	if err := m.LoadLayout(data); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	root, ok := m.model.Root(pinned)
	if !ok {
		t.Fatalf("pinned root removed from the model by load")
	}
	g, isGroup := root.(*TabGroupNode)
	if !isGroup || len(g.Children) != 0 {
		t.Fatalf("pinned root must be reset to an empty placeholder, got %T", root)
	}
	found := false
	for _, w := range m.Windows() {
		if w == pinned {
			found = true
		}
	}
	if !found {
		t.Fatalf("pinned root missing from the window stack")
	}
}

func TestLoadReusesLivePinnedRoot(t *testing.T) {
	resolver := newCountingResolver()
	m, _ := newSerializerManager(t, resolver)

	pinned := m.CreatePinnedRoot("sidebar", Rect{X: 80, Y: 2, W: 30, H: 20})
	pa := NewPanel("a", newFakeWidget("a"))
	m.CreateFloating(Rect{X: 2, Y: 2, W: 40, H: 12}, pa)
	if err := m.MoveToWindow(pa, pinned); err != nil {
		t.Fatalf("move to pinned failed: %v", err)
	}

	data, err := m.SaveLayout()
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := m.LoadLayout(data); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// the record matches the live pinned window, so it is reused, not rebuilt
	root, ok := m.model.Root(pinned)
	if !ok {
		t.Fatalf("pinned root not reused on load")
	}
	names := make(map[string]bool)
	for _, p := range PanelsUnder(root) {
		names[p.PersistentID] = true
	}
	if !names["a"] {
		t.Fatalf("pinned root content not restored into the live window")
	}
	count := 0
	for _, w := range m.Windows() {
		if w.PersistentRoot && w != m.MainWindow() {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("load duplicated the pinned root: %d pinned windows", count)
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	resolver := newCountingResolver()
	m, _ := newSerializerManager(t, resolver)

	data := []byte(fmt.Sprintf(`{"version": %d, "windows": []}`, layoutVersion+1))
	if err := m.LoadLayout(data); err == nil {
		t.Fatalf("future versions must be rejected")
	}
	if err := m.LoadLayout([]byte("{not json")); err == nil {
		t.Fatalf("malformed JSON must be rejected")
	}
}

func TestMaximizedWindowSavesNormalGeometry(t *testing.T) {
	resolver := newCountingResolver()
	m, _ := newSerializerManager(t, resolver)

	p := NewPanel("a", newFakeWidget("a"))
	normal := Rect{X: 8, Y: 4, W: 50, H: 16}
	w := m.CreateFloating(normal, p)
	w.setMaximized(true, m.screenRect)

	data, err := m.SaveLayout()
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	var f layoutFile
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	var rec *windowRecord
	for i := range f.Windows {
		if !f.Windows[i].IsMainWindow {
			rec = &f.Windows[i]
		}
	}
	if rec == nil || !rec.Maximized {
		t.Fatalf("maximized flag lost")
	}
	if fromRectRecord(rec.Geometry) != normal {
		t.Fatalf("maximized window must save its normal frame, got %+v", rec.Geometry)
	}

	if err := m.LoadLayout(data); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	var loaded *Window
	for _, lw := range m.Windows() {
		if lw != m.MainWindow() {
			loaded = lw
		}
	}
	if loaded == nil || !loaded.Maximized {
		t.Fatalf("maximized state lost in round trip")
	}
	if loaded.normalFrame != normal {
		t.Fatalf("normal frame lost, got %+v", loaded.normalFrame)
	}
}
