package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dreadhollow/internal/audio"
	"github.com/samdwyer/dreadhollow/internal/gamedata"
	"github.com/samdwyer/dreadhollow/internal/level"
	"github.com/samdwyer/dreadhollow/internal/prefs"
	"github.com/samdwyer/dreadhollow/internal/settings"
	"github.com/samdwyer/dreadhollow/internal/telemetry"
	"github.com/samdwyer/dreadhollow/internal/ui"
)

// maxStep caps the real time a single tick may simulate, so a stalled
// terminal does not fast-forward the level.
const maxStep = 0.25

const levelControls = "[arrows] move  [e] use  [p] pause  [q] quit"

// Deps are the services main builds and hands to the game.
type Deps struct {
	Store    prefs.Store
	Settings *settings.Settings
	Audio    audio.Player
	Levels   *gamedata.LevelRegistry
	Enemies  *gamedata.EnemyRegistry
	// Watcher is optional; its updates replace Levels between scenes.
	Watcher *gamedata.LevelWatcher
}

// Game holds the entire game state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	panels   *ui.Panels
	session  *Session
	settings *settings.Settings
	audio    audio.Player
	levels   *gamedata.LevelRegistry
	enemies  *gamedata.EnemyRegistry
	watcher  *gamedata.LevelWatcher
	rng      *rand.Rand

	stage   *Stage
	input   Input
	cursor  int
	message string
	running bool
	closed  bool
}

// New creates a new game instance on the terminal.
func New(cfg Config, deps Deps) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return newGame(cfg, deps, screen)
}

func newGame(cfg Config, deps Deps, screen *ui.Screen) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Levels == nil || deps.Enemies == nil {
		return nil, fmt.Errorf("level and enemy data are required")
	}
	if deps.Store == nil {
		deps.Store = prefs.NewMemory()
	}
	if deps.Settings == nil {
		deps.Settings = settings.Load(deps.Store)
	}
	if deps.Audio == nil {
		deps.Audio = audio.Nop{}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	panels := ui.NewPanels()
	g := &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		panels:   panels,
		settings: deps.Settings,
		audio:    deps.Audio,
		levels:   deps.Levels,
		enemies:  deps.Enemies,
		watcher:  deps.Watcher,
		rng:      rand.New(rand.NewSource(seed)),
		running:  true,
	}
	g.session = NewSession(SessionOptions{
		Store:     deps.Store,
		Presenter: panels,
		Audio:     deps.Audio,
		Tracer:    telemetry.Tracer("game"),
	})
	g.renderer.SetBrightness(g.settings.Brightness())
	return g, nil
}

// Session returns the orchestrator.
func (g *Game) Session() *Session { return g.session }

// Stage returns the level being played, nil on menus.
func (g *Game) Stage() *Stage { return g.stage }

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	// Initialize game (traced)
	initCtx, initSpan := tracer.Start(ctx, "game.init")
	start := g.cfg.Scene()
	if !g.session.Selectable(start) {
		initSpan.SetAttributes(attribute.String("warning", "start scene locked, using main menu"))
		start = SceneMainMenu
	}
	if err := g.LoadScene(initCtx, start); err != nil {
		initSpan.RecordError(err)
		g.LoadScene(initCtx, SceneMainMenu)
	}
	initSpan.SetAttributes(
		attribute.String("start_scene", start.String()),
		attribute.Int("tick_rate", g.cfg.TickRate),
		attribute.Int("level_reached", g.session.LevelReached()),
	)
	initSpan.End()

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go g.pollEvents(events, done)

	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.TickRate))
	defer ticker.Stop()

	var updates <-chan *gamedata.LevelRegistry
	var watchErrs <-chan error
	if g.watcher != nil {
		updates = g.watcher.Updates
		watchErrs = g.watcher.Errors
	}

	// Main game loop
	last := time.Now()
	for g.running {
		g.render()

		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ctx, ev)
		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), maxStep)
			last = now
			g.tick(ctx, dt)
		case reg, ok := <-updates:
			if !ok {
				updates = nil
				break
			}
			g.levels = reg
			g.message = "level data reloaded"
		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				break
			}
			log.Printf("Warning: level data reload failed: %v", err)
			g.message = "level data reload failed"
		}
	}

	// Cleanup
	g.Close()
	return nil
}

func (g *Game) pollEvents(out chan<- tcell.Event, done <-chan struct{}) {
	defer close(out)
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// tick advances the current level by dt seconds of real time.
func (g *Game) tick(ctx context.Context, dt float64) {
	in := g.input
	g.input = Input{}
	if g.stage == nil {
		return
	}
	g.stage.Step(ctx, g.session, dt, in, g.audio)
}

// LoadScene tears down the current scene and enters scene. Level scenes
// build a fresh stage from the current level data.
func (g *Game) LoadScene(ctx context.Context, scene Scene) error {
	if !scene.Valid() {
		return fmt.Errorf("unknown scene %d", scene)
	}
	g.teardownStage()
	g.panels.Reset()
	g.input = Input{}
	g.cursor = 0

	if !scene.IsLevel() {
		g.session.EnterScene(ctx, scene, nil)
		return nil
	}

	def := g.levels.GetByID(scene.LevelID())
	if def == nil {
		g.session.EnterScene(ctx, SceneMainMenu, nil)
		return fmt.Errorf("no level data for scene %s", scene)
	}
	stage, err := BuildStage(ctx, def, StageDeps{
		Session: g.session,
		Enemies: g.enemies,
		Audio:   g.audio,
		Rand:    g.rng,
	})
	if err != nil {
		g.session.EnterScene(ctx, SceneMainMenu, nil)
		return err
	}
	g.stage = stage
	g.session.EnterScene(ctx, scene, stage.Level)
	return nil
}

// Retry re-enters the current scene.
func (g *Game) Retry(ctx context.Context) error {
	return g.LoadScene(ctx, g.session.Scene())
}

func (g *Game) teardownStage() {
	if g.stage != nil {
		g.stage.Teardown()
		g.stage = nil
	}
}

func (g *Game) loadOrReport(ctx context.Context, scene Scene) {
	if err := g.LoadScene(ctx, scene); err != nil {
		g.message = err.Error()
	}
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input for the current scene.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		g.running = false
		return
	}
	g.message = ""

	scene := g.session.Scene()
	switch {
	case scene.IsLevel():
		g.handleLevelKey(ctx, ev)
	case scene.IsInfo():
		g.handleInfoKey(ctx, ev)
	case scene == SceneSettings:
		g.handleSettingsKey(ctx, ev)
	case scene == SceneOptions:
		g.handleOptionsKey(ctx, ev)
	default:
		g.handleMainMenuKey(ctx, ev)
	}
}

func (g *Game) handleLevelKey(ctx context.Context, ev *tcell.EventKey) {
	switch g.session.State() {
	case StateComplete:
		switch {
		case ev.Key() == tcell.KeyEnter:
			g.loadOrReport(ctx, SceneOptions)
		case isRune(ev, 'r'):
			if err := g.Retry(ctx); err != nil {
				g.message = err.Error()
			}
		case isRune(ev, 'q'):
			g.loadOrReport(ctx, SceneMainMenu)
		}
		return
	case StatePaused:
		switch {
		case ev.Key() == tcell.KeyEscape, isRune(ev, 'p'):
			g.session.Resume(ctx)
		case isRune(ev, 'm'), isRune(ev, 'q'):
			g.loadOrReport(ctx, SceneMainMenu)
		}
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		g.session.Pause(ctx)
	case tcell.KeyUp:
		g.input.DX, g.input.DY = 0, -1
	case tcell.KeyDown:
		g.input.DX, g.input.DY = 0, 1
	case tcell.KeyLeft:
		g.input.DX, g.input.DY = -1, 0
	case tcell.KeyRight:
		g.input.DX, g.input.DY = 1, 0
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'e', 'E', ' ':
			g.input.Interact = true
		case 'p', 'P':
			g.session.Pause(ctx)
		case 'q', 'Q':
			g.loadOrReport(ctx, SceneMainMenu)
		}
	}
}

func (g *Game) handleInfoKey(ctx context.Context, ev *tcell.EventKey) {
	switch {
	case ev.Key() == tcell.KeyEnter:
		g.loadOrReport(ctx, g.session.Scene().Level())
	case ev.Key() == tcell.KeyEscape, isRune(ev, 'q'):
		g.loadOrReport(ctx, SceneOptions)
	}
}

var mainMenuItems = []string{"Play", "Settings", "Quit"}

func (g *Game) handleMainMenuKey(ctx context.Context, ev *tcell.EventKey) {
	if g.moveCursor(ev, len(mainMenuItems)) {
		return
	}
	switch {
	case ev.Key() == tcell.KeyEnter:
		switch g.cursor {
		case 0:
			g.loadOrReport(ctx, SceneOptions)
		case 1:
			g.loadOrReport(ctx, SceneSettings)
		default:
			g.running = false
		}
	case ev.Key() == tcell.KeyEscape, isRune(ev, 'q'):
		g.running = false
	}
}

func (g *Game) handleOptionsKey(ctx context.Context, ev *tcell.EventKey) {
	if g.moveCursor(ev, len(LevelScenes)) {
		return
	}
	switch {
	case ev.Key() == tcell.KeyEnter:
		info := LevelScenes[g.cursor].Info()
		if !g.session.Selectable(info) {
			g.message = "locked"
			return
		}
		g.loadOrReport(ctx, info)
	case ev.Key() == tcell.KeyEscape, isRune(ev, 'q'):
		g.loadOrReport(ctx, SceneMainMenu)
	}
}

const (
	settingVolume = iota
	settingMute
	settingBrightness
	settingLanguage
	settingBack
	settingCount
)

const settingStep = 0.1

func (g *Game) handleSettingsKey(ctx context.Context, ev *tcell.EventKey) {
	if g.moveCursor(ev, settingCount) {
		return
	}
	s := g.settings
	var err error
	switch ev.Key() {
	case tcell.KeyLeft, tcell.KeyRight:
		delta := settingStep
		if ev.Key() == tcell.KeyLeft {
			delta = -delta
		}
		switch g.cursor {
		case settingVolume:
			err = s.SetVolume(s.Volume() + delta)
		case settingBrightness:
			err = s.SetBrightness(s.Brightness() + delta)
			g.renderer.SetBrightness(s.Brightness())
		case settingLanguage:
			err = s.NextLanguage()
		}
	case tcell.KeyEnter:
		switch g.cursor {
		case settingMute:
			err = s.ToggleMute()
		case settingLanguage:
			err = s.NextLanguage()
		case settingBack:
			g.loadOrReport(ctx, SceneMainMenu)
		}
	case tcell.KeyEscape:
		g.loadOrReport(ctx, SceneMainMenu)
	}
	if err != nil {
		g.message = "could not save settings: " + err.Error()
	}
}

// moveCursor handles up and down in menus and reports whether the key was
// consumed.
func (g *Game) moveCursor(ev *tcell.EventKey, n int) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		g.cursor = (g.cursor + n - 1) % n
		return true
	case tcell.KeyDown:
		g.cursor = (g.cursor + 1) % n
		return true
	}
	return false
}

func isRune(ev *tcell.EventKey, r rune) bool {
	if ev.Key() != tcell.KeyRune {
		return false
	}
	c := ev.Rune()
	return c == r || (r >= 'a' && r <= 'z' && c == r-'a'+'A')
}

// render draws the current scene.
func (g *Game) render() {
	scene := g.session.Scene()
	switch {
	case scene.IsLevel() && g.stage != nil:
		g.renderer.RenderLevel(g.levelView(), g.panels)
	case scene.IsInfo():
		g.renderInfo(scene)
	case scene == SceneSettings:
		g.renderer.RenderMenu(g.settingsMenu())
	case scene == SceneOptions:
		g.renderer.RenderMenu(g.optionsMenu())
	default:
		g.renderer.RenderMenu(g.mainMenu())
	}
}

func (g *Game) levelView() ui.View {
	st := g.stage
	lvl := g.session.Level()
	var hud level.HUD
	var kind level.Kind
	if lvl != nil {
		hud = lvl.HUD()
		kind = lvl.Kind()
	}
	controls := levelControls
	if g.message != "" {
		controls = g.message
	}
	return ui.View{
		Title:      st.Def.Name,
		Map:        st.Map,
		FloorColor: st.Def.FloorColor(),
		Player:     st.Player,
		Enemies:    st.Enemies,
		Triggers:   st.Triggers.All(),
		Visible:    st.Visible,
		Kind:       kind,
		HUD:        hud,
		Lights:     st.LightsOn,
		Controls:   controls,
	}
}

func (g *Game) renderInfo(scene Scene) {
	def := g.levels.GetByID(scene.LevelID())
	if def == nil {
		g.renderer.RenderText(scene.String(), []string{"No level data.", "", "[esc] back"})
		return
	}
	goal := fmt.Sprintf("Collect %d %s before time runs out.", def.Required, def.ItemKind)
	if level.Kind(def.Kind) == level.KindSurvival {
		goal = "Stay alive until time runs out."
	}
	g.renderer.RenderText(def.Name, []string{
		def.Briefing,
		"",
		goal,
		fmt.Sprintf("Time limit: %s", level.FormatTime(def.LimitTime)),
		"",
		"[enter] start  [esc] back",
	})
}

func (g *Game) mainMenu() ui.Menu {
	items := make([]ui.MenuItem, len(mainMenuItems))
	for i, label := range mainMenuItems {
		items[i] = ui.MenuItem{Label: label}
	}
	return ui.Menu{
		Title:  "DREAD HOLLOW",
		Items:  items,
		Cursor: g.cursor,
		Footer: g.footer("[up/down] choose  [enter] select  [q] quit"),
	}
}

func (g *Game) optionsMenu() ui.Menu {
	items := make([]ui.MenuItem, len(LevelScenes))
	for i, scene := range LevelScenes {
		label := scene.String()
		if def := g.levels.GetByID(scene.LevelID()); def != nil {
			label = def.Name
		}
		items[i] = ui.MenuItem{Label: label, Disabled: !g.session.Selectable(scene.Info())}
	}
	return ui.Menu{
		Title:  "SELECT LEVEL",
		Items:  items,
		Cursor: g.cursor,
		Footer: g.footer("[enter] play  [esc] back"),
	}
}

func (g *Game) settingsMenu() ui.Menu {
	s := g.settings
	mute := "off"
	if s.Muted() {
		mute = "on"
	}
	items := make([]ui.MenuItem, settingCount)
	items[settingVolume] = ui.MenuItem{Label: "Volume", Value: fmt.Sprintf("%.0f%%", s.Volume()*100)}
	items[settingMute] = ui.MenuItem{Label: "Mute", Value: mute}
	items[settingBrightness] = ui.MenuItem{Label: "Brightness", Value: fmt.Sprintf("%.0f%%", s.Brightness()*100)}
	items[settingLanguage] = ui.MenuItem{Label: "Language", Value: s.LanguageName()}
	items[settingBack] = ui.MenuItem{Label: "Back"}
	return ui.Menu{
		Title:  "SETTINGS",
		Items:  items,
		Cursor: g.cursor,
		Footer: g.footer("[left/right] adjust  [enter] toggle  [esc] back"),
	}
}

func (g *Game) footer(help string) []string {
	if g.message != "" {
		return []string{help, g.message}
	}
	return []string{help}
}

// Close cleans up game resources. It is safe to call more than once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.teardownStage()
	g.session.Close()
	if g.screen != nil {
		g.screen.Close()
	}
}
