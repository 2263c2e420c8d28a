package gui

import (
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/entropylab/internal/audio"
	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/sim"
	"github.com/san-kum/entropylab/internal/timeline"
)

const (
	screenW = 1200
	screenH = 800

	// top-left corner of the simulation region
	originX = 20
	originY = 60

	maxTelemetry = 200
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColTop     = rl.NewColor(0x0b, 0x2a, 0x3b, 255)
	ColBottom  = rl.NewColor(0x08, 0x18, 0x26, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type Options struct {
	Audio  bool
	Events []timeline.Event
}

// App is the desktop window. The simulator advances once per rendered frame;
// the side panel follows the throttled presenter.
type App struct {
	Sim      *sim.Simulator
	Params   dynamo.Params
	Initial  dynamo.Params
	Running  bool
	ShowGrid bool
	Font     rl.Font

	Snap      dynamo.Snapshot
	Telemetry []float64

	Events   []timeline.Event
	EventSel int
	ShowInfo bool

	Audio *audio.Processor

	quit bool
}

func initWindow() {
	rl.InitWindow(screenW, screenH, "entropylab")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(s *sim.Simulator, p dynamo.Params, opts Options) *App {
	if opts.Events == nil {
		opts.Events = timeline.Events()
	}
	app := &App{
		Sim:       s,
		Params:    p,
		Initial:   p,
		Running:   true,
		ShowGrid:  true,
		Font:      loadFont(),
		Telemetry: make([]float64, 0, maxTelemetry),
		Events:    opts.Events,
	}
	s.AddPresenter(dynamo.PresenterFunc(app.present))

	if opts.Audio {
		proc := audio.NewProcessor()
		if err := proc.Start(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			app.Audio = proc
		}
	}
	return app
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Simulator, p dynamo.Params, opts Options) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(s, p, opts)
	defer app.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Close() {
	if a.Audio != nil {
		a.Audio.Stop()
	}
}

func (a *App) present(s dynamo.Snapshot) {
	a.Snap = s
	a.Telemetry = append(a.Telemetry, s.Sample.Entropy)
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
	if a.Audio != nil {
		a.Audio.UpdateThermo(s.Sample.Entropy, s.Sample.Temperature)
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Params.Temperature += 10
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Params.Temperature = max(0, a.Params.Temperature-10)
	}
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
		a.Params.Noise += 0.1
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
		a.Params.Noise = max(0, a.Params.Noise-0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) {
		a.Params.Count += 20
	}
	if rl.IsKeyPressed(rl.KeyMinus) {
		a.Params.Count = max(0, a.Params.Count-20)
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.ShowGrid = !a.ShowGrid
	}
	if rl.IsKeyPressed(rl.KeyTab) && len(a.Events) > 0 {
		a.EventSel = (a.EventSel + 1) % len(a.Events)
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		a.ShowInfo = !a.ShowInfo
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.ShowInfo = false
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Params = a.Initial
		a.Sim.Reset()
		a.Telemetry = a.Telemetry[:0]
	}

	if a.Running {
		a.Sim.Frame(a.Params, time.Now())
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawRegion()
	a.DrawHUD()
	a.DrawTelemetry()
	a.DrawTSPlot()
	a.drawTimeline()

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
