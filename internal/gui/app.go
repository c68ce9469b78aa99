// Package gui hosts the arena in a raylib window.
package gui

import (
	"fmt"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/logging"
	"github.com/san-kum/arena/internal/metrics"
	"github.com/san-kum/arena/internal/sim"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const hudHeight = 40

// NewSurface returns the surface a World should draw on when hosted here.
func NewSurface() Surface { return Surface{Background: ColBg} }

type App struct {
	Sched    *sim.Scheduler
	Hub      *sim.PointerHub
	Bounds   dynamo.Bounds
	FPS      int
	Relayout func() ([]dynamo.Body, error)
	Log      *log.Logger

	running bool
	drag    bool
	pressAt rl.Vector2
	stats   sim.FrameStats
}

func NewApp(sched *sim.Scheduler, fps int) (*App, error) {
	a := &App{
		Sched:   sched,
		Hub:     sim.NewPointerHub(),
		Bounds:  sched.World().Bounds(),
		FPS:     fps,
		Log:     logging.Discard(),
		running: true,
	}
	if err := sched.Attach(a.Hub); err != nil {
		return nil, err
	}
	return a, nil
}

// initWindow opens a window of arena size plus the HUD strip and disables
// the default exit key.
func (a *App) initWindow() {
	rl.InitWindow(int32(a.Bounds.Width), int32(a.Bounds.Height)+hudHeight, "arena")
	rl.SetTargetFPS(int32(a.FPS))
	rl.SetExitKey(0)
}

// Run blocks until the window is closed or Q is pressed. The scheduler is
// stopped on return.
func (a *App) Run() {
	a.initWindow()
	defer rl.CloseWindow()
	defer a.Sched.Stop()

	for !rl.WindowShouldClose() && !a.Sched.Stopped() {
		a.Update()
		a.Draw()
	}
}

// Update polls keys and the mouse; pointer events reach the world on the
// next Step.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.Sched.Stop()
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
	}
	if rl.IsKeyPressed(rl.KeyR) && a.Relayout != nil {
		bodies, err := a.Relayout()
		if err != nil {
			a.Log.Warn("relayout", "err", err, "bodies", len(bodies))
		}
		a.Sched.World().Reset(bodies)
	}

	x, y := float64(rl.GetMouseX()), float64(rl.GetMouseY())
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.drag, a.pressAt = true, rl.NewVector2(float32(x), float32(y))
		a.Hub.Publish(sim.Press(x, y))
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		a.drag = false
		a.Hub.Publish(sim.Release(x, y))
	}
}

// Draw steps the scheduler inside the frame so the world paints directly
// onto it.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.running {
		stats, err := a.Sched.Step()
		if err == nil {
			a.stats = stats
		}
	} else {
		for _, b := range a.Sched.World().Bodies() {
			b.Draw(NewSurface(), rgba(ColTextDim))
		}
	}
	if a.drag {
		rl.DrawLineV(a.pressAt, rl.GetMousePosition(), ColAccent)
	}
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	top := int32(a.Bounds.Height)
	rl.DrawRectangle(0, top, int32(a.Bounds.Width), hudHeight, ColBg)
	rl.DrawLine(0, top, int32(a.Bounds.Width), top, ColTextDim)

	status, col := "RUNNING", ColSelect
	if !a.running {
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText("arena", 12, top+12, 16, ColSelect)
	rl.DrawText(status, 80, top+12, 16, col)
	ke := metrics.KineticEnergyOf(a.Sched.World().Bodies())
	rl.DrawText(fmt.Sprintf("frame %d  bodies %d  contacts %d  KE %.2f  %d FPS",
		a.Sched.Frame(), a.Sched.World().Len(), a.stats.Contacts, ke, rl.GetFPS()), 200, top+12, 16, ColText)
	rl.DrawText("[DRAG] FLING  [SPACE] PAUSE  [R] RESET  [Q] QUIT", int32(a.Bounds.Width)-430, top+14, 12, ColTextDim)
}
