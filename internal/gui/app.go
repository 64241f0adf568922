package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/pushcart/internal/control"
	"github.com/san-kum/pushcart/internal/logging"
	"github.com/san-kum/pushcart/internal/sim"
	"go.uber.org/zap"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	maxTelemetry = 300
)

var (
	ColBg       = rl.NewColor(10, 10, 10, 255)
	ColAccent   = rl.NewColor(180, 180, 180, 255)
	ColSelect   = rl.NewColor(255, 255, 255, 255)
	ColText     = rl.NewColor(140, 140, 140, 255)
	ColTextDim  = rl.NewColor(60, 60, 60, 255)
	ColPositive = rl.NewColor(0, 255, 255, 160)
	ColNegative = rl.NewColor(255, 255, 0, 160)
	ColTable    = rl.NewColor(90, 60, 40, 255)
)

type App struct {
	session   *sim.Session
	pointer   *control.Manual
	layout    Layout
	hud       HUD
	graph     Graph
	frame     sim.Frame
	running   bool
	quit      bool
	telemetry []float64
	logger    *zap.Logger
}

func initWindow() {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "pushcart")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(session *sim.Session, logger *zap.Logger) *App {
	cfg := session.Config()
	return &App{
		session:   session,
		pointer:   control.NewManual(),
		layout:    NewLayout(windowWidth, windowHeight, cfg),
		hud:       NewHUD(windowWidth, windowHeight),
		graph:     NewGraph(cfg),
		frame:     session.Last(),
		running:   true,
		telemetry: make([]float64, 0, maxTelemetry),
		logger:    logging.Or(logger),
	}
}

// Run opens the window and blocks until it is closed.
func Run(session *sim.Session, logger *zap.Logger) {
	initWindow()
	defer rl.CloseWindow()

	app := NewApp(session, logger)
	app.logger.Info("window opened", zap.Int("width", windowWidth), zap.Int("height", windowHeight))
	app.RunLoop()
	app.logger.Info("window closed",
		zap.Float64("elapsed", session.Elapsed()),
		zap.Int("samples", session.Log().Len()))
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
		a.layout = NewLayout(w, h, a.session.Config())
		a.hud = NewHUD(w, h)
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
	case rl.IsKeyPressed(rl.KeySpace):
		a.running = !a.running
	case rl.IsKeyPressed(rl.KeyR):
		a.session.Reset()
		a.frame = a.session.Last()
		a.telemetry = a.telemetry[:0]
		a.logger.Info("session reset")
	}

	m := rl.GetMousePosition()
	if x, y, ok := a.layout.ToSurface(m.X, m.Y); ok {
		a.pointer.Move(x, y)
	} else {
		a.pointer.Leave()
	}

	if !a.running {
		return
	}
	p := a.pointer.Pointer(a.session.Kinematics(), a.session.Elapsed())
	a.frame = a.session.Tick(p, float64(rl.GetFrameTime()))
	if a.frame.Stepped {
		a.telemetry = append(a.telemetry, a.frame.Kinematics.Velocity)
		if len(a.telemetry) > maxTelemetry {
			a.telemetry = a.telemetry[1:]
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawGraph()
	a.drawTrack()
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int32, size int32, color rl.Color) {
	rl.DrawText(text, x, y, size, color)
}

func (a *App) drawHUD() {
	cfg := a.session.Config()
	k := a.frame.Kinematics

	a.drawText("pushcart", 30, 30, 24, ColSelect)
	a.drawText("push the cart left and right", 160, 36, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, a.hud.Status[0], a.hud.Status[1], 16, col)

	lines := []string{
		fmt.Sprintf("t        %8.2f s", a.session.Elapsed()),
		fmt.Sprintf("x        %8.2f m", (k.Position-cfg.TrackWidth/2)/cfg.DistanceScale()),
		fmt.Sprintf("v        %8.2f m/s", k.Velocity),
		fmt.Sprintf("F        %8.2f N", a.frame.Force),
		fmt.Sprintf("|F|cos   %8.2f N", a.frame.Effective),
		fmt.Sprintf("KE       %8.2f J", a.frame.Energy),
	}
	for i, l := range lines {
		a.drawText(l, a.hud.Readout[0], a.hud.Readout[1]+int32(i)*18, 14, ColAccent)
	}

	a.drawTelemetry()
	a.drawText("[MOUSE] PUSH  [SPACE] PAUSE  [R] RESET  [Q] QUIT", a.hud.Help[0], a.hud.Help[1], 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), a.hud.FPS[0], a.hud.FPS[1], 14, ColTextDim)
}

// drawTelemetry plots recent velocity, normalized to its own range.
func (a *App) drawTelemetry() {
	if len(a.telemetry) < 2 {
		return
	}

	rectX, rectY := float32(a.hud.Telemetry[0]), float32(a.hud.Telemetry[1])
	width, height := float32(400), float32(60)

	minVal, maxVal := a.telemetry[0], a.telemetry[0]
	for _, v := range a.telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.telemetry))
	for i, val := range a.telemetry {
		px := rectX + float32(i)/float32(len(a.telemetry))*width
		norm := (val - minVal) / (maxVal - minVal)
		points[i] = rl.NewVector2(px, rectY+height-float32(norm)*height)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("v: %.2f", a.telemetry[len(a.telemetry)-1]), int32(rectX+width)+10, int32(rectY+height)-10, 14, ColText)
}
