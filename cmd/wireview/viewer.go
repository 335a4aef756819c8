package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/wireview/wireview/internal/config"
	"github.com/wireview/wireview/internal/logger"
	"github.com/wireview/wireview/pkg/render"
)

// cellDragScale converts coarse terminal-cell drag deltas to the pixel
// scale the camera's orbit sensitivity expects.
const cellDragScale = 4.0

// DragAxis tracks one orbit axis' drag velocity with spring decay, so a
// flick keeps the model turning briefly after the mouse stops.
type DragAxis struct {
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

// NewDragAxis creates an axis with a critically damped spring, so the
// velocity eases to zero without overshoot.
func NewDragAxis(fps int) DragAxis {
	return DragAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// ApplyImpulse adds drag velocity.
func (a *DragAxis) ApplyImpulse(v float64) {
	a.Velocity += v
}

// Update decays velocity toward zero.
func (a *DragAxis) Update() {
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// HUD renders an overlay with model info and view status.
type HUD struct {
	filename  string
	edgeCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	show      bool
}

// NewHUD creates a new HUD.
func NewHUD(filename string, edgeCount int) *HUD {
	return &HUD{
		filename:  filename,
		edgeCount: edgeCount,
		fpsTime:   time.Now(),
		show:      true,
	}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal.
func (h *HUD) Render(width, height int, cam *render.Camera, lod *render.LOD, drawn int) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		fgYellow  = "\x1b[93m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows so toggling off works.
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !h.show {
		return
	}

	// Top left: FPS. Top middle: filename. Top right: drawn/total edges.
	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.filename, reset)

	edgeStr := fmt.Sprintf(" %d/%d edges ", drawn, h.edgeCount)
	edgeCol := max(width-len(edgeStr), 1)
	fmt.Printf("%s%s%s%s%s%s", moveTo(1, edgeCol), bgBlack, fgCyan, bold, edgeStr, reset)

	// Bottom: projection and detail status.
	checkOrtho := "[ ]"
	if !cam.Perspective {
		checkOrtho = "[✓]"
	}
	checkLOD := "[ ]"
	if lod.Enabled {
		checkLOD = "[✓]"
	}
	fmt.Printf("%s%s%s %s Ortho  %s LOD %.2fpx %s",
		moveTo(height, 1), bgBlack, fgWhite, checkOrtho, checkLOD, lod.Threshold(), reset)

	hint := " o: ortho  f: lod  r: reset "
	hintCol := max(width-len(hint), 1)
	fmt.Printf("%s%s%s%s%s%s", moveTo(height, hintCol), bgBlack, dim, fgYellow, hint, reset)
}

func runView(modelPath string) error {
	cfg, err := setup(false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	wire, err := config.ParseHexColor(cfg.Colors.Wire)
	if err != nil {
		return err
	}
	bg, err := config.ParseHexColor(cfg.Colors.Background)
	if err != nil {
		return err
	}

	m, err := loadModel(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	logModelLoaded(modelPath, m)

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	// Half-block rendering carries two pixel rows per terminal row.
	fb := render.NewFramebuffer(width, height*2)
	pipeline := render.NewPipeline(width, height*2)

	cam := newCamera(cfg, m)
	if viewOrtho {
		cam.Perspective = false
	}

	fps := cfg.Detail.TargetFPS
	if viewFPS > 0 {
		fps = viewFPS
	}
	lod := render.NewLOD(fps)
	lod.Enabled = cfg.Detail.Enabled
	lod.MaxLines = cfg.Detail.MaxLines
	lod.SetBounds(cfg.Detail.MinPx, cfg.Detail.MaxPx)

	hud := NewHUD(filepath.Base(modelPath), m.EdgeCount())

	orbitX := NewDragAxis(fps)
	orbitY := NewDragAxis(fps)

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Mouse state
	var dragging, panDrag bool
	var lastMouseX, lastMouseY int

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				fb = render.NewFramebuffer(width, height*2)
				pipeline.SetViewport(width, height*2)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
					cancel()
					return
				case ev.MatchString("o"):
					cam.Perspective = !cam.Perspective
				case ev.MatchString("f"):
					lod.Enabled = !lod.Enabled
				case ev.MatchString("r"):
					*cam = *newCamera(cfg, m)
					if !cfg.Camera.AutoFrame {
						cam.AutoFrame(m)
					}
				case ev.MatchString("left"):
					cam.Orbit(-15, 0)
				case ev.MatchString("right"):
					cam.Orbit(15, 0)
				case ev.MatchString("up"):
					cam.Orbit(0, -15)
				case ev.MatchString("down"):
					cam.Orbit(0, 15)
				case ev.MatchString("+", "="):
					cam.Zoom(true)
				case ev.MatchString("-", "_"):
					cam.Zoom(false)
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					hud.show = !hud.show
				}

			case uv.MouseClickEvent:
				switch ev.Button {
				case uv.MouseLeft:
					dragging, panDrag = true, false
					lastMouseX, lastMouseY = ev.X, ev.Y
				case uv.MouseRight:
					dragging, panDrag = true, true
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseReleaseEvent:
				dragging = false

			case uv.MouseMotionEvent:
				if !dragging {
					break
				}
				dx := float64(ev.X-lastMouseX) * cellDragScale
				dy := float64(ev.Y-lastMouseY) * cellDragScale
				lastMouseX, lastMouseY = ev.X, ev.Y
				if panDrag {
					cam.Pan(dx, dy)
				} else {
					orbitX.ApplyImpulse(dx)
					orbitY.ApplyImpulse(dy)
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cam.Zoom(true)
				case uv.MouseWheelDown:
					cam.Zoom(false)
				}
			}
		}
	}()

	// Main loop
	targetDuration := time.Second / time.Duration(fps)

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			logger.Info("viewer exiting")
			return nil
		default:
		}

		frameStart := time.Now()

		// Drag inertia: apply the decaying velocities as orbit deltas.
		orbitX.Update()
		orbitY.Update()
		cam.Orbit(orbitX.Velocity, orbitY.Velocity)

		fbW, fbH := pipeline.Viewport()
		aspect := float64(fbW) / float64(fbH)
		lines := pipeline.Build(cam.View(), cam.Projection(aspect), m, cam.Near, lod)

		fb.Clear(bg)
		fb.DrawSegments(lines, wire)
		fb.Draw(term, term.Bounds())
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		// Feed the measured frame cost back into the detail controller.
		lod.Observe(time.Since(frameStart))

		hud.UpdateFPS()
		hud.Render(width, height, cam, lod, len(lines))

		if logger.Log.Core().Enabled(zap.DebugLevel) {
			logger.Debug("frame",
				zap.Int("drawn", len(lines)),
				zap.Float64("threshold_px", lod.Threshold()),
				zap.Duration("smoothed", lod.Smoothed()),
			)
		}

		elapsed := time.Since(frameStart)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
