package main

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/wireview/wireview/internal/config"
	"github.com/wireview/wireview/internal/logger"
	"github.com/wireview/wireview/pkg/math3d"
	"github.com/wireview/wireview/pkg/render"
)

// runRender draws one frame offscreen and writes it to a PNG file.
func runRender(modelPath string) error {
	cfg, err := setup(true)
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

	width, height := cfg.Viewport.Width, cfg.Viewport.Height
	if renderSize != "" {
		if _, err := fmt.Sscanf(renderSize, "%dx%d", &width, &height); err != nil {
			return fmt.Errorf("invalid --size %q: want WxH", renderSize)
		}
		if width <= 0 || height <= 0 {
			return fmt.Errorf("invalid --size %q: dimensions must be positive", renderSize)
		}
	}

	m, err := loadModel(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	logModelLoaded(modelPath, m)

	cam := newCamera(cfg, m)
	if renderFOV > 0 {
		cam.FOVY = renderFOV * math.Pi / 180
	}
	if renderOrtho {
		cam.Perspective = false
	}
	if renderEye != "" {
		target, err := parseVec3(renderTarget)
		if err != nil {
			return fmt.Errorf("invalid --target: %w", err)
		}
		eye, err := parseVec3(renderEye)
		if err != nil {
			return fmt.Errorf("invalid --eye: %w", err)
		}
		if err := aimCamera(cam, eye, target); err != nil {
			return err
		}
	} else if !cfg.Camera.AutoFrame {
		cam.AutoFrame(m)
	}

	pipeline := render.NewPipeline(width, height)
	lines := pipeline.Build(
		cam.View(),
		cam.Projection(float64(width)/float64(height)),
		m, cam.Near, nil,
	)

	fb := render.NewFramebuffer(width, height)
	fb.Clear(bg)
	fb.DrawSegments(lines, wire)

	if err := fb.SavePNG(renderOut); err != nil {
		return fmt.Errorf("write %s: %w", renderOut, err)
	}

	logger.Info("rendered",
		zap.String("out", renderOut),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("segments", len(lines)),
	)
	fmt.Printf("wrote %s (%dx%d, %d segments)\n", renderOut, width, height, len(lines))
	return nil
}

// aimCamera converts an explicit eye position into the camera's orbit
// parameters, so the offscreen path shares the interactive camera model.
func aimCamera(cam *render.Camera, eye, target math3d.Vec3) error {
	d := eye.Sub(target)
	radius := d.Len()
	if radius < 1e-9 {
		return fmt.Errorf("camera eye and target coincide")
	}
	cam.Target = target
	cam.Radius = radius
	cam.Pitch = math.Asin(d.Y / radius)
	cam.Yaw = math.Atan2(d.Z, d.X)
	return nil
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (math3d.Vec3, error) {
	var x, y, z float64
	if _, err := fmt.Sscanf(s, "%f,%f,%f", &x, &y, &z); err != nil {
		return math3d.Vec3{}, fmt.Errorf("%q: want x,y,z", s)
	}
	return math3d.V3(x, y, z), nil
}
