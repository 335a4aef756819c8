// wireview - Terminal Wireframe Model Viewer
// View OBJ and glTF files as wireframes in your terminal, or render them
// offscreen to PNG.
//
// Controls:
//
//	Left drag   - Orbit around the model (with inertia)
//	Right drag  - Pan the orbit target
//	Scroll      - Zoom in/out
//	Arrow keys  - Orbit in steps
//	O           - Toggle orthographic projection
//	F           - Toggle adaptive level of detail
//	R           - Reset view (re-frame the model)
//	+/-         - Zoom in/out
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wireview/wireview/internal/config"
	"github.com/wireview/wireview/internal/logger"
	"github.com/wireview/wireview/pkg/mesh"
	"github.com/wireview/wireview/pkg/render"
)

var (
	configFile string
	logLevel   string
	logFile    string

	// view flags
	viewFPS   int
	viewOrtho bool

	// render flags
	renderSize   string
	renderEye    string
	renderTarget string
	renderFOV    float64
	renderOrtho  bool
	renderOut    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wireview [model.obj|model.glb]",
		Short: "terminal wireframe model viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation with a model path behaves like "view".
			if len(args) == 1 {
				return runView(args[0])
			}
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path")

	viewCmd := &cobra.Command{
		Use:   "view [model.obj|model.glb]",
		Short: "view a model interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(args[0])
		},
	}
	viewCmd.Flags().IntVar(&viewFPS, "fps", 0, "target FPS (overrides config)")
	viewCmd.Flags().BoolVar(&viewOrtho, "ortho", false, "start in orthographic projection")

	renderCmd := &cobra.Command{
		Use:   "render [model.obj|model.glb]",
		Short: "render a model to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0])
		},
	}
	renderCmd.Flags().StringVar(&renderSize, "size", "", "output size as WxH (default from config)")
	renderCmd.Flags().StringVar(&renderEye, "eye", "", "camera position as x,y,z (default auto-framed)")
	renderCmd.Flags().StringVar(&renderTarget, "target", "0,0,0", "look-at target as x,y,z")
	renderCmd.Flags().Float64Var(&renderFOV, "fov", 0, "vertical field of view in degrees")
	renderCmd.Flags().BoolVar(&renderOrtho, "ortho", false, "orthographic projection")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "out.png", "output PNG path")

	rootCmd.AddCommand(viewCmd, renderCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration, applies the shared flag overrides and brings
// the logger up.
func setup(stderrLogs bool) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFile != "" {
		cfg.Logging.LogFile = logFile
	}

	if cfg.Logging.LogFile == "" && !stderrLogs {
		if err := logger.Init(cfg.Logging.Level, ""); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err := logger.InitWithFileConfig(
		cfg.Logging.Level,
		logger.DefaultFileConfig(cfg.Logging.LogFile),
		stderrLogs,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadModel dispatches on the file extension.
func loadModel(path string) (*mesh.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return mesh.LoadOBJ(path)
	case ".glb", ".gltf":
		return mesh.LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .obj, .gltf or .glb)", filepath.Ext(path))
	}
}

// newCamera builds a camera from config and frames the mesh.
func newCamera(cfg *config.Config, m *mesh.Mesh) *render.Camera {
	cam := render.NewCamera()
	if cfg.Camera.FOVDegrees > 0 {
		cam.FOVY = cfg.Camera.FOVDegrees * math.Pi / 180
	}
	cam.Perspective = !cfg.Camera.Orthographic
	if cfg.Camera.AutoFrame {
		cam.AutoFrame(m)
	}
	return cam
}

func logModelLoaded(path string, m *mesh.Mesh) {
	logger.Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("edges", m.EdgeCount()),
	)
}
