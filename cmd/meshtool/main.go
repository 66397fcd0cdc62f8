// meshtool is a CLI utility for inspecting and editing polygon meshes
// stored as YAML documents.
package main

import (
	"errors"
	"flag"
	"fmt"
	gomath "math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/polymesh/internal/config"
	"github.com/Faultbox/polymesh/internal/inspect"
	"github.com/Faultbox/polymesh/internal/logger"
	"github.com/Faultbox/polymesh/pkg/math"
	"github.com/Faultbox/polymesh/pkg/mesh"
	"github.com/Faultbox/polymesh/pkg/meshdoc"
)

var errBadVector = errors.New("expected three comma separated numbers")

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := initLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		cmdInfo(cfg, args)
	case "convert":
		cmdConvert(args)
	case "flip":
		cmdFlip(args)
	case "flush":
		cmdFlush(args)
	case "deform":
		cmdDeform(args)
	case "transform":
		cmdTransform(args)
	case "config":
		cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - polygon mesh utility

Usage:
  meshtool [global options] <command> [options]

Commands:
  info <mesh.yaml>                          Show counts, area, centers and volume
  convert <in.yaml> <out.yaml>              Rewrite legacy faces as polygons
  flip <in.yaml> <out.yaml>                 Reverse the winding of every polygon
  flush -mode <mode> <in.yaml> <out.yaml>   Propagate hide/select flags
  deform <mesh> <src> <dst> <out.yaml>      Apply the src to dst deformation
  transform [options] <in.yaml> <out.yaml>  Apply an affine transform
  config [-save] [-o path]                  Show or save the effective config

Global options:
  -config <path>     Config file (default: $POLYMESH_CONFIG, ./meshtool.yaml,
                     then the user config dir)
  -debug             Enable debug logging
  -log-file <path>   Also write logs to this file
  -json-log          Write logs as JSON
  -center <name>     median, median-polys, bounds, surface or volume
  -per-polygon       Include per-polygon data in info
  -format <name>     text or yaml
  -precision <n>     Decimal places in text output

Examples:
  meshtool info cube.yaml
  meshtool -center volume -format yaml info cube.yaml
  meshtool flush -mode hidden-verts cube.yaml out.yaml
  meshtool transform -scale 2 -rotate-z 90 cube.yaml out.yaml`)
}

func initLogger(cfg *config.Config) error {
	opts := logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Stderr: true,
	}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	return logger.InitWithOptions(opts)
}

func loadMesh(path string) *mesh.Mesh {
	m, err := meshdoc.Load(path, logger.Named("meshdoc"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("loaded mesh", zap.String("path", path), zap.Stringer("mesh", m))
	return m
}

func saveMesh(path string, m *mesh.Mesh) {
	if err := meshdoc.Save(path, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("wrote mesh", zap.String("path", path), zap.Stringer("mesh", m))
}

func cmdInfo(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool info <mesh.yaml>")
		os.Exit(1)
	}

	m := loadMesh(args[0])
	r, err := inspect.Build(m, inspect.Options{
		Center:     cfg.Kernel.Center,
		PerPolygon: cfg.Kernel.PerPolygon,
		Log:        logger.Named("inspect"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Output.Format == config.OutputYAML {
		err = inspect.WriteYAML(os.Stdout, r)
	} else {
		fmt.Printf("File:      %s\n", args[0])
		err = inspect.WriteText(os.Stdout, r, cfg.Output.Precision)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdConvert(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool convert <in.yaml> <out.yaml>")
		os.Exit(1)
	}

	// Legacy faces are converted while the document is built.
	m := loadMesh(args[0])
	saveMesh(args[1], m)
	fmt.Printf("Converted %d polygons (%d loops)\n", len(m.Polys), len(m.Loops))
}

func cmdFlip(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool flip <in.yaml> <out.yaml>")
		os.Exit(1)
	}

	m := loadMesh(args[0])
	if err := inspect.Apply(m, inspect.OpFlip); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	saveMesh(args[1], m)
	fmt.Printf("Flipped %d polygons\n", len(m.Polys))
}

func cmdFlush(args []string) {
	fs := flag.NewFlagSet("flush", flag.ExitOnError)
	mode := fs.String("mode", "", "One of: "+strings.Join(inspect.FlushModes, ", "))
	fs.Parse(args)

	if fs.NArg() < 2 || *mode == "" {
		fmt.Fprintln(os.Stderr, "Usage: meshtool flush -mode <mode> <in.yaml> <out.yaml>")
		fmt.Fprintf(os.Stderr, "Modes: %s\n", strings.Join(inspect.FlushModes, ", "))
		os.Exit(1)
	}

	m := loadMesh(fs.Arg(0))
	if err := inspect.Apply(m, *mode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	saveMesh(fs.Arg(1), m)
}

func cmdDeform(args []string) {
	if len(args) < 4 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool deform <mesh.yaml> <src.yaml> <dst.yaml> <out.yaml>")
		os.Exit(1)
	}

	m := loadMesh(args[0])
	src := loadMesh(args[1])
	dst := loadMesh(args[2])
	if err := inspect.Deform(m, src, dst); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	saveMesh(args[3], m)
}

func cmdTransform(args []string) {
	fs := flag.NewFlagSet("transform", flag.ExitOnError)
	translate := fs.String("translate", "", "Translation as x,y,z")
	scale := fs.Float64("scale", 1, "Uniform scale")
	rotX := fs.Float64("rotate-x", 0, "Rotation around X in degrees")
	rotZ := fs.Float64("rotate-z", 0, "Rotation around Z in degrees")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool transform [-translate x,y,z] [-scale s] [-rotate-x deg] [-rotate-z deg] <in.yaml> <out.yaml>")
		os.Exit(1)
	}

	var offset math.Vec3
	if *translate != "" {
		var err error
		if offset, err = parseVec3(*translate); err != nil {
			fmt.Fprintf(os.Stderr, "Error: -translate: %v\n", err)
			os.Exit(1)
		}
	}

	m := loadMesh(fs.Arg(0))
	inspect.Transform(m, buildTransform(offset, float32(*scale), float32(*rotX), float32(*rotZ)))
	saveMesh(fs.Arg(1), m)
}

// buildTransform composes scale, then X rotation, then Z rotation, then
// translation. Angles are in degrees.
func buildTransform(offset math.Vec3, scale, rotX, rotZ float32) math.Mat4 {
	const deg = gomath.Pi / 180
	return math.Translate(offset.X, offset.Y, offset.Z).
		Mul(math.RotateZ(rotZ * deg)).
		Mul(math.RotateX(rotX * deg)).
		Mul(math.Scale(scale, scale, scale))
}

func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("%w: %q", errBadVector, s)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%w: %q", errBadVector, s)
		}
		v[i] = float32(f)
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func cmdConfig(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.Bool("save", false, "Write the effective config to the user config directory")
	out := fs.String("o", "", "Write the effective config to this path")
	fs.Parse(args)

	switch {
	case *out != "":
		if err := cfg.SaveTo(*out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved config to %s\n", *out)
	case *save:
		path, err := cfg.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved config to %s\n", path)
	default:
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
	}
}
