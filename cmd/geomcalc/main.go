// Command geomcalc evaluates geometry scenes.
//
// A scene is a YAML file of named shapes and queries about them (see package
// scene). The eval command prints the answer to each query, draw renders the 2D
// shapes to a PNG, and svg converts the lines, triangles and circles of an SVG
// file into scene shapes.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/geom/scene"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
		os.Exit(1)
	}
}

type cli struct {
	app *kingpin.Application

	verbose *bool
	json    *bool
	noColor *bool

	eval          *kingpin.CmdClause
	evalScene     *string
	evalTolerance *float64
	evalWorkers   *int

	draw       *kingpin.CmdClause
	drawScene  *string
	drawOut    *string
	drawWidth  *int
	drawHeight *int
	drawImgcat *bool

	svg     *kingpin.CmdClause
	svgFile *string

	ops *kingpin.CmdClause
}

func newCLI(stderr io.Writer) *cli {
	c := &cli{app: kingpin.New("geomcalc", "Evaluate line, plane, segment and triangle queries.")}
	c.app.UsageWriter(stderr)
	c.app.ErrorWriter(stderr)
	c.app.Terminate(nil)
	c.app.HelpFlag.Short('h')

	c.verbose = c.app.Flag("verbose", "Log at debug level.").Short('v').Bool()
	c.json = c.app.Flag("json", "Log as JSON.").Bool()
	c.noColor = c.app.Flag("no-color", "Don't color the output.").Bool()

	c.eval = c.app.Command("eval", "Answer every query in a scene.")
	c.evalScene = c.eval.Arg("scene", "Scene YAML file.").Required().String()
	c.evalTolerance = c.eval.Flag("tolerance", "Classify triangles with this tolerance instead of exactly.").Default("0").Float64()
	c.evalWorkers = c.eval.Flag("workers", "Queries to evaluate at once.").Default("4").Int()

	c.draw = c.app.Command("draw", "Render the 2D shapes in a scene to a PNG.")
	c.drawScene = c.draw.Arg("scene", "Scene YAML file.").Required().String()
	c.drawOut = c.draw.Flag("out", "PNG file to write.").Short('o').Default("scene.png").String()
	c.drawWidth = c.draw.Flag("width", "Image width in pixels.").Default("800").Int()
	c.drawHeight = c.draw.Flag("height", "Image height in pixels.").Default("600").Int()
	c.drawImgcat = c.draw.Flag("imgcat", "Also print the image to the terminal (iTerm only).").Bool()

	c.svg = c.app.Command("svg", "Convert an SVG file into scene YAML.")
	c.svgFile = c.svg.Arg("file", "SVG file.").Required().String()

	c.ops = c.app.Command("ops", "List the query operations.")
	return c
}

func run(args []string, stdout, stderr io.Writer) error {
	c := newCLI(stderr)
	command, err := c.app.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(*c.verbose, *c.json)
	if err != nil {
		return err
	}
	defer logger.Sync()

	au := aurora.NewAurora(!*c.noColor)
	switch command {
	case c.eval.FullCommand():
		return runEval(c, logger, au, stdout)
	case c.draw.FullCommand():
		return runDraw(c, logger, stdout)
	case c.svg.FullCommand():
		return runSVG(c, stdout)
	case c.ops.FullCommand():
		fmt.Fprintln(stdout, strings.Join(scene.Operations(), "\n"))
		return nil
	}
	return errors.Errorf("unknown command %q", command)
}

func newLogger(verbose, json bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	if json {
		config.Encoding = "json"
		config.EncoderConfig = zap.NewProductionEncoderConfig()
	}

	logger, err := config.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return logger, nil
}

func runEval(c *cli, logger *zap.Logger, au aurora.Aurora, stdout io.Writer) error {
	s, err := scene.LoadFile(*c.evalScene)
	if err != nil {
		return err
	}
	logger.Info("loaded scene",
		zap.String("path", *c.evalScene),
		zap.Int("shapes", len(s.Shapes)),
		zap.Int("queries", len(s.Queries)),
	)

	evaluator := scene.NewEvaluator(
		scene.WithLogger(logger),
		scene.WithTolerance(*c.evalTolerance),
		scene.WithWorkers(*c.evalWorkers),
	)
	results, err := evaluator.Evaluate(context.Background(), s)
	if err != nil {
		return err
	}

	for _, result := range results {
		value := au.Green(result.Value)
		if result.Degenerate {
			value = au.Cyan(result.Value)
		}
		fmt.Fprintf(stdout, "%s = %s\n", au.Bold(result.Query.String()), value)
	}
	return nil
}

func runDraw(c *cli, logger *zap.Logger, stdout io.Writer) error {
	s, err := scene.LoadFile(*c.drawScene)
	if err != nil {
		return err
	}
	if err := scene.RenderPNG(s, *c.drawOut, *c.drawWidth, *c.drawHeight); err != nil {
		return err
	}
	logger.Info("rendered scene", zap.String("path", *c.drawOut))

	if *c.drawImgcat {
		return scene.Cat(*c.drawOut, stdout)
	}
	return nil
}

func runSVG(c *cli, stdout io.Writer) error {
	f, err := os.Open(*c.svgFile)
	if err != nil {
		return errors.Wrapf(err, "opening %q", *c.svgFile)
	}
	defer f.Close()

	shapes, err := scene.LoadSVG(f)
	if err != nil {
		return errors.Wrapf(err, "loading %q", *c.svgFile)
	}
	s := &scene.Scene{Shapes: shapes}
	return s.Write(stdout)
}
