package main

import (
	"flag"
	"fmt"
	"image/png"
	"math"
	"os"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/gorustyt/gomeshfield/common"
	"github.com/gorustyt/gomeshfield/debug_utils"
	"github.com/gorustyt/gomeshfield/demo/config"
	"github.com/gorustyt/gomeshfield/demo/testcase"
	"github.com/gorustyt/gomeshfield/isocurve"
	"github.com/gorustyt/gomeshfield/mesh"
	"github.com/gorustyt/gomeshfield/winding"
)

var (
	objPath    = flag.String("obj", "", "mesh in Wavefront OBJ format, or binary when it ends in .bin")
	cfgPath    = flag.String("config", "", "YAML config file")
	scriptPath = flag.String("script", "", "batch test script; its f row replaces -obj")
	fieldName  = flag.String("field", "", "scalar field: r, g, b (vertex color) or x, y, z (coordinate)")
	isoFlag    = flag.String("iso", "", "comma separated iso values, overriding the config levels")
	pointFlag  = flag.String("point", "", "x,y,z point to classify with the winding number")
	pngPath    = flag.String("png", "", "write an XY projection of the field and contours")
	pngSize    = flag.Int("size", 800, "png width and height in pixels")
	outPath    = flag.String("out", "", "write results as length-delimited protobuf messages")
	binPath    = flag.String("bin", "", "write the loaded mesh in binary form")
)

func main() {
	flag.Parse()
	cfg := config.NewConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	log, err := common.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("demo failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	tc, err := buildTestCase(cfg)
	if err != nil {
		return err
	}
	path := *objPath
	if tc.GeomFileName() != "" {
		path = tc.GeomFileName()
	}
	if path == "" {
		return fmt.Errorf("no mesh given, use -obj or an f row in -script")
	}
	m, err := loadMesh(path)
	if err != nil {
		return err
	}
	log.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("faces", m.FaceCount()),
		zap.Int("quads", m.QuadCount()),
		zap.Bool("colors", m.HasColors()))

	if *binPath != "" {
		if err := os.WriteFile(*binPath, m.ToBin(), 0o644); err != nil {
			return err
		}
	}

	ex := cfg.NewExtractor(log)
	if !tc.HasContours() {
		field, err := tc.Field(m, ex)
		if err != nil {
			return err
		}
		tc.AddIso(cfg.Contour.IsoValues(common.MinMax(field))...)
	}
	if err := tc.DoTests(m, ex, cfg.NewClassifier(log), cfg.Contour.JoinTolerance, log); err != nil {
		return err
	}

	if *outPath != "" {
		var out []byte
		for _, msg := range tc.Encode() {
			out = protowire.AppendBytes(out, msg)
		}
		if err := os.WriteFile(*outPath, out, 0o644); err != nil {
			return err
		}
	}
	if *pngPath != "" {
		return writePng(*pngPath, m, tc, ex, cfg.Contour.JoinTolerance, log)
	}
	return nil
}

// buildTestCase merges the script with the field, iso and point flags.
func buildTestCase(cfg *config.Config) (*testcase.TestCase, error) {
	tc := testcase.NewTestCase()
	tc.SetNormalize(cfg.Contour.Normalize)
	var rows []string
	if *scriptPath != "" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := tc.Load(f); err != nil {
			return nil, err
		}
	}
	if *fieldName != "" {
		rows = append(rows, "field "+*fieldName)
	}
	if *isoFlag != "" {
		for _, s := range strings.Split(*isoFlag, ",") {
			rows = append(rows, "iso "+strings.TrimSpace(s))
		}
	}
	if *pointFlag != "" {
		rows = append(rows, "wn "+strings.ReplaceAll(*pointFlag, ",", " "))
	}
	if len(rows) > 0 {
		if err := tc.Load(strings.NewReader(strings.Join(rows, "\n"))); err != nil {
			return nil, fmt.Errorf("flags: %w", err)
		}
	}
	return tc, nil
}

func loadMesh(path string) (*mesh.Mesh, error) {
	if strings.HasSuffix(path, ".bin") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		m := &mesh.Mesh{}
		if err := m.FromBin(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return m, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := mesh.LoadObj(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func writePng(path string, m *mesh.Mesh, tc *testcase.TestCase, ex *isocurve.Extractor, tol float64, log *zap.Logger) error {
	field, err := tc.Field(m, ex)
	if err != nil {
		return err
	}

	bmin, bmax := m.Bounds()
	dd := debug_utils.NewImageDebugDraw(*pngSize, *pngSize, bmin, bmax, 16)
	black := debug_utils.DuRGBA(0, 0, 0, 255)
	dd.Fill(debug_utils.DuRGBA(255, 255, 255, 255))
	drawGrid(dd, bmin, bmax, 10, debug_utils.DuTransCol(black, 32))
	debug_utils.DuDebugDrawMeshField(dd, m, field, 0.6)

	wire := debug_utils.NewDuDisplayList(2 * m.FaceCount())
	debug_utils.DuDebugDrawMeshWire(wire, m, debug_utils.DuTransCol(black, 64), 1)
	wire.Draw(dd)
	debug_utils.DuDebugDrawBoxWire(dd, bmin, bmax, black, 1.5)

	var levels [][]isocurve.Segment
	var pts []common.Vec3
	var res []winding.Result
	for _, test := range tc.Tests() {
		if test.Type == testcase.TEST_CONTOUR {
			levels = append(levels, test.Segments)
		} else {
			pts = append(pts, test.Point)
			res = append(res, test.Winding)
		}
	}
	debug_utils.DuDebugDrawLevels(dd, levels, tol)
	debug_utils.DuDebugDrawWinding(dd, pts, res, 0.02*bmax.Sub(bmin).Len())

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dd.Image()); err != nil {
		f.Close()
		return err
	}
	log.Info("png written", zap.String("path", path), zap.Int("levels", len(levels)))
	return f.Close()
}

// drawGrid lays n cells across the longer XY side of the bounds.
func drawGrid(dd debug_utils.DuDebugDraw, bmin, bmax common.Vec3, n int, col debug_utils.Colorb) {
	ext := bmax.Sub(bmin)
	cell := math.Max(ext[0], ext[1]) / float64(n)
	if cell <= 0 {
		return
	}
	w := int(math.Ceil(ext[0] / cell))
	h := int(math.Ceil(ext[1] / cell))
	debug_utils.DuDebugDrawGridXY(dd, bmin, max(w, 1), max(h, 1), cell, col, 1)
}
