package testcase

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gorustyt/gomeshfield/common"
	"github.com/gorustyt/gomeshfield/common/message"
	"github.com/gorustyt/gomeshfield/isocurve"
	"github.com/gorustyt/gomeshfield/mesh"
	"github.com/gorustyt/gomeshfield/winding"
)

type TestType int

const (
	TEST_CONTOUR TestType = iota
	TEST_WINDING
)

func (t TestType) String() string {
	if t == TEST_CONTOUR {
		return "contour"
	}
	return "winding"
}

type Test struct {
	Type  TestType
	Iso   float64
	Point common.Vec3

	Segments  []isocurve.Segment
	Polylines []isocurve.Polyline
	Winding   winding.Result
	Time      time.Duration
}

// TestCase is a batch of contour and winding queries against one mesh.
//
//	f <mesh.obj>        geometry file
//	field <r|g|b|x|y|z> scalar field, default r for colored meshes, else z
//	normalize <on|off>  scale the field into [0,1] first, default on
//	iso <value>         contour query
//	wn <x> <y> <z>      winding number query
type TestCase struct {
	m_geomFileName string
	m_fieldName    string
	m_normalize    bool
	m_tests        []*Test
}

func NewTestCase() *TestCase {
	return &TestCase{m_normalize: true}
}

func (t *TestCase) GeomFileName() string { return t.m_geomFileName }
func (t *TestCase) Tests() []*Test       { return t.m_tests }
func (t *TestCase) Normalize() bool      { return t.m_normalize }

// SetNormalize sets the default a later normalize row can override.
func (t *TestCase) SetNormalize(on bool) { t.m_normalize = on }

// FieldName returns the configured field for m.
func (t *TestCase) FieldName(m *mesh.Mesh) string {
	if t.m_fieldName != "" {
		return t.m_fieldName
	}
	if m.HasColors() {
		return "r"
	}
	return "z"
}

func (t *TestCase) parseRow(ss []string) error {
	args := ss[1:]
	need := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%q wants %d arguments, got %d", ss[0], n, len(args))
		}
		return nil
	}
	switch ss[0] {
	case "f":
		if err := need(1); err != nil {
			return err
		}
		t.m_geomFileName = args[0]
	case "field":
		if err := need(1); err != nil {
			return err
		}
		t.m_fieldName = args[0]
	case "normalize":
		if err := need(1); err != nil {
			return err
		}
		switch args[0] {
		case "on":
			t.m_normalize = true
		case "off":
			t.m_normalize = false
		default:
			return fmt.Errorf("normalize %q, want on or off", args[0])
		}
	case "iso":
		if err := need(1); err != nil {
			return err
		}
		iso, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}
		t.AddIso(iso)
	case "wn":
		if err := need(3); err != nil {
			return err
		}
		test := &Test{Type: TEST_WINDING}
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return err
			}
			test.Point[i] = v
		}
		t.m_tests = append(t.m_tests, test)
	default:
		return fmt.Errorf("unknown row %q", ss[0])
	}
	return nil
}

func (t *TestCase) Load(r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		row := strings.TrimSpace(sc.Text())
		if row == "" || strings.HasPrefix(row, "#") {
			continue
		}
		if err := t.parseRow(strings.Fields(row)); err != nil {
			return fmt.Errorf("test case line %d: %w", line, err)
		}
	}
	return sc.Err()
}

// AddIso appends a contour query per iso value.
func (t *TestCase) AddIso(isos ...float64) {
	for _, iso := range isos {
		t.m_tests = append(t.m_tests, &Test{Type: TEST_CONTOUR, Iso: iso})
	}
}

func (t *TestCase) HasContours() bool {
	for _, test := range t.m_tests {
		if test.Type == TEST_CONTOUR {
			return true
		}
	}
	return false
}

// Field returns the selected field of m, normalized when enabled.
func (t *TestCase) Field(m *mesh.Mesh, ex *isocurve.Extractor) ([]float64, error) {
	field, err := mesh.NamedField(m, t.FieldName(m))
	if err != nil {
		return nil, err
	}
	if t.m_normalize {
		field = ex.Normalize(field)
	}
	return field, nil
}

// DoTests runs every query against m. Contour queries use the field
// selected by the test case; winding queries need m to be triangulated,
// which is done once here when it has quads.
func (t *TestCase) DoTests(m *mesh.Mesh, ex *isocurve.Extractor, cl *winding.Classifier, tol float64, log *zap.Logger) error {
	log = common.OrNop(log)
	name := t.FieldName(m)
	field, err := t.Field(m, ex)
	if err != nil {
		return err
	}
	var tris mesh.Source = m
	if m.QuadCount() > 0 {
		tris = mesh.Triangulate(m)
	}

	for i, test := range t.m_tests {
		start := time.Now()
		switch test.Type {
		case TEST_CONTOUR:
			test.Segments, err = ex.Extract(m, field, test.Iso)
			if err == nil {
				test.Polylines = isocurve.Join(test.Segments, tol)
			}
		case TEST_WINDING:
			test.Winding, err = cl.Classify(tris, test.Point)
		}
		test.Time = time.Since(start)
		if err != nil {
			return fmt.Errorf("test %d (%s): %w", i, test.Type, err)
		}
	}

	log.Info("test results", zap.String("field", name), zap.Int("tests", len(t.m_tests)))
	for i, test := range t.m_tests {
		fields := []zap.Field{zap.Int("test", i), zap.Stringer("type", test.Type), zap.Duration("time", test.Time)}
		if test.Type == TEST_CONTOUR {
			fields = append(fields, zap.Float64("iso", test.Iso),
				zap.Int("segments", len(test.Segments)), zap.Int("polylines", len(test.Polylines)))
		} else {
			fields = append(fields, zap.Float64s("point", test.Point[:]),
				zap.Float64("number", test.Winding.Number), zap.Bool("inside", test.Winding.Inside))
		}
		log.Info(" - result", fields...)
	}
	return nil
}

// Encode returns one protobuf message per test, in test order.
func (t *TestCase) Encode() [][]byte {
	res := make([][]byte, 0, len(t.m_tests))
	for _, test := range t.m_tests {
		if test.Type == TEST_CONTOUR {
			res = append(res, message.EncodeContours(test.Iso, test.Segments))
		} else {
			res = append(res, message.EncodeWinding(test.Point, test.Winding))
		}
	}
	return res
}
