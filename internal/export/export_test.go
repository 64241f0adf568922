package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/histogram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLog() *histogram.Log {
	l := histogram.New(100, 200)
	l.Append(110, 10)
	l.Append(120, 10)
	l.Append(130, -5)
	l.Append(140, -5)
	return l
}

func TestTraceToSVGFillsBothSigns(t *testing.T) {
	svg := TraceToSVG(testLog(), 25, 400, 200)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `fill="`+PositiveFill+`"`)
	assert.Contains(t, svg, `fill="`+NegativeFill+`"`)
	assert.Contains(t, svg, `stroke="#e0e0e0"`)
}

func TestTraceToSVGRejectsDegenerateInput(t *testing.T) {
	assert.Empty(t, TraceToSVG(nil, 25, 400, 200))
	assert.Empty(t, TraceToSVG(testLog(), 25, 10, 10))
}

func TestTraceToSVGSeedOnly(t *testing.T) {
	svg := TraceToSVG(histogram.New(50, 100), 25, 400, 200)
	assert.NotContains(t, svg, "fill-opacity")
	assert.NotContains(t, svg, "#e0e0e0")
}

func TestWriteSamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSamples(&buf, testLog().Samples()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"position", "value"}, rows[0])
	assert.Equal(t, []string{"100.000000", "0.000000"}, rows[1])
	assert.Equal(t, []string{"140.000000", "-5.000000"}, rows[5])
}

func TestWriteStatesAlignsForces(t *testing.T) {
	result := &dynamo.Result{
		States: []dynamo.Kinematics{
			{Position: 100, Mass: 5},
			{Position: 102.5, Velocity: 2.5, Acceleration: 2.5, Mass: 5},
		},
		Forces: []float64{12.5},
		Times:  []float64{0, 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStates(&buf, result))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "0.000000", rows[1][4])
	assert.Equal(t, "12.500000", rows[2][4])
	assert.Equal(t, "102.500000", rows[2][1])

	assert.Error(t, WriteStates(&buf, nil))
}

func TestWriteRun(t *testing.T) {
	dir := t.TempDir()
	result := &dynamo.Result{
		States:     []dynamo.Kinematics{{Position: 100, Mass: 5}},
		Times:      []float64{0},
		Metrics:    map[string]float64{"work": 1.5},
		StepsTaken: 0,
	}
	meta := RunMetadata{
		Preset:     "push/left",
		Timestamp:  time.Unix(1700000000, 0),
		Integrator: "semi-implicit",
		Source:     "script",
	}

	runDir, err := WriteRun(dir, meta, result, testLog(), 25)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "push_left_1700000000"), runDir)

	for _, name := range []string{"metadata.json", "states.csv", "samples.csv", "trace.svg"} {
		assert.FileExists(t, filepath.Join(runDir, name))
	}

	data, err := os.ReadFile(filepath.Join(runDir, "metadata.json"))
	require.NoError(t, err)
	var got RunMetadata
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 1.5, got.Metrics["work"])
	assert.Equal(t, "script", got.Source)

	_, err = WriteRun(dir, meta, nil, testLog(), 25)
	assert.Error(t, err)
}
