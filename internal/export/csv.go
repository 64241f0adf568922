package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/pushcart/internal/dynamo"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteSamples writes the histogram trace as position,value rows.
func WriteSamples(w io.Writer, samples []dynamo.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"position", "value"}); err != nil {
		return err
	}
	for _, s := range samples {
		if err := cw.Write([]string{formatFloat(s.Position), formatFloat(s.Value)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStates writes one row per recorded state. The force column holds the
// force that produced that state, so the initial row reads zero.
func WriteStates(w io.Writer, result *dynamo.Result) error {
	if result == nil {
		return fmt.Errorf("nil result")
	}

	cw := csv.NewWriter(w)
	header := []string{"time", "position", "velocity", "acceleration", "force"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, k := range result.States {
		t, f := 0.0, 0.0
		if i < len(result.Times) {
			t = result.Times[i]
		}
		if i > 0 && i-1 < len(result.Forces) {
			f = result.Forces[i-1]
		}
		row := []string{
			formatFloat(t),
			formatFloat(k.Position),
			formatFloat(k.Velocity),
			formatFloat(k.Acceleration),
			formatFloat(f),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
