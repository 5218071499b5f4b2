package costhistory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Debug writes a debugging dump to the provided io.Writer.  No stability
// guarantees are provided for the output format.
func (hist *CostHistory) Debug(w io.Writer) {
	hist.Mutex.Lock()
	defer hist.Mutex.Unlock()

	buckets := make([]string, len(hist.buckets))
	for index, value := range hist.buckets {
		buckets[index] = strconv.FormatUint(value, 10)
	}

	samples := make([]string, len(hist.samples))
	for index, s := range hist.samples {
		samples[index] = s.Delta.String() + "/" + strconv.FormatUint(s.Counter, 10)
	}

	m := map[string]interface{}{
		"NumBuckets":     hist.NumBuckets,
		"BucketInterval": hist.BucketInterval.String(),
		"DecayFactor":    json.Number(fmt.Sprintf("%f", hist.DecayFactor)),
		"buckets":        "[" + strings.Join(buckets, " ") + "]",
		"samples":        "[" + strings.Join(samples, " ") + "]",
		"epoch":          hist.epoch.Format(time.RFC3339Nano),
		"timeDeltaNow":   hist.timeDeltaNow.String(),
		"counterBias":    hist.counterBias,
		"counterThen":    hist.counterThen,
		"counterNow":     hist.counterNow,
		"perSecond":      json.Number(fmt.Sprintf("%f", hist.perSecond)),
	}

	var buf bytes.Buffer
	buf.Grow(256)

	e := json.NewEncoder(&buf)
	e.SetEscapeHTML(false)
	e.SetIndent("", "  ")

	if err := e.Encode(m); err != nil {
		panic(err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		panic(err)
	}
}
