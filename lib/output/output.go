package output

import (
	"bufio"
	"fmt"
	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"
	"github.com/kadaan/lttb/config"
	"github.com/kadaan/lttb/lib/common"
	"github.com/kadaan/lttb/lib/downsample"
	"github.com/kadaan/lttb/lib/errors"
	"github.com/kadaan/lttb/lib/sampler"
	"github.com/shopspring/decimal"
	"io"
	"strconv"
	"unsafe"
)

func init() {
	jsoniter.RegisterTypeEncoderFunc("decimal.Decimal", marshalDecimalJSON, marshalDecimalJSONIsEmpty)
	jsoniter.RegisterTypeEncoderFunc("downsample.DataOutput", marshalPointJSON, marshalPointJSONIsEmpty)
}

func marshalDecimalJSON(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString((*((*decimal.Decimal)(ptr))).String())
}

func marshalDecimalJSONIsEmpty(_ unsafe.Pointer) bool {
	return false
}

// marshalPointJSON writes a point as [<epoch seconds>, "<value>"].
func marshalPointJSON(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	p := *((*downsample.DataOutput)(ptr))
	stream.WriteArrayStart()
	stream.WriteInt64(p.X.Unix())
	stream.WriteMore()
	stream.WriteString(p.Y.String())
	stream.WriteArrayEnd()
}

func marshalPointJSONIsEmpty(_ unsafe.Pointer) bool {
	return false
}

type Writer interface {
	Write(results []sampler.Result) error
}

func NewWriter(format config.OutputFormat, w io.Writer) (Writer, error) {
	switch format {
	case config.Text:
		return &textWriter{w: w}, nil
	case config.Json:
		return &jsonWriter{w: w}, nil
	default:
		return nil, errors.New("unsupported output format %q", format)
	}
}

type textWriter struct {
	w io.Writer
}

func (t *textWriter) Write(results []sampler.Result) error {
	bw := bufio.NewWriter(t.w)
	for i, r := range results {
		if i > 0 {
			_, _ = bw.WriteString("\n")
		}
		_, _ = fmt.Fprintf(bw, "# %s (%s -> %s points)\n", r.Series, humanize.Comma(int64(len(r.Series.Points))), humanize.Comma(int64(len(r.Points))))
		for _, p := range r.Points {
			_, _ = fmt.Fprintf(bw, "%s %s\n", common.FormatTime(p.X), p.Y)
		}
	}
	return errors.Wrap(bw.Flush(), "failed to write text output")
}

type jsonSeries struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Labels      map[string]string       `json:"labels,omitempty"`
	InputPoints int                     `json:"inputPoints"`
	Points      []downsample.DataOutput `json:"points"`
}

type jsonDocument struct {
	Series []jsonSeries `json:"series"`
}

type jsonWriter struct {
	w io.Writer
}

func (j *jsonWriter) Write(results []sampler.Result) error {
	doc := jsonDocument{Series: make([]jsonSeries, len(results))}
	for i, r := range results {
		doc.Series[i] = jsonSeries{
			ID:          strconv.FormatUint(r.Series.ID, 16),
			Name:        r.Series.Name,
			Labels:      r.Series.Labels,
			InputPoints: len(r.Series.Points),
			Points:      r.Points,
		}
	}
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(doc), "failed to write json output")
}
