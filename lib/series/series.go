package series

import (
	"github.com/cespare/xxhash/v2"
	"github.com/kadaan/lttb/lib/downsample"
	"sort"
	"strings"
)

const sep = '\xff'

// Series is a named, labeled sequence of points ordered by time.
type Series struct {
	ID     uint64
	Name   string
	Labels map[string]string
	Points []downsample.DataPoint
}

func New(name string, labels map[string]string) *Series {
	return &Series{
		ID:     Hash(name, labels),
		Name:   name,
		Labels: labels,
	}
}

// Hash identifies a series by its name and label pairs, independent of map
// iteration order.
func Hash(name string, labels map[string]string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(name)
	for _, k := range sortedKeys(labels) {
		_, _ = h.Write([]byte{sep})
		_, _ = h.WriteString(k)
		_, _ = h.Write([]byte{sep})
		_, _ = h.WriteString(labels[k])
	}
	return h.Sum64()
}

func (s *Series) String() string {
	if len(s.Labels) == 0 {
		return s.Name
	}
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteByte('{')
	for i, k := range sortedKeys(s.Labels) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(s.Labels[k])
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}

func sortedKeys(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
