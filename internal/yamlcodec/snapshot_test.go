package yamlcodec

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestEmitSnapshots pins the emitter's textual output for a handful of
// representative documents: one MatchSnapshot call per named case.
func TestEmitSnapshots(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"mapping", "name: Ada\nactive: true\ncount: 3\n"},
		{"sequence", "- 1\n- 2\n- 3\n"},
		{"nested", "person:\n  name: Grace\n  langs:\n    - cobol\n    - flow-matic\n"},
	}

	for _, c := range cases {
		v, err := Parse(c.src)
		if err != nil {
			t.Fatalf("%s: unexpected parse error: %v", c.name, err)
		}
		out, ok := Emit(v)
		if !ok {
			t.Fatalf("%s: unexpected emit failure", c.name)
		}
		snaps.MatchSnapshot(t, c.name, out)
	}
}
