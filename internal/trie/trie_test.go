package trie

import (
	"testing"

	"pgregory.net/rapid"
)

func runes(s string) []rune { return []rune(s) }

func TestInsertLookup(t *testing.T) {
	tr := New[rune, int](RuneEncoding{})
	tr.Insert(runes("a"), 1)
	tr.Insert(runes("ab"), 2)
	tr.Insert(runes("b"), 3)

	tests := []struct {
		seq    string
		want   int
		wantOK bool
	}{
		{"a", 1, true},
		{"ab", 2, true},
		{"b", 3, true},
		{"abc", 0, false},
		{"x", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			got, ok := tr.Lookup(runes(tt.seq))
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Lookup(%q) = %d, %v; want %d, %v", tt.seq, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if tr.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tr.Len())
	}
}

func TestInsertEmptyIsNoop(t *testing.T) {
	tr := New[byte, string](ByteEncoding{})
	tr.Insert(nil, "x")
	if tr.Len() != 0 {
		t.Errorf("Len() = %d after empty insert, want 0", tr.Len())
	}
}

func TestInsertReplaces(t *testing.T) {
	tr := New[byte, string](ByteEncoding{})
	tr.Insert([]byte("ab"), "first")
	tr.Insert([]byte("ab"), "second")

	got, _ := tr.Lookup([]byte("ab"))
	if got != "second" {
		t.Errorf("Lookup = %q, want %q", got, "second")
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
}

func TestLookupLongest(t *testing.T) {
	tr := New[rune, string](RuneEncoding{})
	tr.Insert(runes("a"), "v1")
	tr.Insert(runes("ab"), "v2")

	tests := []struct {
		query     string
		wantValue string
		wantEaten int
		wantOK    bool
	}{
		{"ab", "v2", 2, true},
		{"ax", "v1", 1, true},
		{"a", "v1", 1, true},
		{"abz", "v2", 2, true},
		{"x", "", 0, false},
		{"", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			m, ok := tr.LookupLongest(runes(tt.query))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if m.Value != tt.wantValue || m.Eaten != tt.wantEaten {
				t.Errorf("got {%q, %d}, want {%q, %d}", m.Value, m.Eaten, tt.wantValue, tt.wantEaten)
			}
		})
	}
}

func TestLookupLongestSkipsUnboundIntermediate(t *testing.T) {
	tr := New[rune, int](RuneEncoding{})
	tr.Insert(runes("abc"), 3)

	if _, ok := tr.LookupLongest(runes("abx")); ok {
		t.Error("expected no match when only the longer sequence is bound")
	}
	m, ok := tr.LookupLongest(runes("abcd"))
	if !ok || m.Value != 3 || m.Eaten != 3 {
		t.Errorf("got %+v, %v; want {3 3}, true", m, ok)
	}
}

func TestWalk(t *testing.T) {
	tr := New[rune, int](RuneEncoding{})
	tr.Insert(runes("gg"), 1)

	n, ok := tr.Walk(runes("g"))
	if !ok {
		t.Fatal("Walk(g) should reach a node")
	}
	if _, bound := n.Value(); bound {
		t.Error("intermediate node should carry no value")
	}
	if !n.HasChildren() {
		t.Error("intermediate node should have children")
	}

	n, ok = tr.Walk(runes("gg"))
	if !ok || n.HasChildren() {
		t.Error("terminal node should exist and have no children")
	}

	if _, ok := tr.Walk(runes("gx")); ok {
		t.Error("Walk(gx) should fail")
	}

	root, ok := tr.Walk(nil)
	if !ok || !root.HasChildren() {
		t.Error("Walk(nil) should return the root")
	}
}

func TestRemoveKeepsBranches(t *testing.T) {
	tr := New[rune, int](RuneEncoding{})
	tr.Insert(runes("ab"), 1)

	if !tr.Remove(runes("ab")) {
		t.Fatal("Remove should report success")
	}
	if tr.Remove(runes("ab")) {
		t.Error("second Remove should report false")
	}
	if _, ok := tr.Lookup(runes("ab")); ok {
		t.Error("value should be gone")
	}
	if tr.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tr.Len())
	}

	// The path is not pruned.
	n, ok := tr.Walk(runes("a"))
	if !ok || !n.HasChildren() {
		t.Error("dead branch should still be walkable")
	}
}

func TestEach(t *testing.T) {
	tr := New[byte, int](ByteEncoding{})
	tr.Insert([]byte("b"), 2)
	tr.Insert([]byte("a"), 1)
	tr.Insert([]byte("ac"), 3)

	var got []string
	tr.Each(func(p []byte) (byte, bool) { return p[0], true }, func(seq []byte, v int) {
		got = append(got, string(seq))
	})

	want := []string{"a", "ac", "b"}
	if len(got) != len(want) {
		t.Fatalf("Each visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Each[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// LookupLongest must agree with a brute-force scan over the bound keys.
func TestLookupLongestProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		alphabet := rapid.SampledFrom([]rune("abc"))
		seqGen := rapid.SliceOfN(alphabet, 1, 4)

		bound := rapid.SliceOfN(seqGen, 0, 8).Draw(t, "bound")
		query := rapid.SliceOfN(alphabet, 0, 6).Draw(t, "query")

		tr := New[rune, int](RuneEncoding{})
		values := make(map[string]int)
		for i, seq := range bound {
			tr.Insert(seq, i)
			values[string(seq)] = i
		}

		wantEaten := 0
		for n := 1; n <= len(query); n++ {
			if _, ok := values[string(query[:n])]; ok {
				wantEaten = n
			}
		}

		m, ok := tr.LookupLongest(query)
		if wantEaten == 0 {
			if ok {
				t.Fatalf("unexpected match %+v for %q", m, string(query))
			}
			return
		}
		if !ok || m.Eaten != wantEaten || m.Value != values[string(query[:wantEaten])] {
			t.Fatalf("LookupLongest(%q) = %+v, %v; want eaten %d", string(query), m, ok, wantEaten)
		}
	})
}
