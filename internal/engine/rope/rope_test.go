package rope

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"pgregory.net/rapid"
)

func TestNew(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("New rope should have length 0, got %d", r.Len())
	}
	if !r.IsEmpty() {
		t.Error("New rope should be empty")
	}
	if r.String() != "" {
		t.Errorf("New rope String() should be empty, got %q", r.String())
	}
	if r.LineCount() != 1 {
		t.Errorf("New rope should have 1 line, got %d", r.LineCount())
	}
	if r.Depth() != 1 {
		t.Errorf("New rope should have depth 1, got %d", r.Depth())
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"short string", "hello"},
		{"with newline", "hello\nworld"},
		{"multiple newlines", "a\nb\nc\nd"},
		{"unicode", "hello 世界 🌍"},
		{"long string", strings.Repeat("abcdefghij", 100)},
		{"long unicode", strings.Repeat("日本語\n", 200)},
		{"very long string", strings.Repeat("x", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			if r.String() != tt.input {
				t.Errorf("String() = %q, want %q", r.String(), tt.input)
			}
			if r.Len() != len(tt.input) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.input))
			}
			if err := r.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
			it := r.Chunks()
			for it.Next() {
				if len(it.Chunk()) > MaxLeafLen {
					t.Errorf("chunk of %d bytes exceeds MaxLeafLen", len(it.Chunk()))
				}
				if !utf8.Valid(it.Chunk()) {
					t.Errorf("chunk %q splits a character", it.Chunk())
				}
			}
		})
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		index    int
		text     string
		expected string
	}{
		{"insert at start", "world", 0, "hello ", "hello world"},
		{"insert at end", "hello", 5, " world", "hello world"},
		{"insert in middle", "helloworld", 5, " ", "hello world"},
		{"insert into empty", "", 0, "hello", "hello"},
		{"insert empty string", "hello", 3, "", "hello"},
		{"insert unicode", "hello", 5, " 世界", "hello 世界"},
		{"insert at unicode boundary", "世界", 3, "!", "世!界"},
		{"insert newline", "ab", 1, "\n", "a\nb"},
		{"insert into long", strings.Repeat("a", 200), 100, "X", strings.Repeat("a", 100) + "X" + strings.Repeat("a", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial)
			r = r.Insert(tt.index, tt.text)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
			if err := r.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		index int
		left  string
		right string
	}{
		{"split at start", "hello", 0, "", "hello"},
		{"split at end", "hello", 5, "hello", ""},
		{"split in middle", "hello world", 5, "hello", " world"},
		{"split empty", "", 0, "", ""},
		{"split unicode", "世界", 3, "世", "界"},
		{"split long", strings.Repeat("ab", 100), 77, strings.Repeat("ab", 100)[:77], strings.Repeat("ab", 100)[77:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := FromString(tt.input).Split(tt.index)
			if got := left.String(); got != tt.left {
				t.Errorf("left = %q, want %q", got, tt.left)
			}
			if got := right.String(); got != tt.right {
				t.Errorf("right = %q, want %q", got, tt.right)
			}
			if err := left.Validate(); err != nil {
				t.Errorf("left Validate() = %v", err)
			}
			if err := right.Validate(); err != nil {
				t.Errorf("right Validate() = %v", err)
			}
		})
	}
}

func TestConcat(t *testing.T) {
	tests := []struct {
		left, right string
	}{
		{"", ""},
		{"hello", ""},
		{"", "world"},
		{"hello ", "world"},
		{"a\nb", "c\nd"},
		{strings.Repeat("x", 100), strings.Repeat("y\n", 100)},
	}

	for _, tt := range tests {
		r := Concat(FromString(tt.left), FromString(tt.right))
		if got := r.String(); got != tt.left+tt.right {
			t.Errorf("Concat(%q, %q) = %q", tt.left, tt.right, got)
		}
		if err := r.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
		if got, want := r.LineCount(), strings.Count(tt.left+tt.right, "\n")+1; got != want {
			t.Errorf("LineCount() = %d, want %d", got, want)
		}
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		start, end int
		expected   string
	}{
		{"delete start", "hello world", 0, 6, "world"},
		{"delete end", "hello world", 5, 11, "hello"},
		{"delete middle", "hello world", 2, 9, "held"},
		{"delete all", "hello", 0, 5, ""},
		{"delete nothing", "hello", 2, 2, "hello"},
		{"delete newline", "a\nb", 1, 2, "ab"},
		{"delete unicode", "a世b", 1, 4, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input).Delete(tt.start, tt.end)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
			if err := r.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 1},
		{"hello", 1},
		{"a\nb", 2},
		{"a\n", 2},
		{"\n", 2},
		{"\n\n", 3},
		{"a\nb\nc", 3},
		{strings.Repeat("line\n", 100), 101},
	}

	for _, tt := range tests {
		if got := FromString(tt.input).LineCount(); got != tt.want {
			t.Errorf("LineCount(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestLineLength(t *testing.T) {
	tests := []struct {
		input  string
		line   int
		want   int
		wantOK bool
	}{
		{"", 0, 0, true},
		{"", 1, 0, false},
		{"ab\ncd\ne", 0, 3, true},
		{"ab\ncd\ne", 1, 3, true},
		{"ab\ncd\ne", 2, 1, true},
		{"ab\ncd\ne", 3, 0, false},
		{"ab\ncd\ne", -1, 0, false},
		{"a\n", 0, 2, true},
		{"a\n", 1, 0, true},
		{"é\nx", 0, 2, true},
		{"日本語", 0, 3, true},
	}

	for _, tt := range tests {
		got, ok := FromString(tt.input).LineLength(tt.line)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("LineLength(%q, %d) = (%d, %v), want (%d, %v)",
				tt.input, tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIndexFromPosition(t *testing.T) {
	tests := []struct {
		input  string
		pos    Position
		want   int
		wantOK bool
	}{
		{"", Position{0, 0}, 0, true},
		{"", Position{0, 1}, 0, false},
		{"ab\ncd", Position{0, 0}, 0, true},
		{"ab\ncd", Position{0, 2}, 2, true},
		{"ab\ncd", Position{1, 0}, 3, true},
		{"ab\ncd", Position{1, 2}, 5, true},
		{"ab\ncd", Position{1, 3}, 0, false},
		{"ab\ncd", Position{2, 0}, 0, false},
		{"ab\ncd", Position{-1, 0}, 0, false},
		{"a\n", Position{1, 0}, 2, true},
		{"世界\nx", Position{0, 1}, 3, true},
		{"世界\nx", Position{1, 1}, 8, true},
	}

	for _, tt := range tests {
		got, ok := FromString(tt.input).IndexFromPosition(tt.pos)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("IndexFromPosition(%q, %v) = (%d, %v), want (%d, %v)",
				tt.input, tt.pos, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPositionFromIndex(t *testing.T) {
	tests := []struct {
		input string
		index int
		want  Position
	}{
		{"", 0, Position{0, 0}},
		{"ab\ncd", 0, Position{0, 0}},
		{"ab\ncd", 2, Position{0, 2}},
		{"ab\ncd", 3, Position{1, 0}},
		{"ab\ncd", 5, Position{1, 2}},
		{"ab\ncd", 99, Position{1, 2}},
		{"世界\nx", 3, Position{0, 1}},
		{"世界\nx", 7, Position{1, 0}},
	}

	for _, tt := range tests {
		if got := FromString(tt.input).PositionFromIndex(tt.index); got != tt.want {
			t.Errorf("PositionFromIndex(%q, %d) = %v, want %v", tt.input, tt.index, got, tt.want)
		}
	}
}

func TestLineStart(t *testing.T) {
	r := FromString("one\ntwo\n\nfour")
	want := []int{0, 4, 8, 9}
	for line, w := range want {
		got, ok := r.LineStart(line)
		if !ok || got != w {
			t.Errorf("LineStart(%d) = (%d, %v), want (%d, true)", line, got, ok, w)
		}
	}
	if _, ok := r.LineStart(4); ok {
		t.Error("LineStart past the last line should fail")
	}
}

func TestChunkIterator(t *testing.T) {
	input := strings.Repeat("chunk text\n", 50)
	r := FromString(input)

	var sb strings.Builder
	count := 0
	it := r.Chunks()
	for it.Next() {
		if len(it.Chunk()) == 0 {
			t.Error("iterator yielded an empty chunk")
		}
		sb.Write(it.Chunk())
		count++
	}
	if sb.String() != input {
		t.Error("chunks do not reassemble the input")
	}
	if count < 2 {
		t.Errorf("expected several chunks, got %d", count)
	}
	if it.Next() {
		t.Error("exhausted iterator should stay exhausted")
	}
}

func TestLineIterator(t *testing.T) {
	tests := []string{
		"",
		"single",
		"a\nb",
		"a\n",
		"\n\n",
		"héllo\nwörld\n",
		strings.Repeat("a long line that spans several leaves ", 10) + "\nshort\n" + strings.Repeat("z", 130),
	}

	for _, input := range tests {
		r := FromString(input)
		var got []string
		it := r.Lines()
		for it.Next() {
			got = append(got, it.Text())
		}
		want := strings.Split(input, "\n")
		if len(got) != len(want) {
			t.Errorf("Lines(%q) yielded %d lines, want %d", input, len(got), len(want))
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Lines(%q)[%d] = %q, want %q", input, i, got[i], want[i])
			}
		}
		if len(got) != r.LineCount() {
			t.Errorf("Lines(%q) yielded %d lines, LineCount() = %d", input, len(got), r.LineCount())
		}
	}
}

func TestConsumedRopePanics(t *testing.T) {
	ops := map[string]func(r *Rope){
		"Len":    func(r *Rope) { r.Len() },
		"String": func(r *Rope) { _ = r.String() },
		"Insert": func(r *Rope) { r.Insert(0, "x") },
		"Concat": func(r *Rope) { Concat(r, New()) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			r := FromString("hello")
			_ = r.Insert(0, "x")

			defer func() {
				if recover() == nil {
					t.Error("expected panic on consumed rope")
				}
			}()
			op(r)
		})
	}
}

func TestDestroyReleasesNodes(t *testing.T) {
	// 200 bytes bisect into 4 leaves under 3 branches.
	r := FromString(strings.Repeat("x", 200))
	before := DefaultPool.Stats()
	r.Destroy()
	after := DefaultPool.Stats()

	if got := after.Puts - before.Puts; got != 7 {
		t.Errorf("Destroy released %d nodes, want 7", got)
	}
}

func TestBalance(t *testing.T) {
	r := New()
	for i := 0; i < 1000; i++ {
		r = r.Insert(r.Len(), string(rune('a'+i%26)))
	}
	if !r.NeedsBalance() {
		t.Fatalf("appending one byte at a time should degrade depth, got %d", r.Depth())
	}

	want := r.String()
	r = r.Balance()
	if r.String() != want {
		t.Error("Balance changed the content")
	}
	if r.NeedsBalance() {
		t.Errorf("balanced rope still needs balance, depth %d", r.Depth())
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestWriteTo(t *testing.T) {
	input := strings.Repeat("write me\n", 40)
	var buf bytes.Buffer
	n, err := FromString(input).WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(len(input)) || buf.String() != input {
		t.Errorf("WriteTo() wrote %d bytes %q", n, buf.String())
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	b.WriteString("hello")
	b.WriteByte(' ')
	b.WriteRune('世')
	b.Write([]byte("\nline two"))

	if b.Len() != len("hello 世\nline two") {
		t.Errorf("Len() = %d", b.Len())
	}
	r := b.Build()
	if got := r.String(); got != "hello 世\nline two" {
		t.Errorf("Build() = %q", got)
	}
	if b.Len() != 0 {
		t.Error("Build should reset the builder")
	}
}

func TestFromReader(t *testing.T) {
	input := strings.Repeat("read from a reader\n", 30)
	r, err := FromReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("FromReader() error = %v", err)
	}
	if r.String() != input {
		t.Error("FromReader content mismatch")
	}
}

func TestFromLines(t *testing.T) {
	r := FromLines([]string{"a", "b", "c"})
	if r.String() != "a\nb\nc" || r.LineCount() != 3 {
		t.Errorf("FromLines() = %q", r.String())
	}
}

// textGen draws short strings mixing ASCII, newlines and multi-byte runes.
func textGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b", "\n", "é", "世", "🌍", "xyz"}), 0, 120).Draw(t, "parts")
		return strings.Join(parts, "")
	})
}

// boundaries returns every rune-start offset of s plus len(s).
func boundaries(s string) []int {
	out := make([]int, 0, len(s)+1)
	for i := range s {
		out = append(out, i)
	}
	return append(out, len(s))
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := textGen().Draw(t, "s")
		r := FromString(s)
		if r.String() != s {
			t.Fatalf("round trip of %q gave %q", s, r.String())
		}
		if r.LineCount() != strings.Count(s, "\n")+1 {
			t.Fatalf("LineCount() = %d for %q", r.LineCount(), s)
		}
	})
}

func TestInsertProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := textGen().Draw(t, "s")
		ins := textGen().Draw(t, "t")
		i := rapid.SampledFrom(boundaries(s)).Draw(t, "i")

		r := FromString(s).Insert(i, ins)
		if want := s[:i] + ins + s[i:]; r.String() != want {
			t.Fatalf("Insert(%d, %q) into %q = %q, want %q", i, ins, s, r.String(), want)
		}
		if err := r.Validate(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestSplitConcatProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := textGen().Draw(t, "s")
		i := rapid.IntRange(0, len(s)).Draw(t, "i")

		left, right := FromString(s).Split(i)
		if left.Len() != i {
			t.Fatalf("left.Len() = %d, want %d", left.Len(), i)
		}
		r := Concat(left, right)
		if r.String() != s {
			t.Fatalf("split at %d and concat gave %q, want %q", i, r.String(), s)
		}
		if err := r.Validate(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestPositionRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// Build an irregular tree through a few inserts.
		r := FromString(textGen().Draw(t, "s"))
		for k := rapid.IntRange(0, 4).Draw(t, "edits"); k > 0; k-- {
			cur := r.String()
			i := rapid.SampledFrom(boundaries(cur)).Draw(t, "at")
			r = r.Insert(i, textGen().Draw(t, "ins"))
		}

		for _, i := range boundaries(r.String()) {
			pos := r.PositionFromIndex(i)
			got, ok := r.IndexFromPosition(pos)
			if !ok || got != i {
				t.Fatalf("offset %d -> %v -> (%d, %v)", i, pos, got, ok)
			}
		}
	})
}

func TestLineLengthProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := textGen().Draw(t, "s")
		r := FromString(s)
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			want := utf8.RuneCountInString(line)
			if i < len(lines)-1 {
				want++
			}
			got, ok := r.LineLength(i)
			if !ok || got != want {
				t.Fatalf("LineLength(%d) of %q = (%d, %v), want %d", i, s, got, ok, want)
			}
		}
	})
}
