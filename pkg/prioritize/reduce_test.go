package prioritize

import (
	"testing"

	"github.com/dtnitsch/css-prioritize/pkg/tally"
)

func sampleBatch() []tally.Map {
	return []tally.Map{
		tally.Of("float", 3, "margin-left", 2),
		tally.Of("vertical-align", 1, "font-family", 1),
	}
}

func seededAccumulator() tally.Map {
	return tally.Of("float", 2, "margin-left", 1, "font-family", 1, "vertical-align", 1)
}

// moreThanOne scores 5 for any property used more than once in a unit.
func moreThanOne(m tally.Map) tally.Map {
	return m.MapValues(func(n int) int {
		if n > 1 {
			return 5
		}
		return 0
	})
}

func TestBinary(t *testing.T) {
	tests := []struct {
		name  string
		input tally.Map
		want  tally.Map
	}{
		{
			name:  "empty input",
			input: tally.Map{},
			want:  tally.Map{},
		},
		{
			name:  "all values set to 1",
			input: tally.Of("float", 3, "margin-left", 2, "color", 1),
			want:  tally.Of("float", 1, "margin-left", 1, "color", 1),
		},
		{
			name:  "zero count still marks presence",
			input: tally.Of("display", 0),
			want:  tally.Of("display", 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Binary(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("Binary(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBinary_KeepsKeyOrder(t *testing.T) {
	input := tally.Of("z-index", 4, "align-items", 9, "margin", 2)
	got := Binary(input)

	wantKeys := input.Keys()
	gotKeys := got.Keys()
	if len(gotKeys) != len(wantKeys) {
		t.Fatalf("Binary() has %d keys, want %d", len(gotKeys), len(wantKeys))
	}
	for i := range wantKeys {
		if gotKeys[i] != wantKeys[i] {
			t.Errorf("key %d = %q, want %q", i, gotKeys[i], wantKeys[i])
		}
	}
	if input.Count("align-items") != 9 {
		t.Error("Binary() modified its input")
	}
}

func TestReduceDataSingle(t *testing.T) {
	tests := []struct {
		name      string
		source    tally.Map
		acc       tally.Map
		transform Transform
		want      tally.Map
	}{
		{
			name:   "default function",
			source: tally.Of("float", 3, "margin-left", 2),
			acc:    tally.Map{},
			want:   tally.Of("float", 1, "margin-left", 1),
		},
		{
			name:      "arbitrary helper function",
			source:    tally.Of("float", 10, "margin-left", 1),
			acc:       tally.Map{},
			transform: moreThanOne,
			want:      tally.Of("float", 5, "margin-left", 0),
		},
		{
			name:   "into a supplied initial value",
			source: tally.Of("float", 3, "margin-left", 2),
			acc:    seededAccumulator(),
			want:   tally.Of("float", 3, "margin-left", 2, "font-family", 1, "vertical-align", 1),
		},
		{
			name:   "new keys append after existing keys",
			source: tally.Of("color", 7, "float", 1),
			acc:    tally.Of("float", 2),
			want:   tally.Of("float", 3, "color", 1),
		},
		{
			name:   "empty source leaves accumulator unchanged",
			source: tally.Map{},
			acc:    seededAccumulator(),
			want:   seededAccumulator(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReduceDataSingle(tt.source, tt.acc, tt.transform)
			if !got.Equal(tt.want) {
				t.Errorf("ReduceDataSingle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReduceDataSingle_EmptyAccumulatorEqualsBinary(t *testing.T) {
	sources := []tally.Map{
		{},
		tally.Of("float", 3),
		tally.Of("float", 3, "margin-left", 2, "display", 8),
	}
	for _, source := range sources {
		got := ReduceDataSingle(source, tally.Map{}, nil)
		if !got.Equal(Binary(source)) {
			t.Errorf("ReduceDataSingle(%v, {}) = %v, want %v", source, got, Binary(source))
		}
	}
}

func TestReduceDataSingle_DoesNotMutateInputs(t *testing.T) {
	source := tally.Of("float", 3, "color", 2)
	acc := seededAccumulator()

	_ = ReduceDataSingle(source, acc, nil)

	if !source.Equal(tally.Of("float", 3, "color", 2)) {
		t.Errorf("source modified: %v", source)
	}
	if !acc.Equal(seededAccumulator()) {
		t.Errorf("accumulator modified: %v", acc)
	}
}

func TestReduceDataBulk(t *testing.T) {
	tests := []struct {
		name      string
		sources   []tally.Map
		initial   tally.Map
		transform Transform
		want      tally.Map
	}{
		{
			name:    "default function",
			sources: sampleBatch(),
			want:    tally.Of("float", 1, "margin-left", 1, "vertical-align", 1, "font-family", 1),
		},
		{
			name:      "arbitrary helper function",
			sources:   sampleBatch(),
			transform: moreThanOne,
			want:      tally.Of("float", 5, "margin-left", 5, "vertical-align", 0, "font-family", 0),
		},
		{
			name:    "into a supplied initial value",
			sources: sampleBatch(),
			initial: seededAccumulator(),
			want:    tally.Of("float", 3, "margin-left", 2, "font-family", 2, "vertical-align", 2),
		},
		{
			name:    "empty sequence returns initial",
			sources: nil,
			initial: seededAccumulator(),
			want:    seededAccumulator(),
		},
		{
			name:    "empty sequence and no initial",
			sources: []tally.Map{},
			want:    tally.Map{},
		},
		{
			name: "key order follows first encounter",
			sources: []tally.Map{
				tally.Of("color", 1),
				tally.Of("margin", 1, "color", 4),
				tally.Of("padding", 2, "margin", 1),
			},
			initial:   tally.Of("display", 3),
			transform: Identity,
			want:      tally.Of("display", 3, "color", 5, "margin", 2, "padding", 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReduceDataBulk(tt.sources, tt.initial, tt.transform)
			if !got.Equal(tt.want) {
				t.Errorf("ReduceDataBulk() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReduceDataBulk_SingleItemMatchesSingle(t *testing.T) {
	input := tally.Of("float", 3, "margin-left", 2)

	transforms := map[string]Transform{
		"default":   nil,
		"identity":  Identity,
		"threshold": moreThanOne,
	}
	for name, transform := range transforms {
		t.Run(name, func(t *testing.T) {
			want := ReduceDataSingle(input, seededAccumulator(), transform)
			got := ReduceDataBulk([]tally.Map{input}, seededAccumulator(), transform)
			if !got.Equal(want) {
				t.Errorf("ReduceDataBulk([m]) = %v, want ReduceDataSingle(m) = %v", got, want)
			}
		})
	}
}

func TestReduceDataBulk_Additivity(t *testing.T) {
	acc := tally.Of("float", 7)
	sources := []tally.Map{tally.Of("float", 4), tally.Of("float", 9)}

	got := ReduceDataBulk(sources, acc, Identity)
	if n := got.Count("float"); n != 7+4+9 {
		t.Errorf("float = %d, want %d", n, 7+4+9)
	}
}

func TestReduceDataBulk_CarryOver(t *testing.T) {
	acc := tally.Of("clear", 11, "float", 1)
	sources := []tally.Map{
		tally.Of("float", 2),
		tally.Of("color", 1),
		tally.Of("float", 1, "color", 3),
	}

	got := ReduceDataBulk(sources, acc, nil)
	if n := got.Count("clear"); n != 11 {
		t.Errorf("clear = %d, want 11", n)
	}
	if keys := got.Keys(); keys[0] != "clear" {
		t.Errorf("clear moved to position of %q", keys[0])
	}
}

func TestReduceDataBulk_SplitBatchesCommute(t *testing.T) {
	batch := []tally.Map{
		tally.Of("float", 3, "margin-left", 2),
		tally.Of("vertical-align", 1, "font-family", 1),
		tally.Of("float", 1, "color", 2),
		tally.Of("color", 1),
	}

	whole := ReduceDataBulk(batch, tally.Map{}, nil)
	left := ReduceDataBulk(batch[:2], tally.Map{}, nil)
	right := ReduceDataBulk(batch[2:], tally.Map{}, nil)
	merged := ReduceDataBulk([]tally.Map{right}, left, Identity)

	if !merged.EqualCounts(whole) {
		t.Errorf("split reduction = %v, want %v", merged, whole)
	}
}
