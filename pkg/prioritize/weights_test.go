package prioritize

import (
	"errors"
	"testing"

	"github.com/dtnitsch/css-prioritize/pkg/tally"
)

func TestWeightPolicies(t *testing.T) {
	input := tally.Of("float", 3, "margin-left", 1, "color", 0)

	tests := []struct {
		name      string
		transform Transform
		want      tally.Map
	}{
		{
			name:      "identity",
			transform: Identity,
			want:      tally.Of("float", 3, "margin-left", 1, "color", 0),
		},
		{
			name:      "threshold",
			transform: Threshold(1, 5),
			want:      tally.Of("float", 5, "margin-left", 0, "color", 0),
		},
		{
			name:      "capped",
			transform: Capped(2),
			want:      tally.Of("float", 2, "margin-left", 1, "color", 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transform(input)
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeightByName(t *testing.T) {
	input := tally.Of("float", 3, "margin-left", 1)

	tests := []struct {
		name    string
		policy  string
		opts    WeightOptions
		want    tally.Map
		wantErr bool
	}{
		{name: "empty defaults to binary", policy: "", want: tally.Of("float", 1, "margin-left", 1)},
		{name: "binary", policy: "binary", want: tally.Of("float", 1, "margin-left", 1)},
		{name: "case insensitive", policy: " Identity ", want: tally.Of("float", 3, "margin-left", 1)},
		{name: "threshold", policy: "threshold", opts: WeightOptions{Min: 1, Weight: 5}, want: tally.Of("float", 5, "margin-left", 0)},
		{name: "capped", policy: "capped", opts: WeightOptions{Max: 2}, want: tally.Of("float", 2, "margin-left", 1)},
		{name: "capped without max", policy: "capped", wantErr: true},
		{name: "negative threshold", policy: "threshold", opts: WeightOptions{Min: -1, Weight: 1}, wantErr: true},
		{name: "unknown", policy: "quadratic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transform, err := WeightByName(tt.policy, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("WeightByName(%q) error = %v, wantErr %v", tt.policy, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := transform(input); !got.Equal(tt.want) {
				t.Errorf("transform(%v) = %v, want %v", input, got, tt.want)
			}
		})
	}
}

func TestWeightByName_UnknownIsSentinel(t *testing.T) {
	_, err := WeightByName("log", WeightOptions{})
	if !errors.Is(err, ErrUnknownWeight) {
		t.Errorf("error = %v, want ErrUnknownWeight", err)
	}
}
