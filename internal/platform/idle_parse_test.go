package platform

import (
	"errors"
	"testing"
	"time"
)

func TestParseXprintidle(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    time.Duration
		wantErr bool
	}{
		{name: "plain", output: "1500\n", want: 1500 * time.Millisecond},
		{name: "zero", output: "0", want: 0},
		{name: "negative clamps", output: "-20", want: 0},
		{name: "garbage", output: "couldn't open display", wantErr: true},
		{name: "empty", output: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseXprintidle([]byte(tt.output))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseXprintidle(%q) expected error", tt.output)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseXprintidle(%q) error = %v", tt.output, err)
			}
			if got != tt.want {
				t.Errorf("parseXprintidle(%q) = %v, want %v", tt.output, got, tt.want)
			}
		})
	}
}

func TestParseHIDIdleTime(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    time.Duration
		wantErr error
	}{
		{
			name: "registry dump",
			output: `    | |   |   +-o IOHIDSystem  <class IOHIDSystem, id 0x1000002d0, registered, matched, active, busy 0 (0 ms), retain 22>
    | |   |     {
    | |   |       "HIDIdleTime" = 3456789012
    | |   |       "IOClass" = "IOHIDSystem"
    | |   |     }`,
			want: 3456789012,
		},
		{
			name:   "quoted value",
			output: `      "HIDIdleTime" = "1234567890"`,
			want:   1234567890,
		},
		{
			name:    "missing",
			output:  `"IOClass" = "IOHIDSystem"`,
			wantErr: errHIDIdleTimeMissing,
		},
		{
			name: "line without equals is skipped",
			output: `      "HIDIdleTime" 3456789012
      "IOClass" = "IOHIDSystem"`,
			wantErr: errHIDIdleTimeMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHIDIdleTime([]byte(tt.output))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("parseHIDIdleTime() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseHIDIdleTime() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseHIDIdleTime() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := parseHIDIdleTime([]byte(`"HIDIdleTime" = "soon"`)); err == nil {
		t.Error("expected error for non-numeric value")
	}
}
