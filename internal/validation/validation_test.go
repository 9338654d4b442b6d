package validation

import (
	"errors"
	"math"
	"testing"
)

func TestValidateCoordinates(t *testing.T) {
	cases := []struct {
		name string
		lat  float64
		long float64
		want bool
	}{
		{"seattle", 47.6, -122.3, true},
		{"lat lower bound", -90, 0, true},
		{"lat upper bound", 90, 0, true},
		{"long lower bound", 0, -180, true},
		{"long upper bound", 0, 180, true},
		{"origin", 0, 0, true},
		{"lat too low", -90.0001, 0, false},
		{"lat too high", 90.0001, 0, false},
		{"long too low", 0, -180.0001, false},
		{"long too high", 0, 180.0001, false},
		{"both out of range", 120, 300, false},
		{"lat NaN", math.NaN(), 0, false},
		{"long NaN", 0, math.NaN(), false},
		{"lat infinite", math.Inf(1), 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateCoordinates(tc.lat, tc.long); got != tc.want {
				t.Errorf("ValidateCoordinates(%v, %v) = %v, want %v", tc.lat, tc.long, got, tc.want)
			}
		})
	}
}

func TestNewCoordinates(t *testing.T) {
	c, err := NewCoordinates(47.6, -122.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Latitude != 47.6 || c.Longitude != -122.3 {
		t.Errorf("unexpected coordinates: %+v", c)
	}

	if _, err := NewCoordinates(91, 0); err == nil {
		t.Fatal("expected error for out-of-range latitude, got nil")
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestValidateArguments(t *testing.T) {
	cases := []struct {
		name    string
		address string
		lat     *float64
		long    *float64
		wantErr bool
	}{
		{"address only", "1600 pennsylvania ave", nil, nil, false},
		{"pair only", "", floatPtr(47.6), floatPtr(-122.3), false},
		{"address and pair", "seattle", floatPtr(47.6), floatPtr(-122.3), true},
		{"address and latitude only", "seattle", floatPtr(47.6), nil, true},
		{"latitude without longitude", "", floatPtr(47.6), nil, true},
		{"longitude without latitude", "", nil, floatPtr(-122.3), true},
		{"nothing provided", "", nil, nil, true},
		{"pair out of range", "", floatPtr(95), floatPtr(-122.3), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inputs, err := ValidateArguments(tc.address, tc.lat, tc.long)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}

				var argErr *InvalidArgumentsError
				if !errors.As(err, &argErr) {
					t.Fatalf("expected *InvalidArgumentsError, got %T", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tc.address != "" {
				if inputs.Address != tc.address || inputs.Coords != nil {
					t.Errorf("expected address-only inputs, got %+v", inputs)
				}
			} else {
				if inputs.Address != "" || inputs.Coords == nil {
					t.Fatalf("expected coordinate inputs, got %+v", inputs)
				}
				if inputs.Coords.Latitude != *tc.lat || inputs.Coords.Longitude != *tc.long {
					t.Errorf("unexpected coordinates: %+v", inputs.Coords)
				}
			}
		})
	}
}
