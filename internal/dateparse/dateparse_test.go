package dateparse

import (
	"errors"
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		layouts []string
		want    time.Time
		wantErr bool
	}{
		{
			name:    "hdfc day month year",
			raw:     "22 Jan 2024",
			layouts: HDFCLayouts,
			want:    time.Date(2024, 1, 22, 0, 0, 0, 0, time.Local),
		},
		{
			name:    "hdfc dashed",
			raw:     "22-01-2024",
			layouts: HDFCLayouts,
			want:    time.Date(2024, 1, 22, 0, 0, 0, 0, time.Local),
		},
		{
			name:    "icici month first",
			raw:     "Jan 22, 2024",
			layouts: ICICILayouts,
			want:    time.Date(2024, 1, 22, 0, 0, 0, 0, time.Local),
		},
		{
			name:    "paytm with time",
			raw:     "22 Jan 2024 10:30 AM",
			layouts: PaytmLayouts,
			want:    time.Date(2024, 1, 22, 10, 30, 0, 0, time.Local),
		},
		{
			name:    "surrounding whitespace",
			raw:     "  22/01/2024 ",
			layouts: GenericLayouts,
			want:    time.Date(2024, 1, 22, 0, 0, 0, 0, time.Local),
		},
		{
			name:    "no match",
			raw:     "sometime last week",
			layouts: GenericLayouts,
			wantErr: true,
		},
		{
			name:    "empty input",
			raw:     "",
			layouts: GenericLayouts,
			wantErr: true,
		},
		{
			name:    "invalid day of month is not normalized",
			raw:     "31 Feb 2024",
			layouts: HDFCLayouts,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.raw, tt.layouts)
			if tt.wantErr {
				if !errors.Is(err, ErrNoMatch) {
					t.Fatalf("Resolve(%q) error = %v, want ErrNoMatch", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.raw, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Resolve(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
