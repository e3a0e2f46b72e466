package lockup

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/lockup/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantTime UnixTime
		wantErr  *errors.Error
	}{
		"zero time as number": {
			raw:      "0",
			wantTime: 0,
		},
		"zero time as string": {
			raw:      `"1970-01-01T01:00:00+01:00"`,
			wantTime: 0,
		},
		"a time as string": {
			raw:      `"2019-04-04T11:35:40.89181085+02:00"`,
			wantTime: 1554370540,
		},
		"a time as number": {
			raw:      "1554370540",
			wantTime: 1554370540,
		},
		"negative number": {
			raw:     "-1",
			wantErr: errors.ErrInput,
		},
		"negative time as string": {
			raw:     `"1950-01-01T01:00:00+01:00"`,
			wantErr: errors.ErrInput,
		},
		"invalid format": {
			raw:     `"yesterday"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %+v error, got %+v", tc.wantErr, err)
			}
			if tc.wantErr == nil && got != tc.wantTime {
				t.Fatalf("want %d, got %d", tc.wantTime, got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	base := UnixTime(1000)
	if got := base.Add(time.Hour); got != 4600 {
		t.Fatalf("want 4600, got %d", got)
	}
	if got := base.Add(-time.Second); got != 999 {
		t.Fatalf("want 999, got %d", got)
	}
	if got := base.Add(500 * time.Millisecond); got != 1000 {
		t.Fatalf("sub second durations must be dropped, got %d", got)
	}
}

func TestUnixTimeValidate(t *testing.T) {
	if err := UnixTime(-1).Validate(); !errors.ErrState.Is(err) {
		t.Fatalf("want state error, got %+v", err)
	}
	if err := UnixTime(0).Validate(); err != nil {
		t.Fatalf("want no error, got %+v", err)
	}
}

func TestSystemClockNeverGoesBack(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	readings := []time.Time{
		base,
		base.Add(10 * time.Second),
		base.Add(-time.Hour),
		base.Add(5 * time.Second),
		base.Add(20 * time.Second),
	}
	clock := &SystemClock{wall: func() time.Time {
		now := readings[0]
		readings = readings[1:]
		return now
	}}

	want := []UnixTime{0, 10, 10, 10, 20}
	for i, w := range want {
		if got := clock.Now() - AsUnixTime(base); got != w {
			t.Fatalf("reading %d: want %d, got %d", i, w, got)
		}
	}
}
