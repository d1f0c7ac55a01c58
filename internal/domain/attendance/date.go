package attendance

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timestamp is the seconds/nanoseconds pair document databases use to
// serialize dates ({"seconds": .., "nanoseconds": ..}).
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

func (t Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, t.Nanoseconds)
}

// NormalizeDate turns any accepted date representation into midnight of its
// calendar date in loc. Accepted inputs:
//
//   - "2006-01-02" (interpreted in loc)
//   - RFC 3339 timestamps, converted to loc before truncation
//   - time.Time and primitive.DateTime
//   - Timestamp, or a decoded JSON object with seconds/_seconds and
//     nanoseconds/_nanoseconds keys
//   - a JSON number of epoch milliseconds
func NormalizeDate(v any, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	var t time.Time
	switch d := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("%w: missing", ErrInvalidDate)
	case time.Time:
		t = d
	case *time.Time:
		if d == nil {
			return time.Time{}, fmt.Errorf("%w: missing", ErrInvalidDate)
		}
		t = *d
	case primitive.DateTime:
		t = d.Time()
	case Timestamp:
		t = d.Time()
	case *Timestamp:
		if d == nil {
			return time.Time{}, fmt.Errorf("%w: missing", ErrInvalidDate)
		}
		t = d.Time()
	case string:
		parsed, err := parseDateString(d, loc)
		if err != nil {
			return time.Time{}, err
		}
		t = parsed
	case float64:
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, d)
		}
		t = time.UnixMilli(int64(d))
	case int64:
		t = time.UnixMilli(d)
	case map[string]any:
		ts, err := timestampFromMap(d)
		if err != nil {
			return time.Time{}, err
		}
		t = ts.Time()
	case FlexibleDate:
		return NormalizeDate(d.raw, loc)
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, v)
	}

	if t.IsZero() {
		return time.Time{}, fmt.Errorf("%w: zero time", ErrInvalidDate)
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

func parseDateString(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func timestampFromMap(m map[string]any) (Timestamp, error) {
	seconds, ok := number(m, "seconds", "_seconds")
	if !ok {
		return Timestamp{}, fmt.Errorf("%w: object without seconds", ErrInvalidDate)
	}
	nanos, _ := number(m, "nanoseconds", "_nanoseconds")
	return Timestamp{Seconds: int64(seconds), Nanoseconds: int64(nanos)}, nil
}

func number(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch n := m[k].(type) {
		case float64:
			return n, true
		case json.Number:
			f, err := n.Float64()
			return f, err == nil
		}
	}
	return 0, false
}

// FlexibleDate holds a date exactly as it arrived in a JSON body so that it
// can be normalized once, in the shop's location.
type FlexibleDate struct {
	raw any
}

// DateValue wraps an already-decoded value.
func DateValue(v any) FlexibleDate {
	return FlexibleDate{raw: v}
}

func (d *FlexibleDate) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	d.raw = v
	return nil
}

func (d FlexibleDate) IsZero() bool {
	return d.raw == nil
}

// Time normalizes the held value with NormalizeDate.
func (d FlexibleDate) Time(loc *time.Location) (time.Time, error) {
	return NormalizeDate(d.raw, loc)
}
