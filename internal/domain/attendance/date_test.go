package attendance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var eat = time.FixedZone("EAT", 3*60*60)

func TestNormalizeDate(t *testing.T) {
	want := time.Date(2024, time.May, 8, 0, 0, 0, 0, eat)
	// 2024-05-07T22:30:00Z is already the 8th in EAT
	lateUTC := time.Date(2024, time.May, 7, 22, 30, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input any
	}{
		{"iso date", "2024-05-08"},
		{"padded iso date", " 2024-05-08 "},
		{"rfc3339 local", "2024-05-08T09:15:00+03:00"},
		{"rfc3339 utc crossing midnight", "2024-05-07T22:30:00Z"},
		{"time value", lateUTC},
		{"time pointer", &lateUTC},
		{"bson datetime", primitive.NewDateTimeFromTime(lateUTC)},
		{"timestamp", Timestamp{Seconds: lateUTC.Unix()}},
		{"timestamp object", map[string]any{"seconds": float64(lateUTC.Unix()), "nanoseconds": float64(0)}},
		{"admin sdk timestamp object", map[string]any{"_seconds": float64(lateUTC.Unix()), "_nanoseconds": float64(500)}},
		{"epoch millis", float64(lateUTC.UnixMilli())},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := NormalizeDate(c.input, eat)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
			assert.Equal(t, eat, got.Location())
		})
	}
}

func TestNormalizeDate_Invalid(t *testing.T) {
	var nilTime *time.Time

	for _, input := range []any{nil, "", "08/05/2024", "yesterday", nilTime, time.Time{}, map[string]any{"nanoseconds": 1.0}, true} {
		_, err := NormalizeDate(input, eat)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %#v", input)
	}
}

func TestFlexibleDate_UnmarshalJSON(t *testing.T) {
	want := time.Date(2024, time.May, 8, 0, 0, 0, 0, eat)

	for _, body := range []string{
		`{"date":"2024-05-08"}`,
		`{"date":"2024-05-08T06:00:00Z"}`,
		`{"date":{"seconds":1715137200,"nanoseconds":0}}`,
	} {
		var req struct {
			Date FlexibleDate `json:"date"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		got, err := req.Date.Time(eat)
		require.NoError(t, err, body)
		assert.True(t, want.Equal(got), "%s -> %s", body, got)
	}

	var empty struct {
		Date FlexibleDate `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))
	assert.True(t, empty.Date.IsZero())
}
