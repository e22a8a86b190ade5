package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeLayouts(t *testing.T) {
	want := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input string
	}{
		{"rfc3339", "2024-06-15T14:30:00Z"},
		{"no zone with seconds", "2024-06-15T14:30:00"},
		{"no zone no seconds", "2024-06-15T14:30"},
		{"space separated", "2024-06-15 14:30:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseTime(tc.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %v", got)
		})
	}
}

func TestParseTimeRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "15/06/2024 14:30", "2024-06-15T"} {
		_, err := parseTime(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestGetUserIDClaimTypes(t *testing.T) {
	e := echo.New()

	cases := []struct {
		name  string
		value any
		want  uint64
		ok    bool
	}{
		{"float64 claim", float64(7), 7, true},
		{"string claim", "42", 42, true},
		{"uint64", uint64(9), 9, true},
		{"missing", nil, 0, false},
		{"unparseable string", "abc", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())
			if tc.value != nil {
				c.Set("user_id", tc.value)
			}
			got, err := getUserID(c)
			if !tc.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPathID(t *testing.T) {
	e := echo.New()

	newCtx := func(raw string) echo.Context {
		c := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(raw)
		return c
	}

	id, err := pathID(newCtx("15"), "id")
	require.NoError(t, err)
	assert.Equal(t, uint64(15), id)

	for _, raw := range []string{"0", "-3", "abc", ""} {
		_, err := pathID(newCtx(raw), "id")
		assert.Error(t, err, "raw %q", raw)
	}
}
