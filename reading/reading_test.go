package reading

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields Fields
		want   Reading
	}{
		{
			name: "numbers",
			body: `{"temperature": 21.5, "humidity": 40}`,
			want: Reading{Temperature: "21.5", Humidity: "40"},
		},
		{
			name: "integral float renders without fraction",
			body: `{"temperature": 21.0, "humidity": 40.25}`,
			want: Reading{Temperature: "21", Humidity: "40.25"},
		},
		{
			name: "numeric strings pass through",
			body: `{"temperature": "21.5", "humidity": "40%"}`,
			want: Reading{Temperature: "21.5", Humidity: "40%"},
		},
		{
			name: "booleans",
			body: `{"temperature": true, "humidity": false}`,
			want: Reading{Temperature: "true", Humidity: "false"},
		},
		{
			name: "extra fields ignored",
			body: `{"temperature": -3, "humidity": 99, "station": "home"}`,
			want: Reading{Temperature: "-3", Humidity: "99"},
		},
		{
			name:   "nested paths",
			body:   `{"data": {"temp": 19.75, "rh": {"value": 55}}}`,
			fields: Fields{Temperature: "data.temp", Humidity: "data.rh.value"},
			want:   Reading{Temperature: "19.75", Humidity: "55"},
		},
		{
			name:   "partial fields fall back to defaults",
			body:   `{"t": 1, "humidity": 2}`,
			fields: Fields{Temperature: "t"},
			want:   Reading{Temperature: "1", Humidity: "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.body), tt.fields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{21.5, "21.5"},
		{40, "40"},
		{-3.25, "-3.25"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{0.1, "0.1"},
		{1e-7, "1e-7"},
		{1.5e-7, "1.5e-7"},
		{0.000001, "0.000001"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{-1.25e22, "-1.25e+22"},
		{1e100, "1e+100"},
		{5e-324, "5e-324"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatNumber(tt.in))
		})
	}
}

func TestDecode_ExponentNumbers(t *testing.T) {
	got, err := Decode([]byte(`{"temperature": 1e21, "humidity": 1e-7}`), DefaultFields)
	require.NoError(t, err)
	assert.Equal(t, Reading{Temperature: "1e+21", Humidity: "1e-7"}, got)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantErr   error
	}{
		{name: "not json", body: `<html>oops</html>`},
		{name: "empty body", body: ``},
		{name: "array payload", body: `[1, 2]`},
		{name: "scalar payload", body: `42`},
		{name: "missing temperature", body: `{"humidity": 40}`, wantField: "temperature", wantErr: ErrMissingField},
		{name: "missing humidity", body: `{"temperature": 21}`, wantField: "humidity", wantErr: ErrMissingField},
		{name: "null value", body: `{"temperature": null, "humidity": 40}`, wantField: "temperature", wantErr: ErrMissingField},
		{name: "object value", body: `{"temperature": {"c": 21}, "humidity": 40}`, wantField: "temperature", wantErr: ErrNotScalar},
		{name: "array value", body: `{"temperature": 21, "humidity": [40]}`, wantField: "humidity", wantErr: ErrNotScalar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.body), DefaultFields)
			require.Error(t, err)

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantField, de.Field)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, KindDecode, Kind(err))
		})
	}
}

func TestHTTPStatusError(t *testing.T) {
	err := fmt.Errorf("poll: %w", &HTTPStatusError{StatusCode: 500})

	var se *HTTPStatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 500, se.StatusCode)
	assert.Equal(t, "HTTP error! status: 500", se.Error())
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindOK, Kind(nil))
	assert.Equal(t, KindHTTPStatus, Kind(&HTTPStatusError{StatusCode: 404}))
	assert.Equal(t, KindDecode, Kind(&DecodeError{Err: errors.New("bad")}))
	assert.Equal(t, KindTransport, Kind(errors.New("connection refused")))
}
