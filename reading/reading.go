package reading

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Reading is one temperature/humidity sample, already rendered as text.
type Reading struct {
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
}

// Fields names the JSON paths the two values are read from.
// Paths use dot notation to walk nested objects, e.g. "data.temperature".
type Fields struct {
	Temperature string
	Humidity    string
}

// DefaultFields reads top-level "temperature" and "humidity" keys.
var DefaultFields = Fields{
	Temperature: "temperature",
	Humidity:    "humidity",
}

// Decode parses body as JSON and extracts both fields.
//
// Numbers are rendered in their shortest decimal form (21.5, 40), strings
// verbatim and booleans as "true"/"false". Empty paths in fields fall back
// to [DefaultFields].
func Decode(body []byte, fields Fields) (Reading, error) {
	if fields.Temperature == "" {
		fields.Temperature = DefaultFields.Temperature
	}
	if fields.Humidity == "" {
		fields.Humidity = DefaultFields.Humidity
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return Reading{}, &DecodeError{Err: err}
	}
	if _, ok := data.(map[string]interface{}); !ok {
		return Reading{}, &DecodeError{Err: errors.New("payload is not a JSON object")}
	}

	temp, err := field(data, fields.Temperature)
	if err != nil {
		return Reading{}, err
	}
	hum, err := field(data, fields.Humidity)
	if err != nil {
		return Reading{}, err
	}

	return Reading{Temperature: temp, Humidity: hum}, nil
}

func field(data interface{}, path string) (string, error) {
	value, ok := lookup(data, strings.Split(path, "."))
	if !ok || value == nil {
		return "", &DecodeError{Field: path, Err: ErrMissingField}
	}

	text, ok := scalarText(value)
	if !ok {
		return "", &DecodeError{Field: path, Err: ErrNotScalar}
	}
	return text, nil
}

// lookup walks a JSON structure using dot notation parts.
func lookup(data interface{}, parts []string) (interface{}, bool) {
	current := data

	for _, part := range parts {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

func scalarText(v interface{}) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return formatNumber(v), true
	default:
		return "", false
	}
}

// formatNumber renders v the way a browser shows a number as text: shortest
// round-trip digits, plain decimal for 1e-7 <= |v| < 1e21 and exponent form
// ("1e+21", "1.5e-7") outside that range.
func formatNumber(v float64) string {
	if v == 0 {
		return "0" // also covers -0
	}

	abs := math.Abs(v)
	if abs >= 1e-7 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// Go pads the exponent to two digits ("1e-07")
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
