package tabular

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// VALUE COERCION
// Cells arrive as whatever the ingestion layer produced: native Go numbers,
// bools and times, or their string renderings. Coercion is best-effort and
// never panics; the second return reports success.
// =============================================================================

// AsFloat coerces a cell to float64.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case float32:
		return float64(x), !math.IsNaN(float64(x))
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

var boolWords = map[string]bool{
	"true": true, "t": true, "yes": true, "y": true,
	"false": false, "f": false, "no": false, "n": false,
}

// AsBool coerces a cell to bool. Numeric strings are deliberately excluded so
// 0/1 columns stay numeric.
func AsBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		b, ok := boolWords[strings.ToLower(strings.TrimSpace(x))]
		return b, ok
	default:
		return false, false
	}
}

// timeLayouts lists the string formats the ingestion layers are known to
// emit. Order matters: more specific layouts first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

// AsTime coerces a cell to time.Time.
func AsTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// AsString renders a cell for frequency counting and row fingerprints. Nulls
// render as the empty string.
func AsString(v any) string {
	if IsNull(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// =============================================================================
// COLUMN KIND DETECTION
// =============================================================================

// Kind is the detected storage class of a column.
type Kind string

const (
	KindEmpty    Kind = "empty"
	KindBoolean  Kind = "boolean"
	KindNumeric  Kind = "numeric"
	KindDatetime Kind = "datetime"
	KindText     Kind = "text"
)

// DetectKind inspects the non-blank values of a column and reports its kind.
// Detection order is boolean, numeric, datetime, text; a single value outside
// a class demotes the column to the next class.
func DetectKind(values []any) Kind {
	var present []any
	for _, v := range values {
		if IsBlank(v) {
			continue
		}
		present = append(present, v)
	}
	if len(present) == 0 {
		return KindEmpty
	}

	allBool, allNum, allTime := true, true, true
	for _, v := range present {
		if allBool {
			if _, ok := AsBool(v); !ok {
				allBool = false
			}
		}
		if allNum {
			if _, ok := AsFloat(v); !ok {
				allNum = false
			}
		}
		if allTime {
			if _, ok := AsTime(v); !ok {
				allTime = false
			}
		}
		if !allBool && !allNum && !allTime {
			break
		}
	}
	switch {
	case allBool:
		return KindBoolean
	case allNum:
		return KindNumeric
	case allTime:
		return KindDatetime
	default:
		return KindText
	}
}
