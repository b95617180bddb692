package coord

import "time"

// DatetimeToEpoch converts a wall-clock value to epoch seconds. Pure, no
// side effects.
func DatetimeToEpoch(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// ResolveTime accepts an already-epoch scalar or a time.Time and returns
// epoch seconds.
func ResolveTime(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case time.Time:
		return DatetimeToEpoch(t), nil
	default:
		return 0, &InvalidInputTypeError{Argument: "time", Value: v}
	}
}
