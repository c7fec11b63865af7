package actions

import "github.com/rendetalje/friday/pkg/models"

// Param accessors tolerant of JSON round-trips: the approval flow echoes
// params back over the wire, turning ints into float64.

func paramString(params models.Params, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

func paramInt(params models.Params, key string) (int, bool) {
	switch v := params[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func paramFloat(params models.Params, key string) (float64, bool) {
	switch v := params[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
