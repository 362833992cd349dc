package cache

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"github.com/fitsync/fitsync-backend/pkg/geo"
)

// maxKeyLength bounds composite keys; longer keys collapse to a digest form
// that stays unique per input.
const maxKeyLength = 100

// Param is one name/value dimension of a composite cache key. A nil-valued
// param is omitted from the key.
type Param struct {
	Name  string
	Value any
}

// P builds a Param.
func P(name string, value any) Param {
	return Param{Name: name, Value: value}
}

// Coord builds a Param holding a latitude or longitude rounded to the shared
// 3-decimal bucket. All location-keyed namespaces must use it so requests in
// the same bucket share an entry.
func Coord(name string, value float64) Param {
	return Param{Name: name, Value: formatCoord(geo.RoundCoordinate(value))}
}

// BuildKey assembles `<namespace>:name:value:...` with params sorted by name
// and nil values omitted. Keys over 100 characters are replaced by
// `<namespace>:hash:<32-hex>` (FNV-128a of the full key).
func BuildKey(namespace string, params ...Param) string {
	parts := make([]string, 0, len(params))
	sorted := make([]Param, len(params))
	copy(sorted, params)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, p := range sorted {
		value, ok := formatValue(p.Value)
		if !ok {
			continue
		}
		parts = append(parts, p.Name+":"+value)
	}

	key := namespace
	if len(parts) > 0 {
		key = namespace + ":" + strings.Join(parts, ":")
	}

	if len(key) > maxKeyLength {
		digest := fnv.New128a()
		digest.Write([]byte(key))
		return namespace + ":hash:" + fmt.Sprintf("%x", digest.Sum(nil))
	}
	return key
}

func formatValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case *int:
		if v == nil {
			return "", false
		}
		return strconv.Itoa(*v), true
	case *bool:
		if v == nil {
			return "", false
		}
		return strconv.FormatBool(*v), true
	case *float64:
		if v == nil {
			return "", false
		}
		return strconv.FormatFloat(*v, 'f', -1, 64), true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

func formatCoord(rounded float64) string {
	return strconv.FormatFloat(rounded, 'f', 3, 64)
}

// UserKeyFragment is the substring carried by any key scoped to a user;
// InvalidateUser matches on it.
func UserKeyFragment(userID string) string {
	return "user_id:" + userID
}

// LocationFragments returns the lat/lng substrings carried by nearby keys in
// the bucket containing the given coordinate.
func LocationFragments(lat, lng float64) (string, string) {
	return "lat:" + formatCoord(geo.RoundCoordinate(lat)),
		"lng:" + formatCoord(geo.RoundCoordinate(lng))
}
