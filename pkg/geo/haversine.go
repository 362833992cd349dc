package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two
// coordinates using the Haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// RoundCoordinate buckets a latitude or longitude to 3 decimal places
// (roughly a 100 m square). Nearby cache keys depend on two requests in the
// same bucket producing the same rounded value.
func RoundCoordinate(value float64) float64 {
	return math.Round(value*1000) / 1000
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
