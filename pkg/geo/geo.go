package geo

import "math"

// EarthRadius is the mean radius used for all distance calculations, in metres
const EarthRadius = 6371e3

// Distance returns the great-circle distance between two coordinates in metres
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	deltaPhi := toRadians(lat2 - lat1)
	deltaLambda := toRadians(lon2 - lon1)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadius * c
}

// Bearing returns the initial bearing from the first coordinate to the second in degrees, in the range [0, 360)
func Bearing(fromLat, fromLon, toLat, toLon float64) float64 {
	deltaLambda := toRadians(toLon - fromLon)
	phi1 := toRadians(fromLat)
	phi2 := toRadians(toLat)

	y := math.Sin(deltaLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)

	bearing := math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)

	return bearing
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
