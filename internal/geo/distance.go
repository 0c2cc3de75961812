package geo

import "math"

const (
	// EarthRadius is the mean Earth radius in metres.
	EarthRadius = 6371e3
	// EarthCircumference is the circumference of a sphere of EarthRadius.
	EarthCircumference = 2 * math.Pi * EarthRadius
)

// HaversineDistance returns the great-circle distance between a and b in metres.
func HaversineDistance(a, b Coordinate) float64 {
	latA := toRadians(a.Latitude)
	latB := toRadians(b.Latitude)
	dLat := latB - latA
	dLon := toRadians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat * 0.5)
	sinLon := math.Sin(dLon * 0.5)
	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLon*sinLon

	return EarthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// OffsetCoordinate moves origin by distance metres along bearing degrees
// (north 0, east 90). Longitude is normalized to [-180, 180].
func OffsetCoordinate(origin Coordinate, distance, bearing float64) Coordinate {
	delta := distance / EarthRadius
	theta := toRadians(bearing)

	phi1 := toRadians(origin.Latitude)
	lambda1 := toRadians(origin.Longitude)

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2),
	)
	lambda2 = math.Mod(lambda2+3*math.Pi, 2*math.Pi) - math.Pi

	return Coordinate{
		Longitude: lambda2 * 180 / math.Pi,
		Latitude:  phi2 * 180 / math.Pi,
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
