package kernel

import (
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0

	// earthRadiusKm is the mean Earth radius used for distance calculation.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an
// improperly initialized GeoPoint. GeoPoints must be created using the
// NewGeoPoint constructor to ensure coordinate validity.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic coordinate pair with validated bounds.
// It is an immutable value object used for pickup and dropoff locations
// and for distance-based delivery pricing.
//
// Example usage:
//
//	pickup, err := kernel.NewGeoPoint(41.311081, 69.240562)
//	if err != nil {
//	    // handle invalid coordinates
//	}
//	dropoff, _ := kernel.NewGeoPoint(41.326432, 69.228500)
//	km := pickup.DistanceTo(dropoff)
type GeoPoint struct {
	latitude  float64
	longitude float64

	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with validated coordinates.
// Latitude must be within [-90, 90] and longitude within [-180, 180];
// both must be finite numbers.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("latitude",
			fmt.Errorf("%f is not a finite number", latitude))
	}
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("longitude",
			fmt.Errorf("%f is not a finite number", longitude))
	}
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	return GeoPoint{
		latitude:  latitude,
		longitude: longitude,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// Validate ensures the GeoPoint was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// IsEqual compares two points by coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// DistanceTo returns the great-circle distance to another point in
// kilometers, computed with the haversine formula.
func (p GeoPoint) DistanceTo(other GeoPoint) float64 {
	lat1 := p.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - p.latitude) * math.Pi / 180
	dLon := (other.longitude - p.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// String returns the point formatted as "lat,lon".
func (p GeoPoint) String() string {
	return fmt.Sprintf("%f,%f", p.latitude, p.longitude)
}
