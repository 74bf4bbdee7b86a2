package kernel

import (
	"errors"
	"fmt"
	"math"

	"gochop/internal/pkg/errs"
	"gochop/internal/pkg/guard"
)

const (
	// MinLongitude is the minimum valid longitude in degrees.
	MinLongitude float64 = -180
	// MaxLongitude is the maximum valid longitude in degrees.
	MaxLongitude float64 = 180
	// MinLatitude is the minimum valid latitude in degrees.
	MinLatitude float64 = -90
	// MaxLatitude is the maximum valid latitude in degrees.
	MaxLatitude float64 = 90

	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly initialized GeoPoint.
// GeoPoints must be created using the NewGeoPoint constructor to ensure validity.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via the NewGeoPoint constructor")

// GeoPoint represents a geographic position as a longitude/latitude pair in degrees.
// GeoPoint is an immutable value object that ensures coordinates are always within valid bounds.
// The zero value of GeoPoint is invalid and will fail validation - use constructors to create instances.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(3.3792, 6.5244)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Point: %s", point) // Output: GeoPoint(3.379200,6.524400)
type GeoPoint struct { //nolint:recvcheck //using for validation
	longitude float64
	latitude  float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a new GeoPoint with the specified coordinates.
// Longitude must be within [MinLongitude..MaxLongitude] and latitude within
// [MinLatitude..MaxLatitude]. Returns an error if either coordinate is out of bounds.
//
// Example:
//
//	point, err := NewGeoPoint(3.3792, 6.5244)
//	if err != nil {
//	    log.Fatal("Invalid coordinates:", err)
//	}
func NewGeoPoint(longitude float64, latitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLongitude(longitude), point.setLatitude(latitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed using a constructor.
// The zero value of GeoPoint is invalid and will fail this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Longitude returns the longitude of the point in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// Latitude returns the latitude of the point in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// String returns a human-readable string representation of the GeoPoint.
// This method implements the fmt.Stringer interface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.longitude, p.latitude)
}

// IsEqual compares two geo points for equality.
// Both points must be properly constructed (pass validation) for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.longitude == other.longitude && p.latitude == other.latitude, nil
}

// DistanceKm calculates the great-circle distance between two points in kilometers
// using the haversine formula. Both points must be properly constructed
// (pass validation) for the calculation to succeed.
//
// Example:
//
//	lagos, _ := NewGeoPoint(3.3792, 6.5244)
//	ikeja, _ := NewGeoPoint(3.3515, 6.6018)
//
//	distance, err := lagos.DistanceKm(ikeja)
//	// distance ≈ 9.1 km, err = nil
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := toRadians(other.latitude - p.latitude)
	dLon := toRadians(other.longitude - p.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(p.latitude))*math.Cos(toRadians(other.latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}
	p.longitude = longitude
	return nil
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}
	p.latitude = latitude
	return nil
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
