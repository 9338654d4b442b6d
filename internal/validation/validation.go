// Argument and coordinate validation for the weather pipeline.
package validation

import "fmt"

// InvalidArgumentsError is returned when CLI arguments or coordinate values
// break one of the input rules.
type InvalidArgumentsError struct {
	Reason string
}

func (e *InvalidArgumentsError) Error() string {
	return "invalid arguments: " + e.Reason
}

// Coordinates is an immutable latitude/longitude pair. Construct via
// NewCoordinates so the range invariant always holds.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// RequestInputs is the validated location request. Exactly one of Address
// or Coords is populated.
type RequestInputs struct {
	Address string
	Coords  *Coordinates
}

// ValidateCoordinates reports whether lat is within [-90, 90] and long is
// within [-180, 180]. NaN fails both comparisons, so non-numeric values are
// rejected too.
func ValidateCoordinates(lat, long float64) bool {
	if !(lat >= -90 && lat <= 90) {
		return false
	}

	if !(long >= -180 && long <= 180) {
		return false
	}

	return true
}

// NewCoordinates builds Coordinates, failing unless both bounds hold.
func NewCoordinates(lat, long float64) (Coordinates, error) {
	if !ValidateCoordinates(lat, long) {
		return Coordinates{}, &InvalidArgumentsError{
			Reason: fmt.Sprintf("invalid latitude and/or longitude values provided: latitude: %v, longitude: %v", lat, long),
		}
	}

	return Coordinates{Latitude: lat, Longitude: long}, nil
}

// ValidateArguments enforces the argument-combination rules:
//
//  1. An address and a lat/long pair cannot be provided together.
//  2. Latitude and longitude must both be present or both be absent.
//  3. At least one of the two modes must be supplied.
//
// lat and long are nil when the corresponding flag was not set.
func ValidateArguments(address string, lat, long *float64) (RequestInputs, error) {
	if address != "" && (lat != nil || long != nil) {
		return RequestInputs{}, &InvalidArgumentsError{
			Reason: "address and latitude/longitude cannot be provided together",
		}
	}

	if (lat != nil) != (long != nil) {
		return RequestInputs{}, &InvalidArgumentsError{
			Reason: "both latitude and longitude must be provided together",
		}
	}

	if address == "" && lat == nil {
		return RequestInputs{}, &InvalidArgumentsError{
			Reason: "either '--latitude' and '--longitude' pair, or '--address' must be provided",
		}
	}

	if address != "" {
		return RequestInputs{Address: address}, nil
	}

	coords, err := NewCoordinates(*lat, *long)
	if err != nil {
		return RequestInputs{}, err
	}

	return RequestInputs{Coords: &coords}, nil
}
