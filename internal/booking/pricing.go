package booking

import "fmt"

// ComputePrice prices a normalized interval at the given hourly rate.
// The duration is taken in fractional hours with no rounding and no
// minimum charge, so a 1h30m booking at rate 30 costs 45.  A rate of
// zero yields a price of zero.  A negative rate cannot arise from the
// room directory under normal operation; it is rejected with
// ErrInvalidInput rather than producing a negative price.
func ComputePrice(hourlyRate float64, iv Interval) (float64, error) {
	if hourlyRate < 0 {
		return 0, fmt.Errorf("%w: negative hourly rate %v", ErrInvalidInput, hourlyRate)
	}
	return iv.Hours() * hourlyRate, nil
}
