package domain

// ProfileResolution is the fixed number of samples in an AmplitudeProfile.
const ProfileResolution = 1000

// AmplitudeProfile is a loudness curve of ProfileResolution samples, each in
// [0,1] and rounded to two decimals, with the loudest sample at 1.0.
type AmplitudeProfile [ProfileResolution]float64

// Samples returns the profile as a slice, convenient for encoding.
func (p *AmplitudeProfile) Samples() []float64 {
	return p[:]
}
