package drive

// HalfTracks is the number of half-track positions the head can occupy,
// numbered 1..84 per spec.md §4.9 (odd numbers are the 35-42 conventional
// full tracks a 1541 actually uses; even half-tracks exist because the
// stepper motor moves in half-track increments).
const HalfTracks = 84

// zoneOf reports the speed zone (0..3, 3 being the fastest outer zone) for
// a given track number (1-based), per the real drive's track layout: zone
// boundaries at tracks 1-17/18-24/25-30/31-42.
func zoneOf(track int) int {
	switch {
	case track <= 17:
		return 3
	case track <= 24:
		return 2
	case track <= 30:
		return 1
	default:
		return 0
	}
}

// Disk holds the GCR bitstream for every half-track of an inserted floppy,
// plus its write-protect state.
type Disk struct {
	HalfTracks   [HalfTracks][]uint8
	WriteProtect bool
}

// NewDisk returns an empty (unformatted) disk: every half-track reads as
// flux-less zero bits until written.
func NewDisk() *Disk {
	return &Disk{}
}

// track returns the conventional track number (1..42) a half-track index
// belongs to.
func track(halftrack int) int {
	return (halftrack + 1) / 2
}
