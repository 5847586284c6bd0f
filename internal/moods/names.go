package moods

// moodName creates a descriptive name based on audio feature centroid
// values. Uses a 2x2 energy/valence quadrant system with an acousticness
// modifier.
//
// Quadrants:
//   - High Energy + High Valence = "Upbeat Party"
//   - High Energy + Low Valence  = "Intense & Dark"
//   - Low Energy  + High Valence = "Chill & Happy"
//   - Low Energy  + Low Valence  = "Reflective & Melancholy"
//
// Acousticness modifier: if > 0.6, appends "(Acoustic)" to the name.
func moodName(centroid map[string]float64) string {
	energy := centroid["energy"]
	valence := centroid["valence"]
	acousticness := centroid["acousticness"]

	var baseName string

	// Determine quadrant based on energy and valence thresholds
	highEnergy := energy > 0.6
	highValence := valence > 0.5

	switch {
	case highEnergy && highValence:
		baseName = "Upbeat Party"
	case highEnergy && !highValence:
		baseName = "Intense & Dark"
	case !highEnergy && highValence:
		baseName = "Chill & Happy"
	default: // low energy, low valence
		baseName = "Reflective & Melancholy"
	}

	// Add acoustic modifier if acousticness is high
	if acousticness > 0.6 {
		return baseName + " (Acoustic)"
	}

	return baseName
}

// describeMood returns a one-line characterisation of the centroid for
// display next to the group name.
func describeMood(centroid map[string]float64) string {
	energy := centroid["energy"]
	valence := centroid["valence"]

	switch {
	case energy > 0.6 && valence > 0.5:
		return "high-energy, positive tracks for dancing and celebrations"
	case energy > 0.6 && valence <= 0.5:
		return "intense, driving energy with darker emotional tones"
	case energy <= 0.6 && valence > 0.5:
		return "relaxed and uplifting, good for unwinding"
	default:
		return "contemplative and introspective, suited to quiet moments"
	}
}
