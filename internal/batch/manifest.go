package batch

import (
	"encoding/json"
	"math"
	"os"
)

// ManifestEntry represents one query in the output manifest.
type ManifestEntry struct {
	Name     string  `json:"name"`
	Visible  bool    `json:"visible"`
	X        *int    `json:"x,omitempty"`
	Y        *int    `json:"y,omitempty"`
	RatioX   float64 `json:"ratio_x"`
	RatioY   float64 `json:"ratio_y"`
	Distance float64 `json:"distance"`
	Image    string  `json:"image,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// Manifest converts results to manifest entries. Pixel coordinates are
// omitted for points that are not visible.
func Manifest(results []Result) []ManifestEntry {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:     r.Name,
			Visible:  r.Visible,
			RatioX:   finite(r.Ratios.X),
			RatioY:   finite(r.Ratios.Y),
			Distance: finite(r.Distance),
			Image:    r.Image,
			Error:    r.Error,
		}
		if r.Visible {
			x, y := r.Pixel.X, r.Pixel.Y
			entries[i].X = &x
			entries[i].Y = &y
		}
	}
	return entries
}

// WriteManifest writes manifest.json to path.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(Manifest(results), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// finite keeps non-finite values out of the JSON encoder, which rejects them.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
