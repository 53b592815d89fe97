package query

// Query is one projection request as written in a query file. Angles are in
// degrees; they are converted to radians by Camera.
type Query struct {
	Name   string     `json:"name" yaml:"name"`
	Camera CameraSpec `json:"camera" yaml:"camera"`
	Target [3]float64 `json:"target" yaml:"target"`
	Canvas *Canvas    `json:"canvas,omitempty" yaml:"canvas,omitempty"`
}

// CameraSpec is the camera part of a query.
type CameraSpec struct {
	Position    [3]float64  `json:"position" yaml:"position"`
	Orientation Orientation `json:"orientation" yaml:"orientation"`
	FOV         float64     `json:"fov,omitempty" yaml:"fov,omitempty"` // horizontal, degrees
}

// Orientation in degrees.
type Orientation struct {
	Pitch float64 `json:"pitch" yaml:"pitch"`
	Yaw   float64 `json:"yaw" yaml:"yaw"`
	Roll  float64 `json:"roll" yaml:"roll"`
}

// Canvas is the output size in pixels.
type Canvas struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Defaults fill in what a query leaves out.
type Defaults struct {
	Width  int
	Height int
	FOV    float64 // degrees
}

// file is the top-level shape of a query file. A bare list of queries is
// also accepted.
type file struct {
	Queries []Query `json:"queries" yaml:"queries"`
}
