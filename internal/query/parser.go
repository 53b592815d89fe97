package query

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"point-projector/internal/camera"
	"point-projector/internal/mathutil"
)

// Format is a query file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat reports a query file extension that is not JSON or YAML.
var ErrUnknownFormat = errors.New("query: unknown file format")

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Parse reads a query file and returns its queries.
func Parse(path string) ([]Query, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("query: read %s: %w", path, err)
	}
	defer f.Close()

	qs, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("query: parse %s: %w", path, err)
	}
	return qs, nil
}

// Decode reads queries from r. The document is either an object with a
// "queries" list or a bare list. Unnamed queries are numbered from 1.
func Decode(r io.Reader, format Format) ([]Query, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var qs []Query
	switch format {
	case FormatJSON:
		qs, err = decodeJSON(raw)
	case FormatYAML:
		qs, err = decodeYAML(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	for i := range qs {
		if qs[i].Name == "" {
			qs[i].Name = fmt.Sprintf("query-%d", i+1)
		}
	}
	return qs, nil
}

func decodeJSON(raw []byte) ([]Query, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var qs []Query
		err := json.Unmarshal(trimmed, &qs)
		return qs, err
	}
	var f file
	err := json.Unmarshal(trimmed, &f)
	return f.Queries, err
}

func decodeYAML(raw []byte) ([]Query, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		var qs []Query
		err := node.Content[0].Decode(&qs)
		return qs, err
	}
	var f file
	err := node.Content[0].Decode(&f)
	return f.Queries, err
}

// Camera builds the core camera for q. Degrees become radians here and
// nowhere else.
func (q Query) Camera(d Defaults) (camera.Camera, error) {
	aspect := camera.AspectRatio{Width: d.Width, Height: d.Height}
	if q.Canvas != nil {
		aspect = camera.AspectRatio{Width: q.Canvas.Width, Height: q.Canvas.Height}
	}
	fov := q.Camera.FOV
	if fov == 0 {
		fov = d.FOV
	}

	o := camera.Orientation{
		Pitch: mathutil.Deg2Rad(q.Camera.Orientation.Pitch),
		Yaw:   mathutil.Deg2Rad(q.Camera.Orientation.Yaw),
		Roll:  mathutil.Deg2Rad(q.Camera.Orientation.Roll),
	}
	cam, err := camera.New(aspect, o, mathutil.Vec3(q.Camera.Position), mathutil.Deg2Rad(fov))
	if err != nil {
		return camera.Camera{}, fmt.Errorf("query %s: %w", q.Name, err)
	}
	return cam, nil
}

// TargetPoint returns the target as a vector.
func (q Query) TargetPoint() mathutil.Vec3 {
	return mathutil.Vec3(q.Target)
}
