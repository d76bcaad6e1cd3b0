package models

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// ErrTaskNotFound is returned by TaskSet.Find for unknown ids.
var ErrTaskNotFound = errors.New("task not found")

// TaskSet is the content of a task file: one or more tasks.
type TaskSet struct {
	Tasks []Task `yaml:"tasks" json:"tasks"`
}

// Find returns the task with the given id. An empty id selects the only
// task of a single-task file.
func (s *TaskSet) Find(id string) (*Task, error) {
	if id == "" {
		if len(s.Tasks) == 1 {
			return &s.Tasks[0], nil
		}
		return nil, fmt.Errorf("file holds %d tasks, select one by id", len(s.Tasks))
	}
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
}

// LoadTaskFile reads a YAML or JSON task file.
func LoadTaskFile(path string) (*TaskSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}
	set, err := ParseTaskSet(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return set, nil
}

// ParseTaskSet decodes either {tasks: [...]} or a single task document and
// validates every task in it.
func ParseTaskSet(data []byte) (*TaskSet, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, errors.New("empty task file")
	}
	doc := root.Content[0]

	var set TaskSet
	if hasKey(doc, "tasks") {
		if err := doc.Decode(&set); err != nil {
			return nil, err
		}
	} else {
		var task Task
		if err := doc.Decode(&task); err != nil {
			return nil, err
		}
		set.Tasks = []Task{task}
	}

	var errs []error
	for i := range set.Tasks {
		if err := set.Tasks[i].Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &set, nil
}

func hasKey(node *yaml.Node, key string) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// MaxSnapshotSize caps the decompressed size of a drawing snapshot.
const MaxSnapshotSize = 16 << 20

// ErrSnapshotTooLarge is returned when a compressed snapshot expands past
// MaxSnapshotSize.
var ErrSnapshotTooLarge = errors.New("drawing snapshot too large")

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// LoadDrawing reads a drawing snapshot. The file may be YAML or JSON, plain
// or compressed with gzip or zstd; a bare list of forces is accepted too.
func LoadDrawing(path string) (*Drawing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening drawing: %w", err)
	}
	defer f.Close()

	d, err := ReadDrawing(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return d, nil
}

// ReadDrawing decodes a drawing from r, transparently decompressing it.
func ReadDrawing(r io.Reader) (*Drawing, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data, err := Decompress(raw)
	if err != nil {
		return nil, err
	}
	return ParseDrawing(data)
}

// Decompress returns raw unchanged unless it starts with a gzip or zstd
// frame header.
func Decompress(raw []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(raw, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(io.LimitReader(zr, MaxSnapshotSize+1))
		if err != nil {
			return nil, fmt.Errorf("decompressing gzip stream: %w", err)
		}
		if len(out) > MaxSnapshotSize {
			return nil, ErrSnapshotTooLarge
		}
		return out, nil
	case bytes.HasPrefix(raw, zstdMagic):
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxSnapshotSize))
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, fmt.Errorf("decoding zstd stream: %w", err)
		}
		return out, nil
	}
	return raw, nil
}

// ParseDrawing decodes {taskId, forces} or a bare list of forces.
func ParseDrawing(data []byte) (*Drawing, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return &Drawing{}, nil
	}
	doc := root.Content[0]

	var d Drawing
	if doc.Kind == yaml.SequenceNode {
		if err := doc.Decode(&d.Forces); err != nil {
			return nil, err
		}
		return &d, nil
	}
	if err := doc.Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}
