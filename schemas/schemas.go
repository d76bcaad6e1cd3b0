// Package schemas embeds the JSON Schemas for task and drawing files.
package schemas

import _ "embed"

// TaskSchemaJSON is the schema for task files (a single task or a task set).
//
//go:embed task.schema.json
var TaskSchemaJSON string

// DrawingSchemaJSON is the schema for drawing snapshots.
//
//go:embed drawing.schema.json
var DrawingSchemaJSON string
