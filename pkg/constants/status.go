package constants

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

const (
	// VisibilityTolerance is the ±window, in seconds, within which a drawing
	// or comment counts as being at the playhead.
	VisibilityTolerance = 1.0

	// ProgressThreshold is the smallest playhead change, in seconds, that
	// triggers recomputing visible drawings.
	ProgressThreshold = 0.1

	MaxCommentLength = 500

	DrawingAnnotationText = "Drawing annotation"
	UnknownVideoName      = "Unknown Video"
)

const (
	DefaultStrokeWidth = 3.0
	DefaultPenColor    = "#FF6B6B"
)

// DrawingColors is the pen palette offered to the freehand-input surface.
var DrawingColors = []string{
	"#FF0000", // Red
	"#00FF00", // Green
	"#0000FF", // Blue
	"#FFFF00", // Yellow
	"#FF00FF", // Magenta
	"#00FFFF", // Cyan
	"#FFA500", // Orange
	"#800080", // Purple
	"#FFC0CB", // Pink
	"#000000", // Black
	"#FFFFFF", // White
}
