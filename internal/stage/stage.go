// Package stage defines the pipeline stage catalog and display metadata.
package stage

import "strings"

// ID identifies a pipeline stage.
type ID string

const (
	Uploading        ID = "uploading"
	SilenceDetection ID = "silence_detection"
	Transcription    ID = "transcription"
	LayoutAnalysis   ID = "layout_analysis"
	ContentAnalysis  ID = "content_analysis"
	Segmentation     ID = "segmentation"
	Compilation      ID = "compilation"

	// Complete is a terminal signal value, never part of a catalog.
	Complete ID = "complete"
)

// Mode selects which stages the pipeline runs for a job.
type Mode string

const (
	ModeAudio  Mode = "audio"
	ModeVision Mode = "vision"
)

// Valid reports whether m is a known processing mode.
func (m Mode) Valid() bool {
	return m == ModeAudio || m == ModeVision
}

// Definition describes one catalog entry.
type Definition struct {
	ID            ID
	DisplayName   string
	Description   string
	IsParallel    bool
	ParallelGroup int
}

// visionParallelGroup tags the stages that run concurrently in vision mode.
const visionParallelGroup = 1

// Build returns the ordered stage list for a mode. Audio mode omits layout
// analysis; vision mode includes it and tags the concurrent analysis stages
// with a parallel group. The result never contains the Complete sentinel.
func Build(mode Mode) []Definition {
	defs := []Definition{
		{ID: Uploading, DisplayName: "Uploading Media", Description: "Transferring source media to the pipeline"},
		{ID: SilenceDetection, DisplayName: "Detecting Silence", Description: "Scanning the audio track for silent regions"},
		{ID: Transcription, DisplayName: "Transcribing Audio", Description: "Converting speech to text"},
		{ID: LayoutAnalysis, DisplayName: "Analyzing Layout", Description: "Detecting visual layout and scene structure"},
		{ID: ContentAnalysis, DisplayName: "Analyzing Content", Description: "Extracting topics and highlights"},
		{ID: Segmentation, DisplayName: "Segmenting Video", Description: "Cutting the video into segments"},
		{ID: Compilation, DisplayName: "Compiling Output", Description: "Assembling the final output"},
	}

	out := make([]Definition, 0, len(defs))
	for _, d := range defs {
		if mode != ModeVision && d.ID == LayoutAnalysis {
			continue
		}
		if mode == ModeVision {
			switch d.ID {
			case SilenceDetection, Transcription, LayoutAnalysis:
				d.IsParallel = true
				d.ParallelGroup = visionParallelGroup
			}
		}
		out = append(out, d)
	}
	return out
}

// Catalog is an ordered stage list with a position map for id lookups.
type Catalog struct {
	defs  []Definition
	index map[ID]int
}

// NewCatalog builds the catalog for a mode.
func NewCatalog(mode Mode) Catalog {
	defs := Build(mode)
	index := make(map[ID]int, len(defs))
	for i, d := range defs {
		index[d.ID] = i
	}
	return Catalog{defs: defs, index: index}
}

// Definitions returns the ordered stage definitions.
func (c Catalog) Definitions() []Definition {
	return c.defs
}

// Len returns the number of stages in the catalog.
func (c Catalog) Len() int {
	return len(c.defs)
}

// Index returns the catalog position of a stage id.
func (c Catalog) Index(id ID) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// displayNames maps stage ids to fixed labels. It covers catalog stages plus
// auxiliary ids that appear in processing-log entries.
var displayNames = map[ID]string{
	Uploading:        "Uploading Media",
	SilenceDetection: "Detecting Silence",
	Transcription:    "Transcribing Audio",
	LayoutAnalysis:   "Analyzing Layout",
	ContentAnalysis:  "Analyzing Content",
	Segmentation:     "Segmenting Video",
	Compilation:      "Compiling Output",
	"preparing":      "Preparing Analysis",
	"generating":     "Generating Content",
}

// DisplayName returns the label for a stage id. Unknown ids are title-cased
// from the raw id rather than rejected.
func DisplayName(id ID) string {
	if name, ok := displayNames[id]; ok {
		return name
	}
	return titleCase(string(id))
}

// titleCase converts a raw id like "frame_extraction" to "Frame Extraction".
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
