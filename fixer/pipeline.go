package fixer

import (
	"fmt"
	"strings"
)

// Stage identifies one normalization pass
type Stage string

const (
	// StageMetadata replaces the info block and defaults schemes
	StageMetadata Stage = "metadata"
	// StageTags rewrites tags to canonical short names
	StageTags Stage = "tags"
	// StageDescriptions strips <br> artifacts from operation descriptions
	StageDescriptions Stage = "descriptions"
	// StageCorrections applies the correction table
	StageCorrections Stage = "corrections"
)

// stageOrder is the fixed execution order. The corrector looks paths up
// by key, which the earlier stages never change.
var stageOrder = []Stage{StageMetadata, StageTags, StageDescriptions, StageCorrections}

// StageOrder returns every stage in execution order.
func StageOrder() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// ParseStages parses a comma-separated stage list such as "tags,descriptions".
// An empty string yields nil, which enables all stages.
func ParseStages(s string) ([]Stage, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var stages []Stage
	for _, part := range strings.Split(s, ",") {
		stage := Stage(strings.ToLower(strings.TrimSpace(part)))
		if !stage.valid() {
			return nil, fmt.Errorf("unknown stage %q (valid: metadata, tags, descriptions, corrections)", part)
		}
		stages = append(stages, stage)
	}
	return stages, nil
}

func (s Stage) valid() bool {
	for _, known := range stageOrder {
		if s == known {
			return true
		}
	}
	return false
}

// isStageEnabled checks if a stage is enabled.
func (f *Fixer) isStageEnabled(stage Stage) bool {
	if len(f.EnabledStages) == 0 {
		return true // all stages enabled by default
	}
	for _, s := range f.EnabledStages {
		if s == stage {
			return true
		}
	}
	return false
}

// applyPipeline runs the enabled stages over doc in order.
func (f *Fixer) applyPipeline(doc map[string]any, corrections CorrectionTable, result *FixResult) {
	for _, stage := range stageOrder {
		if !f.isStageEnabled(stage) {
			continue
		}

		before := len(result.Fixes)
		switch stage {
		case StageMetadata:
			fixMetadata(doc, f.Metadata.withDefaults(), result)
		case StageTags:
			fixTags(doc, result)
		case StageDescriptions:
			fixDescriptions(doc, result)
		case StageCorrections:
			fixCorrections(doc, corrections, result)
		}

		f.log().Debug("stage complete", "stage", string(stage), "fixes", len(result.Fixes)-before)
	}

	for _, from := range sortedKeys(result.TagRenames) {
		f.log().Debug("renamed tag", "from", from, "to", result.TagRenames[from])
	}
}
