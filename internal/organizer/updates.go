package organizer

import "fmt"

// ProgressUpdate represents a progress event during an organize run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Scan Phase = iota
	Move
	Skip
	Complete
)

func (p Phase) String() string {
	switch p {
	case Scan:
		return "scan"
	case Move:
		return "move"
	case Skip:
		return "skip"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func scanningUpdate(total int, dir string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Scan,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Scanning %s (%d entries)...", dir, total),
	}
}

func movedUpdate(step, total int, rec MoveRecord) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Move,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s -> %s", step, total, rec.Source, rec.Dest),
		Data:    rec,
	}
}

func plannedUpdate(step, total int, rec MoveRecord) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Move,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] [dry-run] %s -> %s", step, total, rec.Source, rec.Dest),
		Data:    rec,
	}
}

func skippedUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Skip,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] skipped %s", step, total, name),
	}
}

func failedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Move,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func completeUpdate(result *RunResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    result.Scanned,
		Total:   result.Scanned,
		Message: fmt.Sprintf("Done: %d moved, %d skipped, %d failed", len(result.Moved), result.Skipped, len(result.Failures)),
		Data:    result,
	}
}
