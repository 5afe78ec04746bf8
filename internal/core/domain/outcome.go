package domain

type State string

const (
	StateIdle       State = "idle"
	StateProcessing State = "processing"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// CanTransition reports whether a request may move from s to next.
func (s State) CanTransition(next State) bool {
	switch s {
	case StateIdle:
		return next == StateProcessing
	case StateProcessing:
		return next == StateDone || next == StateFailed
	default:
		return false
	}
}

type FailureKind string

const (
	FailureUnsupportedFormat FailureKind = "unsupported_format"
	FailureExtraction        FailureKind = "extraction_error"
	FailureDecode            FailureKind = "decode_error"
	FailureInvalidInput      FailureKind = "invalid_input"
	FailureClassification    FailureKind = "classification_error"
	FailureInternal          FailureKind = "internal"
)

type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// Outcome is what the caller sees for one submitted file: either a category or a failure.
type Outcome struct {
	State      State          `json:"status"`
	Filename   string         `json:"filename"`
	FileType   FileType       `json:"file_type,omitempty"`
	Extracted  *ExtractedText `json:"-"`
	Prediction *Prediction    `json:"-"`
	Failure    *Failure       `json:"error,omitempty"`
}

func (o Outcome) Succeeded() bool {
	return o.State == StateDone
}
