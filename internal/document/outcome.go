package document

// Outcome is the result of turning one corpus identifier into a Document:
// either *Parsed or *Failure.
type Outcome interface {
	Source() string
	outcome()
}

// Parsed is the success variant of Outcome.
type Parsed struct {
	Doc *Document
}

func (p *Parsed) Source() string { return p.Doc.ID }
func (*Parsed) outcome()         {}

// FailureKind classifies per-document failures.
type FailureKind string

const (
	FailureRetrieval FailureKind = "retrieval"
	FailureSchema    FailureKind = "schema"
	FailureParse     FailureKind = "parse"
	FailurePanic     FailureKind = "panic"
)

// Failure is the error variant of Outcome.
type Failure struct {
	ID      string      `json:"source" yaml:"source"`
	Kind    FailureKind `json:"kind" yaml:"kind"`
	Message string      `json:"error" yaml:"error"`
}

func (f *Failure) Source() string { return f.ID }
func (*Failure) outcome()         {}
