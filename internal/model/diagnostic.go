package model

// MessageID identifies an entry in a rule's message catalog.
type MessageID string

const (
	// MessageNoMocks flags mocks, stubs and fakes in test files.
	MessageNoMocks MessageID = "noMocks"
	// MessageNoSpies flags spies in test files.
	MessageNoSpies MessageID = "noSpies"
	// MessageMissingTSExtension flags relative imports without an extension.
	MessageMissingTSExtension MessageID = "missingTsExtension"
)

// Severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// TextEdit replaces the byte range [Start, End) with NewText. An empty
// NewText deletes the range.
type TextEdit struct {
	Start   uint32 `yaml:"start"`
	End     uint32 `yaml:"end"`
	NewText string `yaml:"new_text"`
}

// Overlaps reports whether two edits touch a common byte range.
func (e TextEdit) Overlaps(other TextEdit) bool {
	return e.Start < other.End && other.Start < e.End
}

// Diagnostic is a single reported violation.
type Diagnostic struct {
	RuleID    string            `yaml:"rule"`
	MessageID MessageID         `yaml:"message_id"`
	Message   string            `yaml:"message"`
	Severity  Severity          `yaml:"severity"`
	Data      map[string]string `yaml:"data,omitempty"`
	Line      int               `yaml:"line"`
	Column    int               `yaml:"column"`
	EndLine   int               `yaml:"end_line"`
	EndColumn int               `yaml:"end_column"`
	Fix       *TextEdit         `yaml:"fix,omitempty"`
}

// Fixable reports whether the diagnostic carries a fix.
func (d Diagnostic) Fixable() bool {
	return d.Fix != nil
}
