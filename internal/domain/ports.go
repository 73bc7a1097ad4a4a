package domain

// ResultStore reads and writes result documents.
type ResultStore interface {
	Load(path string, opts ParseOptions) (*ResultContainer, *ParseReport, error)
	Save(path string, rc *ResultContainer) error
}

// ConfigLoader loads report configuration for a project directory.
type ConfigLoader interface {
	Load(projectPath string) (ReportConfig, error)
}

// GitInfo resolves the revision of a checked file.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}

// SummaryHistory stores summaries of past report runs.
type SummaryHistory interface {
	Save(projectPath string, entry SummaryEntry) error
	Load(projectPath string) ([]SummaryEntry, error)
}
