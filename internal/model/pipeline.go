package model

// PipelineCounts is the per-job summary shown on the overview cards.
// Counts are derived on read, never maintained as mutable counters.
type PipelineCounts struct {
	Total      int `json:"total"`
	Applied    int `json:"applied"`
	Interview  int `json:"interview"`
	Rejected   int `json:"rejected"`
	Hired      int `json:"hired"`
	NewLast24h int `json:"newLast24h"`
}

// PipelineOverviewItem is one job annotated with its candidate counts.
type PipelineOverviewItem struct {
	Job
	Pipeline PipelineCounts `json:"pipeline"`
}

// PipelineBoard is the per-job kanban view: applications grouped into the
// four canonical columns.
type PipelineBoard struct {
	Job             Job                      `json:"job"`
	TotalCandidates int                      `json:"totalCandidates"`
	Columns         map[string][]Application `json:"columns"`
}
