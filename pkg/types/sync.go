package types

import "time"

// FailureKind classifica a causa de uma falha de sincronização. A política de
// retry fica fora do executor; a classificação serve só para o relatório.
type FailureKind string

const (
	FailureAuth            FailureKind = "auth"
	FailureNetwork         FailureKind = "network"
	FailureArchUnavailable FailureKind = "arch_unavailable"
	FailureRejected        FailureKind = "rejected"
	FailureTimeout         FailureKind = "timeout"
	FailureUnknown         FailureKind = "unknown"
)

// SyncResult é o desfecho terminal de uma referência. Imutável depois de
// criado; só o orquestrador escreve nele até entregá-lo ao relatório.
type SyncResult struct {
	Reference string
	Source    ImageReference
	Target    string
	Success   bool
	Skipped   bool
	Reason    string
	Kind      FailureKind
	Error     error
	Plan      []string
	Duration  time.Duration
}

type RunSummary struct {
	RunID        string
	SourceList   string
	Architecture string
	DryRun       bool
	StartedAt    time.Time
	FinishedAt   time.Time

	TotalImages  int
	SuccessCount int
	FailureCount int
	SkippedCount int

	Results []*SyncResult
	Errors  []error
}

func (s *RunSummary) HasFailures() bool {
	return s.FailureCount > 0
}
