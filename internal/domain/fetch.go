package domain

import "time"

// FetchOutcome labels how a fetch ended.
type FetchOutcome string

const (
	OutcomeSuccess FetchOutcome = "success"
	OutcomeTimeout FetchOutcome = "timeout"
	OutcomeDNS     FetchOutcome = "dns"
	OutcomeRefused FetchOutcome = "refused"
	OutcomeGeneric FetchOutcome = "error"
	OutcomeEmpty   FetchOutcome = "empty"
)

type FetchResult struct {
	Request  Request
	Outcome  FetchOutcome
	Bytes    int
	Duration time.Duration
}
