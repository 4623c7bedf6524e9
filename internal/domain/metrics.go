package domain

type MetricsCollector interface {
	RecordFetch(FetchResult)
	RecordParse(content ParsedContent)
	RecordWorkerStart(workerID string)
	RecordWorkerStop(workerID string)
	RecordJobQueued()
}
