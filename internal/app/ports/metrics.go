package ports

type SimMetrics interface {
	RecordTick(entities int)
	RecordEvents(count int)
	RecordConflict()
	RecordPlacement(industryType string)
	RecordShortfall(industryType string, missing int)
}
