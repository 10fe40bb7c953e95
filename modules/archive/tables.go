package archive

var (
	mintsByHeight = "mints/height/"
	mintsLatest   = "mints/latest/"
	transfersByID = "transfers/id/"
)
