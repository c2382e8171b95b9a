package main

// FileRecord is a single file as emitted by the collector.
type FileRecord struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// FileStat holds the figures reported for one file.
type FileStat struct {
	Filename string
	Chars    int // UTF-8 byte length of the content
	Lines    int
	Tokens   int // Crude estimate, see EstimateTokens
}

// DirStat accumulates size and line totals for every file sharing an
// immediate parent directory. Path is "" for files at the root.
type DirStat struct {
	Path  string
	Chars int
	Lines int
}

// RunStats holds the totals printed on the summary line.
type RunStats struct {
	Files  int
	Lines  int
	Tokens int
}

// Stats is everything the reporter needs for one run.
// Dirs are in first-seen order, Files in collector order.
type Stats struct {
	Run   RunStats
	Dirs  []DirStat
	Files []FileStat
}
