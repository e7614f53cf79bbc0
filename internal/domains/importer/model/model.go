package model

import "strings"

// ImportRow is one data row of the uploaded CSV, untyped. Row is the
// user-facing row number (1-based, +1 for the header row).
type ImportRow struct {
	Row         int
	ProductName string
	Category    string
	Price       string
	Stock       string
	Tags        string
}

// TagNames splits the pipe-delimited tags field, trimming each token
// and dropping empties.
func (r ImportRow) TagNames() []string {
	if r.Tags == "" {
		return nil
	}

	parts := strings.Split(r.Tags, "|")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}

// NameIndex maps trimmed, lower-cased names to backend ids. Built once
// per import run from the pre-fetch, extended as entities are
// auto-created, and discarded afterwards.
type NameIndex struct {
	ids map[string]int64
}

func NewNameIndex() *NameIndex {
	return &NameIndex{ids: make(map[string]int64)}
}

// Normalize is the index key function: case-insensitive, trimmed.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (idx *NameIndex) Get(name string) (int64, bool) {
	id, ok := idx.ids[Normalize(name)]
	return id, ok
}

func (idx *NameIndex) Put(name string, id int64) {
	idx.ids[Normalize(name)] = id
}

func (idx *NameIndex) Len() int {
	return len(idx.ids)
}

// Outcome statuses for the per-row log.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// LogEntry is one line of the per-row log shown to the user.
type LogEntry struct {
	Row     int    `json:"row"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Report is the outcome of a whole import run.
type Report struct {
	TotalRows    int        `json:"total_rows"`
	SuccessCount int        `json:"success_count"`
	FailCount    int        `json:"fail_count"`
	Logs         []LogEntry `json:"logs"`
}

func (r *Report) AddSuccess(row int, message string) {
	r.SuccessCount++
	r.Logs = append(r.Logs, LogEntry{Row: row, Status: StatusSuccess, Message: message})
}

func (r *Report) AddFailure(row int, message string) {
	r.FailCount++
	r.Logs = append(r.Logs, LogEntry{Row: row, Status: StatusError, Message: message})
}
