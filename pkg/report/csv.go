package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// CSVHeader is the column header written by [WriteCSV].
var CSVHeader = []string{
	"File", "Heuristic time", "BnB time", "Clique size", "Clique vertices",
	"Verified", "Complete", "Known best",
}

// WriteCSV writes rows as a CSV table headed by [CSVHeader]. Times are
// seconds with millisecond precision; an unknown best is left empty.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		known := ""
		if r.KnownBest > 0 {
			known = strconv.Itoa(r.KnownBest)
		}
		rec := []string{
			r.File,
			strconv.FormatFloat(r.HeuristicTime, 'f', 3, 64),
			strconv.FormatFloat(r.ExactTime, 'f', 3, 64),
			strconv.Itoa(r.Size),
			r.Clique,
			strconv.FormatBool(r.Verified),
			strconv.FormatBool(r.Complete),
			known,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
