package dataset

import (
	"strconv"
	"time"
)

// FileName builds the dataset file name: prefix, query, run date
// (YYYYMMDD) and, when set, the page limit, joined by underscores. The query
// is used verbatim.
func FileName(prefix, query string, date time.Time, pageLimit int, ext string) string {
	name := prefix + "_" + query + "_" + date.Format("20060102")
	if pageLimit != 0 {
		name += "_" + strconv.Itoa(pageLimit)
	}
	return name + "." + ext
}
