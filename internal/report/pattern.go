// Package report implements grouping and selection of Daily Hedging P&L
// Summary message files. Files are keyed by (product, date) extracted from
// the filename; within each group the most recently sent file wins.
package report

import (
	"fmt"
	"regexp"
	"strings"
)

// Product is one of the fixed report product codes.
type Product string

const (
	ProductWB   Product = "WB"
	ProductDBIB Product = "DBIB"
)

// Key identifies a report group: one product on one reporting date.
// Date keeps the literal YYYY_MM_DD form used in the filenames.
type Key struct {
	Product Product
	Date    string
}

func (k Key) String() string {
	return fmt.Sprintf("%s %s", k.Product, k.Date)
}

// filePattern matches report filenames anywhere in the name, so forwarded
// and reply copies ("RE_ ...", "Automatic reply_ ...") still match.
var filePattern = regexp.MustCompile(`(?i)Daily Hedging P&L Summary for (WB|DBIB) (\d{4}_\d{2}_\d{2})\.msg$`)

// Parse extracts the group key from a filename. The second return value is
// false when the filename does not follow the report naming convention;
// that is a filtering predicate, not an error.
func Parse(filename string) (Key, bool) {
	m := filePattern.FindStringSubmatch(filename)
	if m == nil {
		return Key{}, false
	}
	return Key{
		Product: Product(strings.ToUpper(m[1])),
		Date:    m[2],
	}, true
}
