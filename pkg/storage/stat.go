package storage

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// statDialect is one stat(1) invocation printing "<size> <mtime>"
type statDialect struct {
	name  string
	flags string
}

// statDialects are tried in order until one produces parseable output
var statDialects = []statDialect{
	{name: "gnu", flags: `-c '%s %Y'`},
	{name: "bsd", flags: `-f '%z %m'`},
}

// parseStatOutput parses "<size> <epoch seconds>" where the seconds may
// carry a fractional part
func parseStatOutput(out string) (int64, time.Time, bool) {
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, time.Time{}, false
	}

	size, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || size < 0 {
		return 0, time.Time{}, false
	}

	seconds, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, time.Time{}, false
	}

	whole, frac := math.Modf(seconds)
	return size, time.Unix(int64(whole), int64(math.Round(frac*1e9))), true
}
