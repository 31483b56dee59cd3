package config

import (
	"math"
	"strconv"
)

var fileSizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with the largest unit (up to GB) in which the
// value is at least 1, rounded to two decimals without trailing zeros:
// 0 -> "0 Bytes", 1536 -> "1.5 KB", 1073741824 -> "1 GB".
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	sign := ""
	magnitude := uint64(bytes)
	if bytes < 0 {
		sign = "-"
		magnitude = uint64(-(bytes + 1)) + 1
	}

	// integer form of floor(log(bytes) / log(1024)); avoids float error at exact powers
	i := 0
	for i < len(fileSizeUnits)-1 && magnitude>>(10*(i+1)) > 0 {
		i++
	}

	scaled := float64(magnitude) / math.Pow(1024, float64(i))
	scaled = math.Round(scaled*100) / 100
	return sign + strconv.FormatFloat(scaled, 'f', -1, 64) + " " + fileSizeUnits[i]
}

// IsValidFileSize reports whether size fits within MAX_FILE_UPLOAD_SIZE (inclusive)
func (e Environment) IsValidFileSize(size int64) bool {
	return size <= e.MaxFileUploadSize
}
