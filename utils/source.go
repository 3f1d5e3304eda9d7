package utils

import (
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

var signpostSourceDir string

func init() {
	_, file, _, _ := runtime.Caller(0)

	signpostSourceDir = regexp.MustCompile(`utils.source\.go`).ReplaceAllString(file, "")
}

// FileWithLineNum return the file name and line number of the first caller
// outside this module.
func FileWithLineNum() string {
	for i := 2; i < 15; i++ {
		_, file, line, ok := runtime.Caller(i)
		if ok && (!strings.HasPrefix(file, signpostSourceDir) || strings.HasSuffix(file, "_test.go")) {
			return file + ":" + strconv.FormatInt(int64(line), 10)
		}
	}

	return ""
}
