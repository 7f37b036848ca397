package main

import "strings"

const (
	formatScenario = "scenario"
	formatLua      = "lua"
	formatSqlite   = "sqlite"
)

func deduceFormat(format, filePath string) string {
	if format != "" {
		return format
	}
	switch {
	case filePath == "":
		return formatScenario
	case strings.HasSuffix(filePath, ".lua"):
		return formatLua
	case strings.HasSuffix(filePath, ".sqlite"), strings.HasSuffix(filePath, ".db"):
		return formatSqlite
	}
	return format
}
