package arcade

import (
	"strings"
	"time"
)

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}

func msDur(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
