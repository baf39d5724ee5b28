package util

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeTagName 标签名统一小写存储
func NormalizeTagName(name string) string {
	// cases.Caser is stateful, one per call
	return cases.Lower(language.Und).String(name)
}

// UniqueIDs 去重并保持首次出现的顺序
func UniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// PtrUint64 用于将 uint64 转换为 *uint64
func PtrUint64(i uint64) *uint64 {
	return &i
}

// PtrString 用于将 string 转换为 *string
func PtrString(s string) *string {
	return &s
}
