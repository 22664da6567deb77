package sqlstore

import (
	"strings"
)

// likeEscaper 转义LIKE通配符，配合SQL中的ESCAPE '!'
// '!'在sqlite/mysql/postgres的字符串字面量中都没有特殊含义
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// nullableString 空字符串存为NULL
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
