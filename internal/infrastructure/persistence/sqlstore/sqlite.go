package sqlstore

import (
	"database/sql"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// sqliteDriverName 注册了Unicode lower函数的SQLite驱动
const sqliteDriverName = "sqlite3_books"

// SQLite内置的LOWER只转换ASCII字母，"Булгаков"这样的作者无法按子串匹配
// 这里用Go的strings.ToLower覆盖lower，与MySQL/PostgreSQL的行为一致
func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
}

// unicodeLower NULL和非文本值原样返回
func unicodeLower(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		return strings.ToLower(v)
	case []byte:
		return strings.ToLower(string(v))
	default:
		return v
	}
}
