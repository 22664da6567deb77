package book

// Aggregate 存储层返回的原始聚合结果
type Aggregate struct {
	Total    int64            // 匹配记录总数
	ByAuthor map[string]int64 // 作者 → 数量
	ByYear   map[int]int64    // 年份 → 数量
}

// Stats 图书统计
type Stats struct {
	Total     int64
	ByAuthor  map[string]int64
	ByCentury map[int]int64
}

// Century 年份所属世纪
// 公式: floor((year-1)/100)+1,即1901-2000为20世纪,2001起为21世纪
// year<=0视为无效年份,ok返回false
func Century(year int) (century int, ok bool) {
	if year <= 0 {
		return 0, false
	}
	return (year-1)/100 + 1, true
}

// NewStats 由聚合结果计算统计
// 无效年份不计入世纪分布,但计入总数
func NewStats(agg *Aggregate) *Stats {
	stats := &Stats{
		Total:     agg.Total,
		ByAuthor:  make(map[string]int64, len(agg.ByAuthor)),
		ByCentury: make(map[int]int64),
	}

	for author, count := range agg.ByAuthor {
		if count > 0 {
			stats.ByAuthor[author] = count
		}
	}

	for year, count := range agg.ByYear {
		if century, ok := Century(year); ok && count > 0 {
			stats.ByCentury[century] += count
		}
	}

	return stats
}
