package book

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ListFilter 列表/统计的过滤条件
// 所有条件可选,同时提供时按AND组合;都不提供则匹配全部记录
type ListFilter struct {
	Author   string // 作者子串,不区分大小写
	Year     *int   // 出版年份精确匹配
	YearFrom *int   // 出版年份下限(含)
	YearTo   *int   // 出版年份上限(含)
}

// Normalize 去除作者关键词首尾空白
func (f ListFilter) Normalize() ListFilter {
	f.Author = strings.TrimSpace(f.Author)
	return f
}

// Validate 年份区间不能倒置
func (f ListFilter) Validate() error {
	if f.YearFrom != nil && f.YearTo != nil && *f.YearFrom > *f.YearTo {
		return toValidationError(validation.Errors{
			"year_from": fmt.Errorf("不能大于year_to(%d)", *f.YearTo),
		})
	}
	return nil
}

// Matches 判断实体是否满足过滤条件
// 存储层用SQL实现同样的语义,这里供内存实现与测试使用
func (f ListFilter) Matches(b *Book) bool {
	if f.Author != "" && !strings.Contains(strings.ToLower(b.Author), strings.ToLower(f.Author)) {
		return false
	}
	if f.Year != nil && b.Year != *f.Year {
		return false
	}
	if f.YearFrom != nil && b.Year < *f.YearFrom {
		return false
	}
	if f.YearTo != nil && b.Year > *f.YearTo {
		return false
	}
	return true
}

// Pagination 已校验的分页参数
// 排序固定为id升序,保证同样的offset/limit多次查询结果一致
type Pagination struct {
	Offset int
	Limit  int
}

// PageRequest 调用方传入的原始分页参数,nil表示使用默认值
type PageRequest struct {
	Offset *int
	Limit  *int
}

// PagePolicy 分页策略(默认每页数量、最大每页数量)
type PagePolicy struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPagePolicy 默认分页策略
var DefaultPagePolicy = PagePolicy{DefaultLimit: 10, MaxLimit: 100}

// Resolve 填充默认值并校验范围
// 业务规则:
// - offset默认0,必须>=0
// - limit默认DefaultLimit,必须在1-MaxLimit之间
// 越界时返回参数错误,而不是静默截断
func (p PagePolicy) Resolve(req PageRequest) (Pagination, error) {
	page := Pagination{Offset: 0, Limit: p.DefaultLimit}
	if req.Offset != nil {
		page.Offset = *req.Offset
	}
	if req.Limit != nil {
		page.Limit = *req.Limit
	}

	err := validation.Errors{
		"offset": validation.Validate(page.Offset, atLeast(0, "必须大于等于0")),
		"limit": validation.Validate(page.Limit,
			atLeast(1, "必须大于等于1"),
			validation.Max(p.MaxLimit).Error(fmt.Sprintf("不能超过%d", p.MaxLimit))),
	}.Filter()
	if err != nil {
		return Pagination{}, toValidationError(err)
	}

	return page, nil
}

// atLeast 下限校验
// ozzo的Min把0当作空值直接跳过，limit=0因此需要单独判断
func atLeast(min int, message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if n, _ := value.(int); n < min {
			return errors.New(message)
		}
		return nil
	})
}
