package book

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// memoryRepo 内存版Repository,只用于领域服务测试
type memoryRepo struct {
	nextID uint
	books  map[uint]*Book
	calls  int
	err    error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, books: make(map[uint]*Book)}
}

func (r *memoryRepo) Create(_ context.Context, b *Book) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	b.ID = r.nextID
	r.nextID++
	stored := *b
	r.books[b.ID] = &stored
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id uint) (*Book, error) {
	r.calls++
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	found := *b
	return &found, nil
}

func (r *memoryRepo) List(_ context.Context, filter ListFilter, page Pagination) ([]*Book, int64, error) {
	r.calls++
	var matched []*Book
	for _, b := range r.books {
		if filter.Matches(b) {
			found := *b
			matched = append(matched, &found)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if page.Offset >= len(matched) {
		return []*Book{}, total, nil
	}
	end := page.Offset + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[page.Offset:end], total, nil
}

func (r *memoryRepo) Replace(_ context.Context, id uint, d Draft) (*Book, error) {
	r.calls++
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	b.Replace(d)
	updated := *b
	return &updated, nil
}

func (r *memoryRepo) Patch(_ context.Context, id uint, p Patch) (*Book, error) {
	r.calls++
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	p.Apply(b)
	updated := *b
	return &updated, nil
}

func (r *memoryRepo) Delete(_ context.Context, id uint) error {
	r.calls++
	if _, ok := r.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *memoryRepo) Aggregate(_ context.Context, filter ListFilter) (*Aggregate, error) {
	r.calls++
	agg := &Aggregate{ByAuthor: map[string]int64{}, ByYear: map[int]int64{}}
	for _, b := range r.books {
		if !filter.Matches(b) {
			continue
		}
		agg.Total++
		agg.ByAuthor[b.Author]++
		agg.ByYear[b.Year]++
	}
	return agg, nil
}

func seed(t *testing.T, svc Service, drafts ...Draft) []*Book {
	t.Helper()
	books := make([]*Book, 0, len(drafts))
	for _, d := range drafts {
		b, err := svc.CreateBook(context.Background(), d)
		require.NoError(t, err)
		books = append(books, b)
	}
	return books
}

func TestService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo(), DefaultPagePolicy)

	draft := Draft{Title: "Dune", Author: "Herbert", Year: 1965}
	created, err := svc.CreateBook(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)

	got, err := svc.GetBook(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, draft, got.Draft(), "除ID外字段应与输入一致")
}

func TestService_CreateInvalidDoesNotTouchRepository(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, DefaultPagePolicy)

	_, err := svc.CreateBook(context.Background(), Draft{Title: "", Author: "", Year: 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBook))
	assert.Zero(t, repo.calls, "校验失败时不应访问仓储")
}

func TestService_CreateStorageError(t *testing.T) {
	repo := newMemoryRepo()
	repo.err = apperrors.Wrap(errors.New("disk full"), "创建图书失败")
	svc := NewService(repo, DefaultPagePolicy)

	_, err := svc.CreateBook(context.Background(), Draft{Title: "Dune", Author: "Herbert", Year: 1965})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeStorage, apperrors.GetAppError(err).Code)
}

func TestService_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo(), DefaultPagePolicy)
	books := seed(t, svc, Draft{Title: "Dune", Author: "Herbert", Year: 1965})

	require.NoError(t, svc.DeleteBook(ctx, books[0].ID))

	_, err := svc.GetBook(ctx, books[0].ID)
	assert.ErrorIs(t, err, ErrBookNotFound)

	err = svc.DeleteBook(ctx, books[0].ID)
	assert.ErrorIs(t, err, ErrBookNotFound, "重复删除也应返回不存在")
}

func TestService_PatchChangesOnlyGivenField(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo(), DefaultPagePolicy)
	books := seed(t, svc, Draft{Title: "The Hobbit", Author: "Tolkien", Year: 1937, ISBN: "0261102214"})

	patched, err := svc.PatchBook(ctx, books[0].ID, Patch{Title: ptr("The Hobbit, or There and Back Again")})
	require.NoError(t, err)

	assert.Equal(t, "The Hobbit, or There and Back Again", patched.Title)
	assert.Equal(t, "Tolkien", patched.Author)
	assert.Equal(t, 1937, patched.Year)
	assert.Equal(t, "0261102214", patched.ISBN)
}

func TestService_ReplaceAndPatchNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo(), DefaultPagePolicy)

	_, err := svc.ReplaceBook(ctx, 42, Draft{Title: "Dune", Author: "Herbert", Year: 1965})
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, err = svc.PatchBook(ctx, 42, Patch{Year: ptr(1966)})
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestService_ReplaceValidatesBeforeLookup(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, DefaultPagePolicy)

	_, err := svc.ReplaceBook(context.Background(), 42, Draft{Title: "Dune"})
	assert.ErrorIs(t, err, ErrInvalidBook, "先校验输入,再判断是否存在")
	assert.Zero(t, repo.calls)
}

func TestService_ListFilterAndPagination(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo(), PagePolicy{DefaultLimit: 2, MaxLimit: 3})
	seed(t, svc,
		Draft{Title: "The Fellowship of the Ring", Author: "J.R.R. Tolkien", Year: 1954},
		Draft{Title: "Dune", Author: "Frank Herbert", Year: 1965},
		Draft{Title: "The Two Towers", Author: "J.R.R. Tolkien", Year: 1954},
		Draft{Title: "The Hobbit", Author: "J.R.R. Tolkien", Year: 1937},
		Draft{Title: "Children of Dune", Author: "Frank Herbert", Year: 1976},
	)

	t.Run("作者+年份组合过滤", func(t *testing.T) {
		res, err := svc.ListBooks(ctx, ListFilter{Author: "Tolkien", Year: ptr(1954)}, PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.Total)
		for _, b := range res.Items {
			assert.Contains(t, b.Author, "Tolkien")
			assert.Equal(t, 1954, b.Year)
		}
	})

	t.Run("分页稳定且不重叠", func(t *testing.T) {
		first, err := svc.ListBooks(ctx, ListFilter{}, PageRequest{Offset: ptr(0), Limit: ptr(2)})
		require.NoError(t, err)
		second, err := svc.ListBooks(ctx, ListFilter{}, PageRequest{Offset: ptr(2), Limit: ptr(2)})
		require.NoError(t, err)
		third, err := svc.ListBooks(ctx, ListFilter{}, PageRequest{Offset: ptr(4), Limit: ptr(2)})
		require.NoError(t, err)

		var ids []uint
		for _, page := range []*ListResult{first, second, third} {
			assert.Equal(t, int64(5), page.Total)
			for _, b := range page.Items {
				ids = append(ids, b.ID)
			}
		}
		assert.Equal(t, []uint{1, 2, 3, 4, 5}, ids)
	})

	t.Run("默认limit", func(t *testing.T) {
		res, err := svc.ListBooks(ctx, ListFilter{}, PageRequest{})
		require.NoError(t, err)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, Pagination{Offset: 0, Limit: 2}, res.Pagination)
	})

	t.Run("limit超过最大值", func(t *testing.T) {
		_, err := svc.ListBooks(ctx, ListFilter{}, PageRequest{Limit: ptr(4)})
		assert.ErrorIs(t, err, ErrInvalidBook)
	})
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo(), DefaultPagePolicy)
	seed(t, svc,
		Draft{Title: "A", Author: "Tolkien", Year: 1954},
		Draft{Title: "B", Author: "Tolkien", Year: 2000},
		Draft{Title: "C", Author: "Herbert", Year: 2001},
	)

	stats, err := svc.Stats(ctx, ListFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, map[string]int64{"Tolkien": 2, "Herbert": 1}, stats.ByAuthor)
	assert.Equal(t, map[int]int64{20: 2, 21: 1}, stats.ByCentury)

	filtered, err := svc.Stats(ctx, ListFilter{Author: "herb"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), filtered.Total)
	assert.Equal(t, map[int]int64{21: 1}, filtered.ByCentury)
}
