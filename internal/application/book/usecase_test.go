package book

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// stubService 按需覆盖的领域服务替身
type stubService struct {
	book.Service // 未覆盖的方法调用会panic

	create  func(book.Draft) (*book.Book, error)
	get     func(uint) (*book.Book, error)
	list    func(book.ListFilter, book.PageRequest) (*book.ListResult, error)
	replace func(uint, book.Draft) (*book.Book, error)
	patch   func(uint, book.Patch) (*book.Book, error)
	remove  func(uint) error
	stats   func(book.ListFilter) (*book.Stats, error)
}

func (s *stubService) CreateBook(_ context.Context, d book.Draft) (*book.Book, error) {
	return s.create(d)
}

func (s *stubService) GetBook(_ context.Context, id uint) (*book.Book, error) {
	return s.get(id)
}

func (s *stubService) ListBooks(_ context.Context, f book.ListFilter, p book.PageRequest) (*book.ListResult, error) {
	return s.list(f, p)
}

func (s *stubService) ReplaceBook(_ context.Context, id uint, d book.Draft) (*book.Book, error) {
	return s.replace(id, d)
}

func (s *stubService) PatchBook(_ context.Context, id uint, p book.Patch) (*book.Book, error) {
	return s.patch(id, p)
}

func (s *stubService) DeleteBook(_ context.Context, id uint) error {
	return s.remove(id)
}

func (s *stubService) Stats(_ context.Context, f book.ListFilter) (*book.Stats, error) {
	return s.stats(f)
}

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	events []BookEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event BookEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func TestCreateBookUseCase(t *testing.T) {
	svc := &stubService{
		create: func(d book.Draft) (*book.Book, error) {
			b := book.NewBook(d)
			b.ID = 1
			return b, nil
		},
	}
	pub := &recordingPublisher{}
	uc := NewCreateBookUseCase(svc, pub)

	created, err := uc.Execute(context.Background(), book.Draft{Title: "Dune", Author: "Herbert", Year: 1965})
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, EventBookCreated, pub.events[0].Type)
	assert.Equal(t, uint(1), pub.events[0].BookID)
	assert.Equal(t, "Dune", pub.events[0].Title)
	assert.False(t, pub.events[0].OccurredAt.IsZero())
}

func TestCreateBookUseCase_PublishFailureIsNotFatal(t *testing.T) {
	svc := &stubService{
		create: func(d book.Draft) (*book.Book, error) {
			b := book.NewBook(d)
			b.ID = 2
			return b, nil
		},
	}
	pub := &recordingPublisher{err: errors.New("broker unavailable")}
	uc := NewCreateBookUseCase(svc, pub)

	created, err := uc.Execute(context.Background(), book.Draft{Title: "Emma", Author: "Austen", Year: 1815})
	require.NoError(t, err, "事件发布失败不影响创建结果")
	assert.Equal(t, uint(2), created.ID)
}

func TestCreateBookUseCase_ErrorSkipsEvent(t *testing.T) {
	svc := &stubService{
		create: func(book.Draft) (*book.Book, error) { return nil, book.ErrInvalidBook },
	}
	pub := &recordingPublisher{}
	uc := NewCreateBookUseCase(svc, pub)

	_, err := uc.Execute(context.Background(), book.Draft{})
	assert.ErrorIs(t, err, book.ErrInvalidBook)
	assert.Empty(t, pub.events)
}

func TestUpdateBookUseCase(t *testing.T) {
	stored := &book.Book{ID: 3, Title: "The Hobbit", Author: "Tolkien", Year: 1937}
	svc := &stubService{
		replace: func(id uint, d book.Draft) (*book.Book, error) {
			if id != stored.ID {
				return nil, book.ErrBookNotFound
			}
			stored.Replace(d)
			return stored, nil
		},
		patch: func(id uint, p book.Patch) (*book.Book, error) {
			if id != stored.ID {
				return nil, book.ErrBookNotFound
			}
			p.Apply(stored)
			return stored, nil
		},
	}
	pub := &recordingPublisher{}
	uc := NewUpdateBookUseCase(svc, pub)
	ctx := context.Background()

	year := 1951
	patched, err := uc.Patch(ctx, 3, book.Patch{Year: &year})
	require.NoError(t, err)
	assert.Equal(t, 1951, patched.Year)

	_, err = uc.Patch(ctx, 3, book.Patch{})
	require.NoError(t, err)

	replaced, err := uc.Replace(ctx, 3, book.Draft{Title: "Silmarillion", Author: "Tolkien", Year: 1977})
	require.NoError(t, err)
	assert.Equal(t, "Silmarillion", replaced.Title)

	_, err = uc.Replace(ctx, 9, book.Draft{Title: "X", Author: "Y", Year: 2000})
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	require.Len(t, pub.events, 2, "空Patch和失败的更新不发布事件")
	assert.Equal(t, EventBookUpdated, pub.events[0].Type)
	assert.Equal(t, 1951, pub.events[0].Year)
	assert.Equal(t, "Silmarillion", pub.events[1].Title)
}

func TestDeleteBookUseCase(t *testing.T) {
	deleted := map[uint]bool{}
	svc := &stubService{
		remove: func(id uint) error {
			if deleted[id] {
				return book.ErrBookNotFound
			}
			deleted[id] = true
			return nil
		},
	}
	pub := &recordingPublisher{}
	uc := NewDeleteBookUseCase(svc, pub)
	ctx := context.Background()

	require.NoError(t, uc.Execute(ctx, 5))
	assert.ErrorIs(t, uc.Execute(ctx, 5), book.ErrBookNotFound)

	require.Len(t, pub.events, 1)
	assert.Equal(t, BookEvent{Type: EventBookDeleted, BookID: 5, OccurredAt: pub.events[0].OccurredAt}, pub.events[0])
}

func TestReadUseCasesDelegate(t *testing.T) {
	year := 1954
	svc := &stubService{
		get: func(id uint) (*book.Book, error) { return &book.Book{ID: id}, nil },
		list: func(f book.ListFilter, p book.PageRequest) (*book.ListResult, error) {
			assert.Equal(t, "tolkien", f.Author)
			assert.Equal(t, &year, f.Year)
			return &book.ListResult{Total: 2, Pagination: book.Pagination{Offset: 0, Limit: 10}}, nil
		},
		stats: func(book.ListFilter) (*book.Stats, error) {
			return &book.Stats{Total: 2, ByAuthor: map[string]int64{"Tolkien": 2}, ByCentury: map[int]int64{20: 2}}, nil
		},
	}
	ctx := context.Background()

	got, err := NewGetBookUseCase(svc).Execute(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, uint(8), got.ID)

	res, err := NewListBooksUseCase(svc).Execute(ctx, ListBooksRequest{Filter: book.ListFilter{Author: "tolkien", Year: &year}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	stats, err := NewBookStatsUseCase(svc).Execute(ctx, book.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{20: 2}, stats.ByCentury)
}

func TestNopEventPublisher(t *testing.T) {
	assert.NoError(t, NopEventPublisher{}.Publish(context.Background(), BookEvent{Type: EventBookCreated}))
}
