package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{"1", 1, false},
		{"4294967295", 4294967295, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"4294967296", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Params = gin.Params{{Key: "id", Value: tt.raw}}

			id, err := parseID(c)
			if tt.wantErr {
				appErr := apperrors.GetAppError(err)
				assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
				assert.Contains(t, appErr.Details, "id")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestBindError(t *testing.T) {
	var target struct {
		Year int `json:"year"`
	}
	typeErr := json.Unmarshal([]byte(`{"year":"1965"}`), &target)
	syntaxErr := json.Unmarshal([]byte(`{"year":`), &target)
	_, numErr := strconv.Atoi("ten")

	tests := []struct {
		name  string
		err   error
		field string
	}{
		{"空请求体", io.EOF, "body"},
		{"类型错误", typeErr, "year"},
		{"格式错误", syntaxErr, "body"},
		{"查询参数", numErr, "query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := apperrors.GetAppError(bindError(tt.err))
			assert.Equal(t, apperrors.ErrCodeBindError, appErr.Code)
			assert.Equal(t, http.StatusUnprocessableEntity, apperrors.HTTPStatus(appErr.Code))
			assert.Contains(t, appErr.Details, tt.field)
		})
	}
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name     string
		pingErr  error
		status   int
		database string
	}{
		{"数据库正常", nil, http.StatusOK, "up"},
		{"数据库不可用", errors.New("connection refused"), http.StatusServiceUnavailable, "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(fakePinger{err: tt.pingErr}, "/swagger/index.html")
			r := gin.New()
			r.GET("/ping", h.Ping)
			r.GET("/", h.Root)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
			require.Equal(t, tt.status, rec.Code)

			var ping dto.PingResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ping))
			assert.Equal(t, "pong", ping.Message)
			assert.Equal(t, tt.database, ping.Database)

			rec = httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.True(t, strings.Contains(rec.Body.String(), "/swagger/index.html"))
		})
	}
}
