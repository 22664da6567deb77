package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// BookHandler 图书HTTP处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
// 2. 字段校验在领域层完成，这里只处理JSON格式、类型和路径参数错误
// 3. 所有错误统一经由response.Error映射为HTTP状态码
type BookHandler struct {
	createUseCase *appbook.CreateBookUseCase
	getUseCase    *appbook.GetBookUseCase
	listUseCase   *appbook.ListBooksUseCase
	updateUseCase *appbook.UpdateBookUseCase
	deleteUseCase *appbook.DeleteBookUseCase
	statsUseCase  *appbook.BookStatsUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createUseCase *appbook.CreateBookUseCase,
	getUseCase *appbook.GetBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
	updateUseCase *appbook.UpdateBookUseCase,
	deleteUseCase *appbook.DeleteBookUseCase,
	statsUseCase *appbook.BookStatsUseCase,
) *BookHandler {
	return &BookHandler{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		statsUseCase:  statsUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按作者(不区分大小写的子串)、年份过滤，offset/limit分页，固定按id升序
// @Tags         图书
// @Produce      json
// @Param        author     query string false "作者关键词"
// @Param        year       query int    false "出版年份"
// @Param        year_from  query int    false "出版年份下限(含)"
// @Param        year_to    query int    false "出版年份上限(含)"
// @Param        offset     query int    false "偏移量" default(0) minimum(0)
// @Param        limit      query int    false "每页数量" default(10) minimum(1) maximum(100)
// @Success      200 {object} dto.ListBooksResponse
// @Failure      422 {object} response.ErrorBody "参数错误"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	// 1. 绑定查询参数
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}

	// 2. 调用应用层用例
	result, err := h.listUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Filter: query.Filter(),
		Page:   query.PageRequest(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 返回响应
	response.OK(c, dto.NewListBooksResponse(result))
}

// GetBookStats 图书统计
// @Summary      图书统计
// @Description  总数、按作者计数、按世纪计数；可选使用与列表相同的过滤条件
// @Tags         图书
// @Produce      json
// @Param        author     query string false "作者关键词"
// @Param        year       query int    false "出版年份"
// @Param        year_from  query int    false "出版年份下限(含)"
// @Param        year_to    query int    false "出版年份上限(含)"
// @Success      200 {object} dto.StatsResponse
// @Failure      422 {object} response.ErrorBody "参数错误"
// @Router       /books/stats [get]
func (h *BookHandler) GetBookStats(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}

	stats, err := h.statsUseCase.Execute(c.Request.Context(), query.Filter())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewStatsResponse(stats))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id  path int true "图书ID"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Failure      422 {object} response.ErrorBody "ID格式错误"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	found, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBookResponse(found))
}

// CreateBook 创建图书
// @Summary      创建图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} dto.BookResponse
// @Failure      401 {object} response.ErrorBody "API Key缺失或无效"
// @Failure      422 {object} response.ErrorBody "参数错误"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 绑定请求体(只检查JSON格式与类型)
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	// 2. 调用应用层用例(字段校验在领域层)
	created, err := h.createUseCase.Execute(c.Request.Context(), req.ToDraft())
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 201 Created
	response.Created(c, dto.NewBookResponse(created))
}

// ReplaceBook 整体替换图书
// @Summary      整体替换图书
// @Description  除ID外所有字段被请求体替换，未提供的isbn被清空
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id      path int                   true "图书ID"
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      200 {object} dto.BookResponse
// @Failure      401 {object} response.ErrorBody "API Key缺失或无效"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Failure      422 {object} response.ErrorBody "参数错误"
// @Router       /books/{id} [put]
func (h *BookHandler) ReplaceBook(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	updated, err := h.updateUseCase.Replace(c.Request.Context(), id, req.ToDraft())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBookResponse(updated))
}

// PatchBook 部分更新图书
// @Summary      部分更新图书
// @Description  只修改请求体中出现的字段，isbn传null表示清空
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id      path int                  true "图书ID"
// @Param        request body dto.PatchBookRequest true "要修改的字段"
// @Success      200 {object} dto.BookResponse
// @Failure      401 {object} response.ErrorBody "API Key缺失或无效"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Failure      422 {object} response.ErrorBody "参数错误"
// @Router       /books/{id} [patch]
func (h *BookHandler) PatchBook(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.PatchBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	updated, err := h.updateUseCase.Patch(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBookResponse(updated))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  物理删除，重复删除返回404
// @Tags         图书
// @Security     ApiKeyAuth
// @Param        id  path int true "图书ID"
// @Success      204 "删除成功"
// @Failure      401 {object} response.ErrorBody "API Key缺失或无效"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Failure      422 {object} response.ErrorBody "ID格式错误"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
