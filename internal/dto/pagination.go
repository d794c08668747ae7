package dto

// PaginatedResponse 是列表接口的分页包装
// 客户端用page和per_page翻页，pages和has_next帮它判断还有没有下一页
type PaginatedResponse struct {
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Pages   int         `json:"pages"`
	HasNext bool        `json:"has_next"`
	Data    interface{} `json:"data"`
}

func NewPaginatedResponse(page, perPage int, total int64, data interface{}) PaginatedResponse {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return PaginatedResponse{
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
		HasNext: page < pages,
		Data:    data,
	}
}
