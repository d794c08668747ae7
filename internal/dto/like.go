package dto

import "Vega_Stream/internal/model"

// LikeResultResponse 是点赞接口的响应：obj是Like行的ID，竞态/重复时为null
type LikeResultResponse struct {
	Obj     *uint64 `json:"obj"`
	Created bool    `json:"created"`
}

func ToLikeResultResponse(obj *model.Like, created bool) LikeResultResponse {
	resp := LikeResultResponse{Created: created}
	if obj != nil {
		id := obj.ID
		resp.Obj = &id
	}
	return resp
}
