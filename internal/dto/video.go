package dto

import (
	"Vega_Stream/internal/model"
	"time"
)

type VideoFileResponse struct {
	ID      uint64 `json:"id"`
	File    string `json:"file"`
	Quality string `json:"quality"`
}

type VideoResponse struct {
	ID          uint64              `json:"id"`
	Owner       string              `json:"owner"`
	Name        string              `json:"name"`
	IsPublished bool                `json:"is_published"`
	TotalLikes  uint64              `json:"total_likes"`
	CreatedAt   time.Time           `json:"created_at"`
	Files       []VideoFileResponse `json:"files"`
}

// VideoIDResponse 是员工ID列表的行：视频ID加作者用户名
type VideoIDResponse struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// ToVideoResponse 是一个转换函数，把DB模型转换为API响应模型，并且正确利用preload返回的数据
func ToVideoResponse(video *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:          video.ID,
		Name:        video.Name,
		IsPublished: video.IsPublished,
		TotalLikes:  video.TotalLikes,
		CreatedAt:   video.CreatedAt,
		Files:       []VideoFileResponse{},
	}
	// 检查Owner是否被成功preload
	if video.Owner.ID != 0 {
		resp.Owner = video.Owner.Username
	}
	for _, f := range video.Files {
		resp.Files = append(resp.Files, VideoFileResponse{
			ID:      f.ID,
			File:    f.FileURL,
			Quality: f.Quality,
		})
	}
	return resp
}

func ToVideoIDResponse(video *model.Video) VideoIDResponse {
	resp := VideoIDResponse{ID: video.ID}
	if video.Owner.ID != 0 {
		resp.Username = video.Owner.Username
	}
	return resp
}
