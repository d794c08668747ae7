package service

import (
	"Vega_Stream/internal/model"
	"Vega_Stream/internal/policy"
	"Vega_Stream/internal/repository"
	"Vega_Stream/pkg/storage"
	"errors"
	"io"

	"gorm.io/gorm"
)

// ObjectStore 是二进制对象存储的抽象，上传一段内容，返回可访问的URL
// 生产实现在pkg/storage（阿里云OSS），测试里用假实现
type ObjectStore interface {
	Upload(key string, data io.Reader) (string, error)
}

type VideoService interface {
	CreateVideo(ownerID uint64, name string) (*model.Video, error)
	// AttachFile 上传一路清晰度文件到对象存储，并在video_files表记下引用
	AttachFile(id policy.Identity, videoID uint64, quality string, data io.Reader) (*model.VideoFile, error)
	Publish(id policy.Identity, videoID uint64) (*model.Video, error)

	ListVideos(id policy.Identity, offset, limit int) ([]model.Video, int64, error)
	GetVideoByID(id policy.Identity, videoID uint64) (*model.Video, error)
	// GetPublishedVideo 是点赞/取消点赞的目标检查：不存在或未发布都算找不到
	GetPublishedVideo(videoID uint64) (*model.Video, error)
	ListPublishedWithOwner() ([]model.Video, error)
}

type videoService struct {
	videoRepo repository.VideoRepository
	store     ObjectStore
}

func NewVideoService(videoRepo repository.VideoRepository, store ObjectStore) VideoService {
	return &videoService{
		videoRepo: videoRepo,
		store:     store,
	}
}

// 新建的视频一律是未发布状态，作者自己能看到，其他人要等Publish
func (s *videoService) CreateVideo(ownerID uint64, name string) (*model.Video, error) {
	newVideo := &model.Video{
		OwnerID: ownerID,
		Name:    name,
	}
	if err := s.videoRepo.Create(newVideo); err != nil {
		return nil, err
	}
	return newVideo, nil
}

// 上传清晰度文件：1、找到视频并检查是不是作者/员工 2、校验清晰度枚举 3、传对象存储 4、落库
func (s *videoService) AttachFile(id policy.Identity, videoID uint64, quality string, data io.Reader) (*model.VideoFile, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if !id.CanManageVideo(video) {
		return nil, ErrPermissionDenied
	}

	switch quality {
	case model.QualityHD, model.QualityFHD, model.QualityUHD:
	default:
		return nil, ErrInvalidQuality
	}

	url, err := s.store.Upload(storage.VideoObjectKey(videoID, quality), data)
	if err != nil {
		return nil, err
	}

	file := &model.VideoFile{
		VideoID: videoID,
		Quality: quality,
		FileURL: url,
	}
	if err := s.videoRepo.CreateFile(file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *videoService) Publish(id policy.Identity, videoID uint64) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if !id.CanManageVideo(video) {
		return nil, ErrPermissionDenied
	}
	if err := s.videoRepo.Publish(videoID); err != nil {
		return nil, err
	}
	video.IsPublished = true
	return video, nil
}

func (s *videoService) ListVideos(id policy.Identity, offset, limit int) ([]model.Video, int64, error) {
	// 限制limit长度
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.videoRepo.FindVisible(id, offset, limit)
}

// 根据videoID查找视频，再按对象级可见性规则裁决；看不到的和不存在的对外是同一种404
func (s *videoService) GetVideoByID(id policy.Identity, videoID uint64) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if !id.CanViewVideo(video) {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

func (s *videoService) GetPublishedVideo(videoID uint64) (*model.Video, error) {
	video, err := s.videoRepo.FindPublishedByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

func (s *videoService) ListPublishedWithOwner() ([]model.Video, error) {
	return s.videoRepo.FindPublishedWithOwner()
}
