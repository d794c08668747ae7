package storage

import (
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// OSSStore 是阿里云OSS上的媒体对象存储，保存上传的视频清晰度文件
// 数据库里只存这里返回的URL，二进制内容对核心逻辑是不透明的
type OSSStore struct {
	bucket     *oss.Bucket
	bucketName string
	endpoint   string
}

func NewOSSStore(endpoint, bucketName, accessKeyID, accessKeySecret string) (*OSSStore, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}
	return &OSSStore{
		bucket:     bucket,
		bucketName: bucketName,
		endpoint:   endpoint,
	}, nil
}

// Upload 上传一个对象并返回外链URL
func (s *OSSStore) Upload(key string, data io.Reader) (string, error) {
	if err := s.bucket.PutObject(key, data); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, s.endpoint, key), nil
}

// VideoObjectKey 生成清晰度文件的对象键，uuid避免同一路清晰度重传时互相覆盖
func VideoObjectKey(videoID uint64, quality string) string {
	return fmt.Sprintf("videos/%d/%s_%s.mp4", videoID, strings.ToLower(quality), uuid.NewString())
}
