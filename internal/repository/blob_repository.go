// Package repository 提供了数据访问层的实现。
package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// BlobRepository 定义了附件二进制对象的存取接口。
// 对象以 "<chatId>/<唯一后缀>-<文件名>" 为键存放，与附件元数据行一一对应。
type BlobRepository interface {
	Put(ctx context.Context, key, mimeType string, reader io.Reader, size int64) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type minioBlobRepository struct {
	client *minio.Client
	bucket string
}

// NewBlobRepository 创建一个基于 MinIO 的 BlobRepository 实例。
func NewBlobRepository(client *minio.Client, bucket string) BlobRepository {
	return &minioBlobRepository{client: client, bucket: bucket}
}

// Put 将对象写入存储桶。
func (r *minioBlobRepository) Put(ctx context.Context, key, mimeType string, reader io.Reader, size int64) error {
	_, err := r.client.PutObject(ctx, r.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

// Get 读取对象的完整内容。对象不存在或不可读时返回错误，由调用方决定是否跳过。
func (r *minioBlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, obj); err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return buf.Bytes(), nil
}

// Delete 删除一个对象。
func (r *minioBlobRepository) Delete(ctx context.Context, key string) error {
	err := r.client.RemoveObject(ctx, r.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}
