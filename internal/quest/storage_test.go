package quest

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

func TestLocalPhotoStore(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalPhotoStore(dir, "http://localhost:8080/uploads/")
	ctx := context.Background()

	url, err := store.Save(ctx, "quests/1/quest-a", Photo{Body: strings.NewReader("img"), ContentType: "image/png"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/uploads/quests/1/quest-a/") || !strings.HasSuffix(url, ".png") {
		t.Errorf("Unexpected URL %s", url)
	}

	path := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, "http://localhost:8080/uploads/")))
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "img" {
		t.Fatalf("Expected file on disk, got %q (%v)", data, err)
	}

	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected file to be removed")
	}
	if err := store.Delete(ctx, url); err != nil {
		t.Errorf("Expected deleting a missing file to succeed, got %v", err)
	}

	if _, err := store.Save(ctx, "x", Photo{Body: strings.NewReader(""), ContentType: "text/plain"}); !errors.Is(err, ErrUnsupportedPhoto) {
		t.Errorf("Expected ErrUnsupportedPhoto, got %v", err)
	}
}

type fakeS3 struct {
	s3iface.S3API
	put     *s3.PutObjectInput
	body    string
	deleted string
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	f.put = in
	data, _ := io.ReadAll(in.Body)
	f.body = string(data)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjectWithContext(ctx aws.Context, in *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deleted = aws.StringValue(in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3PhotoStore(t *testing.T) {
	client := &fakeS3{}
	store := newS3PhotoStore(client, "datemate-photos", "ap-northeast-2")
	ctx := context.Background()

	url, err := store.Save(ctx, "quests/2/quest-b", Photo{Body: strings.NewReader("jpeg-bytes"), ContentType: "image/jpeg"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	key := aws.StringValue(client.put.Key)
	if url != "https://datemate-photos.s3.ap-northeast-2.amazonaws.com/"+key {
		t.Errorf("Unexpected URL %s for key %s", url, key)
	}
	if aws.StringValue(client.put.ContentType) != "image/jpeg" || client.body != "jpeg-bytes" {
		t.Errorf("Unexpected upload %+v", client.put)
	}

	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if client.deleted != key {
		t.Errorf("Expected key %s deleted, got %s", key, client.deleted)
	}

	client.deleted = ""
	store.Delete(ctx, "https://elsewhere.example/photo.jpg")
	if client.deleted != "" {
		t.Error("Expected foreign URL to be ignored")
	}
}
