package testutil

import (
	"context"
	"mime/multipart"
	"strings"
	"sync"

	"foodloss-backend/domain"
)

const FakeBucketURL = "https://bucket.test/"

// FakeS3 records uploads in memory.
type FakeS3 struct {
	mu      sync.Mutex
	Objects map[string]string
	Deleted []string
	Err     error
}

func NewFakeS3() *FakeS3 {
	return &FakeS3{Objects: map[string]string{}}
}

func (f *FakeS3) UploadFile(_ context.Context, fileName string, file *multipart.FileHeader, folder string, _ ...string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	if file == nil {
		return "", domain.ErrInvalidFile
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := folder + "/" + fileName
	f.Objects[key] = file.Filename
	return key, nil
}

func (f *FakeS3) UpdateFile(_ context.Context, objectKey string, file *multipart.FileHeader, _ ...string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	if file == nil {
		return "", domain.ErrInvalidFile
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Objects[objectKey] = file.Filename
	return objectKey, nil
}

func (f *FakeS3) DeleteFile(_ context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Objects, objectKey)
	f.Deleted = append(f.Deleted, objectKey)
	return nil
}

func (f *FakeS3) GetPublicLinkKey(objectKey string) string {
	return FakeBucketURL + objectKey
}

func (f *FakeS3) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, FakeBucketURL) {
		return ""
	}
	return strings.TrimPrefix(link, FakeBucketURL)
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

// FakeMailer keeps every message instead of dialing SMTP.
type FakeMailer struct {
	mu   sync.Mutex
	Sent []SentMail
	Err  error
}

func (m *FakeMailer) SendMail(to, subject, body string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

// FileHeader builds an in-memory multipart file for upload tests.
func FileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 4}
}
