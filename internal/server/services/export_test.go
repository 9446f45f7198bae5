package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	key, contentType string
	body             []byte
	ttl              time.Duration
	putErr, signErr  error
}

func (f *fakeStore) Put(_ context.Context, key, contentType string, body []byte) error {
	f.key, f.contentType, f.body = key, contentType, body
	return f.putErr
}

func (f *fakeStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	f.ttl = ttl
	if f.signErr != nil {
		return "", f.signErr
	}
	return "https://s3.local/" + key + "?sig", nil
}

func TestExport_UploadsEncryptedEntries(t *testing.T) {
	_, _, ds := newMemoryServices(t)
	ctx := context.Background()
	_, _ = ds.Save(ctx, "u1", DiaryInput{Title: "ct-title", Content: "ct-content", Tags: []string{"a"}})
	_, _ = ds.Save(ctx, "u2", DiaryInput{Title: "other", Content: "other"})

	store := &fakeStore{}
	es := NewExportService(ds, store)
	es.now = func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }

	key, url, err := es.Export(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "exports/u1/2024/03/05/"))
	assert.True(t, strings.HasSuffix(key, ".json"))
	assert.Equal(t, "https://s3.local/"+key+"?sig", url)
	assert.Equal(t, ExportURLValidity, store.ttl)
	assert.Equal(t, "application/json", store.contentType)

	var doc ExportDocument
	require.NoError(t, json.Unmarshal(store.body, &doc))
	assert.Equal(t, "u1", doc.UserID)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, "ct-title", doc.Entries[0].Title)
	assert.Equal(t, []string{"a"}, doc.Entries[0].Tags)
}

func TestExport_StoreErrors(t *testing.T) {
	_, _, ds := newMemoryServices(t)

	_, _, err := NewExportService(ds, &fakeStore{putErr: errBoom}).Export(context.Background(), "u1")
	assert.ErrorIs(t, err, errBoom)

	_, _, err = NewExportService(ds, &fakeStore{signErr: errBoom}).Export(context.Background(), "u1")
	assert.ErrorIs(t, err, errBoom)
}

func TestNewS3Store_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	defer func() { loadDefaultAWSConfig = orig }()

	_, err := NewS3Store(context.Background(), testConfig())
	assert.EqualError(t, err, "no config")
}

func TestS3Store_PutAndPresignUseSeams(t *testing.T) {
	origPut, origSign := putObject, presignGetObject
	defer func() { putObject, presignGetObject = origPut, origSign }()

	var gotBucket, gotKey string
	putObject = func(_ *s3.Client, _ context.Context, in *s3.PutObjectInput) error {
		gotBucket, gotKey = aws.ToString(in.Bucket), aws.ToString(in.Key)
		return nil
	}
	presignGetObject = func(_ *s3.PresignClient, _ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "https://signed/" + aws.ToString(in.Key)}, nil
	}

	cfg := testConfig()
	cfg.S3Bucket = "diaries"
	cfg.S3Region = "us-east-1"
	cfg.S3BaseEndpoint = "http://127.0.0.1:9000"
	store, err := NewS3Store(context.Background(), cfg)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "k1", "application/json", []byte("{}")))
	assert.Equal(t, "diaries", gotBucket)
	assert.Equal(t, "k1", gotKey)

	url, err := store.PresignGet(context.Background(), "k1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://signed/k1", url)
}
