package minio

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSourceValidatesConfig(t *testing.T) {
	_, err := NewSource(Config{})
	assert.ErrorIs(t, err, ErrEmptyEndpoint)

	_, err = NewSource(Config{Connection: ConnectionConfig{Endpoint: "localhost:9000"}})
	assert.ErrorIs(t, err, ErrEmptyBucket)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_ACCESS_KEY_ID", "id")
	t.Setenv("MINIO_SECRET_ACCESS_KEY", "secret")
	t.Setenv("MINIO_BUCKET_NAME", "exports")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_ACCESS_BUCKET_CREATION", "yes")

	cfg := NewConfig()
	assert.Equal(t, "minio:9000", cfg.Connection.Endpoint)
	assert.Equal(t, "id", cfg.Connection.AccessKeyID)
	assert.Equal(t, "secret", cfg.Connection.SecretAccessKey)
	assert.Equal(t, "exports", cfg.Connection.BucketName)
	assert.True(t, cfg.Connection.UseSSL)
	assert.False(t, cfg.Connection.AccessBucketCreation)
}

func TestOperationsRejectEmptyKey(t *testing.T) {
	var observed []observability.OperationContext
	src := (&Source{cfg: Config{Connection: ConnectionConfig{BucketName: "exports"}}}).
		WithObserver(observability.ObserverFunc(func(op observability.OperationContext) {
			observed = append(observed, op)
		}))
	ctx := context.Background()

	_, _, err := src.Open(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.ErrorIs(t, src.Put(ctx, "", strings.NewReader("x"), 1, ""), ErrEmptyKey)
	assert.ErrorIs(t, src.Delete(ctx, ""), ErrEmptyKey)

	_, _, err = src.Open(ctx, "a.txt")
	assert.ErrorIs(t, err, ErrConnectionFailed)

	require.Len(t, observed, 4)
	assert.Equal(t, "minio", observed[0].Component)
	assert.Equal(t, "get", observed[0].Operation)
	assert.Equal(t, "exports", observed[0].Resource)
	assert.Equal(t, "put", observed[1].Operation)
	assert.Equal(t, "delete", observed[2].Operation)
	assert.Equal(t, "a.txt", observed[3].SubResource)
	assert.ErrorIs(t, observed[3].Error, ErrConnectionFailed)
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	notFound := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	err := translateError(notFound)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, translateError(other))
}
