// Package minio connects a MinIO or S3-compatible bucket to the gateway
// file buckets.
//
// A Source implements files.ObjectSource, so objects stored in MinIO can be
// copied into a gateway bucket with files.Service.Import:
//
//	src, err := minio.NewSource(minio.Config{Connection: minio.ConnectionConfig{
//	    Endpoint:        "localhost:9000",
//	    AccessKeyID:     "minio",
//	    SecretAccessKey: "minio123",
//	    BucketName:      "exports",
//	}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	obj, err := client.Files.Import(ctx, "bkt_123", src, "reports/q1.pdf")
//
// NewSource validates the credentials against the bucket and fails when the
// bucket is missing unless AccessBucketCreation is set.
//
// Operations report to an observability.Observer with Component "minio",
// the bucket as Resource and the object key as SubResource.
package minio
