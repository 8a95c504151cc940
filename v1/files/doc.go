// Package files manages the gateway's file buckets and objects.
//
//	svc := files.NewService(gw)
//	bucket, err := svc.CreateBucket(ctx, files.CreateBucketRequest{Name: "reports"})
//	obj, err := svc.Upload(ctx, bucket.ID, files.UploadRequest{
//	    Key:     "2024/q1.pdf",
//	    Content: data,
//	})
//	content, obj, err := svc.DownloadObject(ctx, bucket.ID, "2024/q1.pdf")
//
// Content travels base64-encoded inside JSON bodies; the encoding is handled
// here. When no content type is given, Upload detects one with
// http.DetectContentType.
//
// Bucket IDs and object keys are escaped as single path segments, so keys may
// contain slashes. Empty IDs fail with ErrEmptyID before any request is sent.
//
// # Importing
//
// Import copies an object from any ObjectSource (see minio.Source for
// MinIO/S3) into a gateway bucket. Objects larger than MaxImportSize are
// rejected with ErrTooLarge.
package files
