package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
)

const cloudObjectPrefix = "resumes"

// CloudClient stores resume files in a Google Cloud Storage bucket.
type CloudClient struct {
	BucketName string
	Ctx        context.Context
	Client     *gcs.Client
}

// NewCloudClient creates a storage client against the given bucket using
// ambient Google credentials.
func NewCloudClient(bucketName string) (*CloudClient, error) {
	ctx := context.Background()
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}
	return &CloudClient{
		BucketName: bucketName,
		Ctx:        ctx,
		Client:     client,
	}, nil
}

// Save uploads the file and returns the object path.
func (c *CloudClient) Save(fileName string, data io.Reader) (string, error) {
	objectName := cloudObjectPrefix + "/" + fileName
	obj := c.Client.Bucket(c.BucketName).Object(objectName)
	wc := obj.NewWriter(c.Ctx)
	if _, err := io.Copy(wc, data); err != nil {
		return "", fmt.Errorf("failed to write data to object: %v", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close object writer: %v", err)
	}
	return objectName, nil
}

// Delete removes the object behind a stored path.
func (c *CloudClient) Delete(path string) error {
	objectName := strings.TrimPrefix(path, "/")
	err := c.Client.Bucket(c.BucketName).Object(objectName).Delete(c.Ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}
