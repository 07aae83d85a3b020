package s3_test

import (
	"icpac/config"
	"icpac/infras/otel/mocks"
	"icpac/infras/s3"
	"testing"

	awsS3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "rooms"
	cfg.External.S3.PublicDomain = "https://cdn.icpac.net/"
	cfg.External.S3.APIEndpoint = "https://s3.icpac.net"

	storage := s3.NewWithClient(awsS3.New(awsS3.Options{}), cfg, mocks.NewOtel())

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "public url", url: "https://cdn.icpac.net/rooms/3/board.png", expected: "rooms/3/board.png"},
		{name: "path style api url", url: "https://s3.icpac.net/rooms/rooms/3/board.png", expected: "rooms/3/board.png"},
		{name: "foreign url", url: "https://example.com/board.png", expected: ""},
		{name: "empty", url: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, storage.ObjectKeyFromURL(tt.url))
		})
	}
}
