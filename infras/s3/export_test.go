package s3

import (
	"hotelops/config"
	"hotelops/infras/otel"
)

type Client = client

func NewWithClient(c Client, config *config.Config, otel otel.Otel) S3 {
	return newWithClient(c, config, otel)
}
