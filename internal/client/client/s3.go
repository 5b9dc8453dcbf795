package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/pinkeeper/internal/client/models"
	"github.com/dmitrijs2005/pinkeeper/internal/logging"
)

type S3Options struct {
	Endpoint   string
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	Prefix     string
	GatewayURL string
	Timeout    time.Duration
	Transport  http.RoundTripper
	Now        func() time.Time
}

// S3Client stores backups in an S3-compatible bucket (AWS, MinIO). Object keys
// are derived from the SHA-256 of the uploaded bytes.
type S3Client struct {
	s3         *s3.Client
	httpClient aws.HTTPClient
	bucket     string
	prefix     string
	gatewayURL string
	now        func() time.Time
	logger     logging.Logger
}

func NewS3Client(ctx context.Context, opts S3Options, logger logging.Logger) (*S3Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)),
		// must stay buildable: AWS_CA_BUNDLE is applied through WithTransportOptions
		config.WithHTTPClient(awshttp.NewBuildableClient().WithTimeout(opts.Timeout)),
	)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if opts.Transport != nil {
		httpClient = &http.Client{Transport: opts.Transport, Timeout: opts.Timeout}
	}

	cl := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
		o.RetryMaxAttempts = 1
		o.HTTPClient = httpClient
	})

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	gateway := strings.TrimRight(opts.GatewayURL, "/")
	if gateway == "" {
		gateway = bucketURL(opts)
	}

	return &S3Client{
		s3:         cl,
		httpClient: httpClient,
		bucket:     opts.Bucket,
		prefix:     opts.Prefix,
		gatewayURL: gateway,
		now:        now,
		logger:     logger.With("backend", "s3", "bucket", opts.Bucket),
	}, nil
}

func (c *S3Client) TestConnectivity(ctx context.Context) bool {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)})
	if err != nil {
		c.logger.Warn(ctx, "s3 connection test failed", "error", err)
		return false
	}
	return true
}

func (c *S3Client) Upload(ctx context.Context, payload any) (*models.Locator, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &UploadError{Op: "encode payload", Err: err}
	}

	sum := sha256.Sum256(body)
	cid := hex.EncodeToString(sum[:])
	key := c.prefix + cid + ".json"

	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/json"),
		Metadata: map[string]string{
			"name": "auth-" + strconv.FormatInt(c.now().UnixMilli(), 10),
		},
	})
	if err != nil {
		uerr := &UploadError{Op: "put object", Err: err}
		var re *awshttp.ResponseError
		if errors.As(err, &re) {
			uerr.Status = re.HTTPStatusCode()
		}
		return nil, uerr
	}

	c.logger.Debug(ctx, "stored backup", "key", key)

	return &models.Locator{
		ContentID:    cid,
		RetrievalURL: c.gatewayURL + "/" + key,
	}, nil
}

func (c *S3Client) Close() error {
	if hc, ok := c.httpClient.(interface{ CloseIdleConnections() }); ok {
		hc.CloseIdleConnections()
	}
	return nil
}

// bucketURL is the public base of the bucket: path style on a custom
// endpoint, virtual-hosted style on AWS.
func bucketURL(opts S3Options) string {
	if opts.Endpoint != "" {
		return strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
}
