package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pinkeeper/internal/client/models"
	"github.com/dmitrijs2005/pinkeeper/internal/logging"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	pinataProbePath  = "/data/testAuthentication"
	pinataPinPath    = "/pinning/pinFileToIPFS"
	backupFileName   = "user-auth.json"
	maxErrorDetail   = 256
	defaultUserAgent = "pinkeeper/1.0"
)

type PinataOptions struct {
	APIURL     string
	JWT        string
	GatewayURL string
	Timeout    time.Duration
	// Transport replaces the HTTP transport; nil keeps the default.
	Transport http.RoundTripper
	// Now is used for token expiry checks and pin names; nil means time.Now.
	Now func() time.Time
}

type PinataClient struct {
	http       *resty.Client
	gatewayURL string
	jwt        string
	now        func() time.Time
	logger     logging.Logger
}

type pinataProbeResponse struct {
	Authenticated *bool  `json:"authenticated"`
	Message       string `json:"message"`
}

type pinataPinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

type pinataMetadata struct {
	Name string `json:"name"`
}

func NewPinataClient(opts PinataOptions, logger logging.Logger) *PinataClient {
	cl := resty.New().
		SetBaseURL(strings.TrimRight(opts.APIURL, "/")).
		SetTimeout(opts.Timeout).
		SetAuthToken(opts.JWT).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", defaultUserAgent)
	if opts.Transport != nil {
		cl.SetTransport(opts.Transport)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &PinataClient{
		http:       cl,
		gatewayURL: strings.TrimRight(opts.GatewayURL, "/"),
		jwt:        opts.JWT,
		now:        now,
		logger:     logger.With("backend", "pinata"),
	}
}

func (c *PinataClient) TestConnectivity(ctx context.Context) bool {
	if exp, ok := tokenExpiry(c.jwt); ok && !c.now().Before(exp) {
		c.logger.Warn(ctx, "pinata token expired", "expired_at", exp)
		return false
	}

	var out pinataProbeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		ExpectContentType("application/json").
		SetResult(&out).
		Get(pinataProbePath)
	if err != nil {
		c.logger.Warn(ctx, "pinata connection test failed", "error", err)
		return false
	}
	if !resp.IsSuccess() {
		c.logger.Warn(ctx, "pinata connection test rejected", "status", resp.StatusCode())
		return false
	}
	if out.Authenticated == nil {
		c.logger.Warn(ctx, "pinata connection test: no authenticated field")
		return false
	}
	return *out.Authenticated
}

func (c *PinataClient) Upload(ctx context.Context, payload any) (*models.Locator, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &UploadError{Op: "encode payload", Err: err}
	}

	meta, err := json.Marshal(pinataMetadata{Name: "auth-" + strconv.FormatInt(c.now().UnixMilli(), 10)})
	if err != nil {
		return nil, &UploadError{Op: "encode metadata", Err: err}
	}

	var out pinataPinResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartField("file", backupFileName, "application/json", bytes.NewReader(body)).
		SetMultipartFormData(map[string]string{"pinataMetadata": string(meta)}).
		ExpectContentType("application/json").
		SetResult(&out).
		Post(pinataPinPath)
	if err != nil {
		return nil, &UploadError{Op: "pin file", Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &UploadError{Op: "pin file", Status: resp.StatusCode(), Detail: excerpt(resp.Body())}
	}
	if out.IpfsHash == "" {
		return nil, &UploadError{Op: "pin file", Status: resp.StatusCode(), Detail: "response has no IpfsHash"}
	}

	c.logger.Debug(ctx, "pinned backup", "cid", out.IpfsHash, "size", out.PinSize)

	return &models.Locator{
		ContentID:    out.IpfsHash,
		RetrievalURL: fmt.Sprintf("%s/ipfs/%s", c.gatewayURL, out.IpfsHash),
	}, nil
}

func (c *PinataClient) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}

// tokenExpiry reads the exp claim of a JWT without verifying its signature.
// ok is false for opaque tokens and tokens without exp.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func excerpt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorDetail {
		s = s[:maxErrorDetail] + "..."
	}
	return s
}
