// Package client talks to the remote backup service that mirrors issued
// credential records.
//
// # Overview
//
//  1. Client, the transport-agnostic contract: TestConnectivity, Upload, Close.
//  2. PinataClient, an IPFS pinning implementation over resty. Locators have
//     the form {gateway}/ipfs/{IpfsHash}.
//  3. S3Client, an S3-compatible implementation over the AWS SDK. Objects are
//     keyed by the SHA-256 of their content, so the key is the content id.
//
// # Error Handling
//
// TestConnectivity is a predicate and never fails. Upload failures match
// ErrUpload (see UploadError for the status and detail). ErrUnavailable is
// returned by callers that refuse to proceed after a failed probe.
//
// Each operation is a single attempt; there is no retry policy.
package client
