// Package services contains application services for the pinkeeper client.
// This file defines the authentication service: registration (digest issue,
// remote backup, local persistence), verification of a supplied digest, and
// housekeeping of the active local record.
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/pinkeeper/internal/client/client"
	"github.com/dmitrijs2005/pinkeeper/internal/client/models"
	"github.com/dmitrijs2005/pinkeeper/internal/client/store"
	"github.com/dmitrijs2005/pinkeeper/internal/common"
	"github.com/dmitrijs2005/pinkeeper/internal/cryptox"
	"github.com/dmitrijs2005/pinkeeper/internal/logging"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// AuthService defines the credential operations of the CLI.
//
// Contract:
//   - Register: validate the identity, probe the backup service, issue a
//     digest, upload the backup and persist the record. Errors match
//     ErrInvalidIdentity, client.ErrUnavailable, client.ErrUpload,
//     common.ErrStorage or common.ErrVersionConflict.
//   - Login: compare a candidate digest with the active record. A mismatch or
//     a missing record is (false, nil); only storage failures are errors.
//   - Status: the active record, or nil.
//   - Logout: forget the active record without deleting it.
//   - Ping: probe the backup service.
//   - Close: release the client and the store.
type AuthService interface {
	Register(ctx context.Context, email, phone string) (*RegisterResult, error)
	Login(ctx context.Context, candidate string) (bool, error)
	Status(ctx context.Context) (*models.CredentialRecord, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) bool
	Close() error
}

// RegisterResult is what a successful registration hands back to the user.
type RegisterResult struct {
	Digest       string
	ContentID    string
	RetrievalURL string
	IssuedAt     time.Time
	TraceID      string
}

// Option customizes an authService.
type Option func(*authService)

// WithClock replaces time.Now as the source of issue timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *authService) { a.now = now }
}

// WithStageObserver registers fn to be called on every stage transition of a
// registration. fn runs synchronously and must not call back into the service.
func WithStageObserver(fn func(Stage)) Option {
	return func(a *authService) { a.observe = fn }
}

type authService struct {
	client  client.Client
	store   store.Store
	logger  logging.Logger
	now     func() time.Time
	observe func(Stage)

	// mu serializes registrations; the store CAS covers other processes.
	mu sync.Mutex
}

// NewAuthService constructs an AuthService bound to the backup client and
// the local store.
func NewAuthService(c client.Client, s store.Store, logger logging.Logger, opts ...Option) AuthService {
	a := &authService{
		client: c,
		store:  s,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// registration tracks one run of the state machine.
type registration struct {
	stage   Stage
	logger  logging.Logger
	observe func(Stage)
}

func (r *registration) move(ctx context.Context, to Stage) {
	if !r.stage.CanMove(to) {
		panic(fmt.Sprintf("registration: illegal transition %s -> %s", r.stage, to))
	}
	r.logger.Debug(ctx, "registration stage", "from", r.stage.String(), "to", to.String())
	r.stage = to
	if r.observe != nil {
		r.observe(to)
	}
}

func (r *registration) fail(ctx context.Context, err error) error {
	r.logger.Warn(ctx, "registration failed", "stage", r.stage.String(), "error", err)
	r.move(ctx, StageErrored)
	return err
}

func (a *authService) Register(ctx context.Context, email, phone string) (*RegisterResult, error) {
	id := models.Identity{Email: email, Phone: phone}
	if err := ValidateIdentity(id); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	traceID, err := ulid.New(ulid.Timestamp(a.now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("trace id: %w", err)
	}

	r := &registration{
		stage:   StageIdle,
		logger:  a.logger.With("trace_id", traceID.String(), "identity", id.Key()),
		observe: a.observe,
	}

	if !a.client.TestConnectivity(ctx) {
		return nil, r.fail(ctx, client.ErrUnavailable)
	}
	r.move(ctx, StageConnectivityChecked)

	issuedAt := time.UnixMilli(a.now().UnixMilli()).UTC()
	digest := cryptox.GenerateDigest(email, phone, issuedAt.UnixMilli())
	r.move(ctx, StageDigestComputed)

	// The revision observed here is what Save expects to replace.
	prev, err := a.store.LoadIdentity(ctx, id.Key())
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	var revision int64
	if prev != nil {
		revision = prev.Revision
	}

	rec := &models.CredentialRecord{
		ID:       uuid.NewString(),
		Identity: id.Key(),
		Digest:   digest,
		IssuedAt: issuedAt,
		Version:  common.CredentialVersion,
		Revision: revision,
	}

	loc, err := a.client.Upload(ctx, models.NewBackupPayload(id, rec))
	if err != nil {
		if !errors.Is(err, client.ErrUpload) {
			err = fmt.Errorf("%w: %w", client.ErrUpload, err)
		}
		return nil, r.fail(ctx, err)
	}
	rec.ContentID = loc.ContentID
	rec.RetrievalURL = loc.RetrievalURL
	r.move(ctx, StageUploaded)

	if err := a.store.Save(ctx, rec); err != nil {
		return nil, r.fail(ctx, err)
	}
	r.move(ctx, StageStored)

	r.logger.Info(ctx, "credential issued", "content_id", rec.ContentID, "revision", rec.Revision)
	r.move(ctx, StageDone)

	return &RegisterResult{
		Digest:       digest,
		ContentID:    rec.ContentID,
		RetrievalURL: rec.RetrievalURL,
		IssuedAt:     issuedAt,
		TraceID:      traceID.String(),
	}, nil
}

func (a *authService) Login(ctx context.Context, candidate string) (bool, error) {
	rec, err := a.store.Load(ctx)
	if err != nil {
		return false, err
	}
	if rec == nil {
		a.logger.Debug(ctx, "login: no active credential")
		return false, nil
	}
	ok := cryptox.EqualDigests(rec.Digest, candidate)
	if !ok {
		a.logger.Info(ctx, "login: digest mismatch", "identity", rec.Identity)
	}
	return ok, nil
}

func (a *authService) Status(ctx context.Context) (*models.CredentialRecord, error) {
	return a.store.Load(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Deactivate(ctx)
}

func (a *authService) Ping(ctx context.Context) bool {
	return a.client.TestConnectivity(ctx)
}

func (a *authService) Close() error {
	return errors.Join(a.client.Close(), a.store.Close())
}
