package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"rag-iishka-client/internal/client"
	"rag-iishka-client/internal/dto"
	"rag-iishka-client/internal/models"
	"rag-iishka-client/internal/service"
	"rag-iishka-client/internal/session"
	"rag-iishka-client/internal/view"
	"rag-iishka-client/pkg/config"

	"go.uber.org/zap"
)

var errUsage = errors.New("usage")

// commandError carries the message shown when err has no better one.
type commandError struct {
	fallback view.Key
	err      error
}

func (e *commandError) Error() string { return e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }

func fail(fallback view.Key, err error) error {
	return &commandError{fallback: fallback, err: err}
}

type app struct {
	profile string
	cfg     *config.Config
	store   session.Store
	cache   *service.ResultCache
	auth    *service.AuthService
	docs    *service.DocumentService
	cat     *view.Catalog
	out     io.Writer
	logger  *zap.Logger
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	name, args := args[0], args[1:]
	switch name {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "upload":
		return a.upload(ctx, args)
	case "list":
		return a.list(ctx, args)
	case "process":
		return a.withDocument(ctx, args, a.process)
	case "details":
		return a.withDocument(ctx, args, a.details)
	case "recommendations":
		return a.withDocument(ctx, args, a.recommendations)
	default:
		return errUsage
	}
}

func (a *app) message(err error) string {
	fallback := view.MsgConnectionFailed
	var cmdErr *commandError
	if errors.As(err, &cmdErr) {
		fallback = cmdErr.fallback
	}
	return a.cat.ErrorMessage(err, fallback)
}

func (a *app) text() *view.TextWriter {
	return a.cat.Text(a.out)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", a.cfg.Client.DefaultLoginEmail, "Email")
	password := fs.String("password", a.cfg.Client.DefaultLoginPassword, "Password")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	user, err := a.auth.Login(ctx, a.profile, &dto.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return fail(view.MsgLoginFailed, err)
	}
	a.text().Line("%s", a.cat.T(view.MsgSignedInAs, user.Email))
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	username := fs.String("username", "", "Username")
	email := fs.String("email", "", "Email")
	password := fs.String("password", "", "Password")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	user, err := a.auth.Register(ctx, a.profile, &dto.RegisterRequest{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return fail(view.MsgRegisterFailed, err)
	}
	a.text().Line("%s", a.cat.T(view.MsgSignedInAs, user.Email))
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx, a.profile); err != nil {
		return err
	}
	a.text().Line("%s", a.cat.T(view.MsgNotSignedIn))
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	creds, err := a.auth.Current(ctx, a.profile)
	if err != nil {
		return err
	}
	if creds.State() == session.StateAbsent {
		a.text().Whoami("", time.Time{})
		return nil
	}

	claims, err := session.Claims(creds.AccessToken)
	if err != nil {
		a.logger.Debug("Access token is not a readable JWT", zap.Error(err))
		a.text().Whoami(creds.Email, time.Time{})
		return nil
	}
	a.text().Whoami(creds.Email, claims.Expiry())
	return nil
}

func (a *app) upload(ctx context.Context, args []string) error {
	fs := newFlagSet("upload")
	typeName := fs.String("type", string(models.DocumentTypeReceipt), "Document type")
	quiet := fs.Bool("no-wait", false, "Do not print the processing result")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		return fail(view.MsgSelectFile, client.ErrNoFile)
	}

	docType, err := models.ParseDocumentType(*typeName)
	if err != nil {
		return fail(view.MsgInvalidInput, fmt.Errorf("%w: %w", client.ErrInvalidInput, err))
	}

	path := fs.Arg(0)
	content, err := os.ReadFile(path)
	if err != nil {
		return fail(view.MsgUploadFailed, fmt.Errorf("failed to read %s: %w", path, err))
	}

	doc, err := a.docs.Upload(ctx, a.profile, &dto.UploadDocumentRequest{
		FileName: filepath.Base(path),
		Content:  content,
		Type:     string(docType),
	})
	if err != nil {
		return fail(view.MsgUploadFailed, err)
	}

	if !a.docs.AutoProcess() {
		a.text().Line("%s %s", a.cat.T(view.MsgUploadSuccess), doc.ID)
		return nil
	}
	a.text().Line("%s %s", a.cat.T(view.MsgUploadProcessing), doc.ID)

	// Background processing must finish before the process exits.
	a.docs.Wait()
	if *quiet {
		return nil
	}
	if result, ok := a.cache.Get(a.profile, doc.ID); ok {
		a.text().Line("%s", a.cat.T(view.MsgProcessSuccess))
		a.text().Details(result)
		return nil
	}
	return fail(view.MsgProcessFailed, service.ErrResultNotFound)
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list")
	limit := fs.Int("limit", a.cfg.Client.DocumentsLimit, "Number of documents")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	docs, err := a.docs.List(ctx, a.profile, *limit)
	if err != nil {
		return fail(view.MsgDocumentsFailed, err)
	}
	return a.text().Documents(docs)
}

func (a *app) withDocument(ctx context.Context, args []string, fn func(context.Context, string) error) error {
	if len(args) != 1 || args[0] == "" {
		return errUsage
	}
	return fn(ctx, args[0])
}

func (a *app) process(ctx context.Context, documentID string) error {
	result, err := a.docs.Process(ctx, a.profile, documentID)
	if err != nil {
		return fail(view.MsgProcessFailed, err)
	}
	a.text().Line("%s", a.cat.T(view.MsgProcessSuccess))
	a.text().Details(result)
	return nil
}

func (a *app) details(ctx context.Context, documentID string) error {
	result, err := a.docs.Details(ctx, a.profile, documentID)
	if err != nil {
		return fail(view.MsgDetailsNotFound, err)
	}
	a.text().Details(result)
	return nil
}

func (a *app) recommendations(ctx context.Context, documentID string) error {
	recs, err := a.docs.Recommendations(ctx, a.profile, documentID)
	if err != nil {
		return fail(view.MsgRecsNotFound, err)
	}
	a.text().Recommendations(a.cat.NewRecommendationsPage(documentID, recs))
	return nil
}
