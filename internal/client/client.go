package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"rag-iishka-client/internal/dto"
	"rag-iishka-client/internal/gateway"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	loginPath     = "/user/auth/login"
	registerPath  = "/user/auth/register"
	documentsPath = "/api/v1/documents"
)

// Client wraps the rag-iishka REST API. Document calls go through the
// gateway so they carry the session's token and survive one token expiry.
type Client struct {
	gw       *gateway.Gateway
	validate *validator.Validate
	logger   *zap.Logger
}

func New(gw *gateway.Gateway, logger *zap.Logger) *Client {
	return &Client{
		gw:       gw,
		validate: validator.New(),
		logger:   logger,
	}
}

func (c *Client) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return c.authenticate(ctx, loginPath, req)
}

func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return c.authenticate(ctx, registerPath, req)
}

func (c *Client) authenticate(ctx context.Context, path string, payload any) (*dto.AuthResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.gw.Send(ctx, path, gateway.Request{Method: http.MethodPost, Body: body})
	if err != nil {
		return nil, err
	}

	var auth dto.AuthResponse
	if err := decode(resp, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// UploadDocument sends the file as multipart form data with fields file and type.
func (c *Client) UploadDocument(ctx context.Context, sessionID string, req *dto.UploadDocumentRequest) (*dto.DocumentResponse, error) {
	if len(req.Content) == 0 {
		return nil, ErrNoFile
	}
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", req.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(req.Content); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := form.WriteField("type", req.Type); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.gw.Do(ctx, sessionID, documentsPath+"/upload", gateway.Request{
		Method: http.MethodPost,
		Body:   buf.Bytes(),
		Header: header,
	})
	if err != nil {
		return nil, err
	}

	var doc dto.DocumentResponse
	if err := decode(resp, &doc); err != nil {
		return nil, err
	}

	c.logger.Info("Document uploaded",
		zap.String("document_id", doc.ID),
		zap.String("file", req.FileName),
		zap.Int("size", len(req.Content)),
	)
	return &doc, nil
}

func (c *Client) ListDocuments(ctx context.Context, sessionID string, limit int) ([]dto.DocumentResponse, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	resp, err := c.gw.Do(ctx, sessionID, documentsPath+"?"+query.Encode(), gateway.Request{Method: http.MethodGet})
	if err != nil {
		return nil, err
	}

	docs := []dto.DocumentResponse{}
	if err := decode(resp, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *Client) ProcessDocument(ctx context.Context, sessionID, documentID string) (*dto.ProcessDocumentResponse, error) {
	if _, err := uuid.Parse(documentID); err != nil {
		return nil, fmt.Errorf("%w: document id %q: %w", ErrInvalidInput, documentID, err)
	}

	resp, err := c.gw.Do(ctx, sessionID, documentsPath+"/"+url.PathEscape(documentID)+"/process", gateway.Request{
		Method: http.MethodPost,
	})
	if err != nil {
		return nil, err
	}

	var result dto.ProcessDocumentResponse
	if err := decode(resp, &result); err != nil {
		return nil, err
	}

	c.logger.Info("Document processed",
		zap.String("document_id", documentID),
		zap.Int("transactions", len(result.Transactions)),
		zap.Int("recommendations", len(result.Recommendations)),
	)
	return &result, nil
}

// decode reads a JSON body into out, or turns a non-2xx status into *APIError.
func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", gateway.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp dto.ErrorResponse
		_ = json.Unmarshal(data, &errResp)
		return &APIError{Status: resp.StatusCode, Message: errResp.Error}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
