// SPDX-License-Identifier: MPL-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/charmbracelet/log"

	"github.com/Specter099/ssmtree/internal/param"
)

// defaultMaxAttempts bounds SDK-level retries for throttled or transient
// API failures.
const defaultMaxAttempts = 5

// ssmAPI is the subset of the SSM client the store uses. It embeds the
// SDK-generated paginator client interface so tests can substitute a fake.
type ssmAPI interface {
	ssm.GetParametersByPathAPIClient
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context, in *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

// Options configures the AWS-backed store client.
type Options struct {
	// Profile is the AWS named profile; empty uses the default chain.
	Profile string
	// Region overrides the AWS region.
	Region string
	// MaxAttempts bounds SDK retries; zero uses defaultMaxAttempts.
	MaxAttempts int
	// Logger receives debug-level diagnostics; nil uses log.Default().
	Logger *log.Logger
}

// Client talks to AWS SSM Parameter Store. It implements Interface.
type Client struct {
	api    ssmAPI
	logger *log.Logger
}

// New builds a Client from the ambient AWS configuration (shared config
// files, environment, instance metadata).
func New(ctx context.Context, opts Options) (*Client, error) {
	maxAttempts := opts.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = defaultMaxAttempts
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRetryMaxAttempts(maxAttempts),
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return newClient(ssm.NewFromConfig(cfg), opts.Logger), nil
}

func newClient(api ssmAPI, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{api: api, logger: logger}
}

// ListUnder implements Interface. The result is fully paginated and sorted
// by path; a failed page aborts the whole fetch with a single sanitized
// error.
func (c *Client) ListUnder(ctx context.Context, prefix string, decrypt bool) ([]param.Parameter, error) {
	paginator := ssm.NewGetParametersByPathPaginator(c.api, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(decrypt),
	})

	var params []param.Parameter
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch parameters under %s: %s", prefix, Scrub(err.Error()))
		}
		pages++
		for _, item := range page.Parameters {
			p, err := fromSDK(item)
			if err != nil {
				return nil, err
			}
			params = append(params, p)
		}
	}
	c.logger.Debug("fetched parameters", "prefix", prefix, "count", len(params), "pages", pages)

	sort.Slice(params, func(i, j int) bool { return params[i].Path < params[j].Path })
	return params, nil
}

// GetExact implements Interface.
func (c *Client) GetExact(ctx context.Context, path string, decrypt bool) (*param.Parameter, error) {
	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(decrypt),
	})
	if err != nil {
		var notFound *ssmtypes.ParameterNotFound
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get parameter %s: %s", path, Scrub(err.Error()))
	}
	if out.Parameter == nil {
		return nil, nil
	}
	p, err := fromSDK(*out.Parameter)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Put implements Putter. Overwrite-denied surfaces as an error from the SDK
// (ParameterAlreadyExists) and is passed through sanitized.
func (c *Client) Put(ctx context.Context, in PutInput) error {
	req := &ssm.PutParameterInput{
		Name:      aws.String(in.Path),
		Value:     aws.String(in.Value),
		Type:      ssmtypes.ParameterType(in.Kind),
		Overwrite: aws.Bool(in.Overwrite),
	}
	if in.Kind == param.KindSecureString && in.KeyID != "" {
		req.KeyId = aws.String(in.KeyID)
	}
	if _, err := c.api.PutParameter(ctx, req); err != nil {
		return fmt.Errorf("put parameter %s: %s", in.Path, Scrub(err.Error()))
	}
	c.logger.Debug("wrote parameter", "path", in.Path, "kind", in.Kind)
	return nil
}

// fromSDK converts an SDK parameter, rejecting an out-of-enumeration type
// before it can enter any tree or diff.
func fromSDK(item ssmtypes.Parameter) (param.Parameter, error) {
	lastModified := time.Time{}
	if item.LastModifiedDate != nil {
		lastModified = *item.LastModifiedDate
	}
	return param.New(
		aws.ToString(item.Name),
		aws.ToString(item.Value),
		string(item.Type),
		item.Version,
		lastModified,
	)
}
